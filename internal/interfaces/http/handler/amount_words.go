package handler

import (
	"strings"

	wordsapp "github.com/exos/backend/internal/application/amountwords"
	"github.com/gin-gonic/gin"
)

// AmountWordsHandler exposes the amount-to-words converter
type AmountWordsHandler struct {
	BaseHandler
	service *wordsapp.Service
}

// NewAmountWordsHandler creates a new AmountWordsHandler
func NewAmountWordsHandler(service *wordsapp.Service) *AmountWordsHandler {
	return &AmountWordsHandler{service: service}
}

// ConvertQuery godoc
//
//	@ID				getAmountWords
//
//	@Summary		Write an amount in words
//	@Description	Converts an amount to uppercase Spanish legal text, e.g. "QUINCE MIL CON 00/100 CORDOBAS"
//	@Tags			amount-words
//	@Produce		json
//	@Param			amount	query	string	true	"Amount, e.g. 15000.50"
//	@Param			currency	query	string	true	"Currency code or alias, e.g. cordoba, NIO, USD"
//	@Success		200		{object}	APIResponse[amountwords.ConvertResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Router			/amount-words [get]
func (h *AmountWordsHandler) ConvertQuery(c *gin.Context) {
	req := wordsapp.ConvertRequest{Currency: c.Query("currency")}
	if raw, ok := c.GetQuery("amount"); ok {
		req.Amount = wordsapp.NewAmountValue(strings.TrimSpace(raw))
	}
	if len(req.Currency) > 20 {
		h.BadRequest(c, "currency is too long")
		return
	}
	h.convert(c, req)
}

// Convert godoc
//
//	@ID				convertAmountWords
//
//	@Summary		Write an amount in words
//	@Description	Same as the GET form, with the amount as a JSON number or string
//	@Tags			amount-words
//	@Accept			json
//	@Produce		json
//	@Param			request	body	amountwords.ConvertRequest	true	"Amount and currency"
//	@Success		200		{object}	APIResponse[amountwords.ConvertResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Router			/amount-words [post]
func (h *AmountWordsHandler) Convert(c *gin.Context) {
	var req wordsapp.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.convert(c, req)
}

func (h *AmountWordsHandler) convert(c *gin.Context, req wordsapp.ConvertRequest) {
	resp, err := h.service.Convert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListCurrencies godoc
//
//	@ID				listCurrencies
//
//	@Summary		List known currencies
//	@Description	Returns the currency table used for names and symbols, flagging the default
//	@Tags			amount-words
//	@Produce		json
//	@Success		200		{object}	APIResponse[[]amountwords.CurrencyResponse]
//	@Router			/currencies [get]
func (h *AmountWordsHandler) ListCurrencies(c *gin.Context) {
	h.Success(c, h.service.ListCurrencies(c.Request.Context()))
}
