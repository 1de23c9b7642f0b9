package handler

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strconv"

	printingapp "github.com/exos/backend/internal/application/printing"
	"github.com/gin-gonic/gin"
)

// Response headers set on streamed PDFs
const (
	HeaderDocumentID  = "X-Document-ID"
	HeaderDocumentURL = "X-Document-URL"
	HeaderPageCount   = "X-Page-Count"
)

// storedPDFPattern matches {doc_type}/{year}/{month}/{document_id}.pdf
var storedPDFPattern = regexp.MustCompile(
	`^[a-z_]+/\d{4}/(0[1-9]|1[0-2])/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.pdf$`)

// PrintHandler handles print-related API endpoints
type PrintHandler struct {
	BaseHandler
	printService *printingapp.PrintService
}

// NewPrintHandler creates a new PrintHandler
func NewPrintHandler(printService *printingapp.PrintService) *PrintHandler {
	return &PrintHandler{
		printService: printService,
	}
}

// =============================================================================
// Check Requests
// =============================================================================

// PreviewCheckRequest godoc
//
//	@ID				previewPrintCheckRequest
//
//	@Summary		Preview a check request
//	@Description	Render a check request as HTML with its amount written in words
//	@Tags			print
//	@Accept			json
//	@Produce		json
//	@Param			request	body		printing.CheckRequestInput	true	"Check request"
//	@Success		200		{object}	APIResponse[printing.PreviewResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Router			/print/check-requests/preview [post]
func (h *PrintHandler) PreviewCheckRequest(c *gin.Context) {
	var input printingapp.CheckRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.printService.PreviewCheckRequest(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GenerateCheckRequestPDF godoc
//
//	@ID				generatePrintCheckRequestPDF
//
//	@Summary		Generate a check request PDF
//	@Description	Render a check request to PDF. The file is stored when storage is enabled
//	@Description	and its URL returned in the X-Document-URL header.
//	@Tags			print
//	@Accept			json
//	@Produce		application/pdf
//	@Param			request		body		printing.CheckRequestInput	true	"Check request"
//	@Param			disposition	query		string						false	"inline or attachment"	default(attachment)
//	@Success		200			{file}		binary						"PDF file"
//	@Failure		400			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Failure		504			{object}	ErrorResponse
//	@Router			/print/check-requests/pdf [post]
func (h *PrintHandler) GenerateCheckRequestPDF(c *gin.Context) {
	var input printingapp.CheckRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.printService.GenerateCheckRequestPDF(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.writePDF(c, result)
}

// =============================================================================
// Memoranda
// =============================================================================

// PreviewMemorandum godoc
//
//	@ID				previewPrintMemorandum
//
//	@Summary		Preview a memorandum
//	@Description	Render a memorandum as HTML. When an amount is given it is written in words.
//	@Tags			print
//	@Accept			json
//	@Produce		json
//	@Param			request	body		printing.MemorandumInput	true	"Memorandum"
//	@Success		200		{object}	APIResponse[printing.PreviewResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Router			/print/memoranda/preview [post]
func (h *PrintHandler) PreviewMemorandum(c *gin.Context) {
	var input printingapp.MemorandumInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.printService.PreviewMemorandum(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GenerateMemorandumPDF godoc
//
//	@ID				generatePrintMemorandumPDF
//
//	@Summary		Generate a memorandum PDF
//	@Tags			print
//	@Accept			json
//	@Produce		application/pdf
//	@Param			request		body		printing.MemorandumInput	true	"Memorandum"
//	@Param			disposition	query		string						false	"inline or attachment"	default(attachment)
//	@Success		200			{file}		binary						"PDF file"
//	@Failure		400			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/print/memoranda/pdf [post]
func (h *PrintHandler) GenerateMemorandumPDF(c *gin.Context) {
	var input printingapp.MemorandumInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.printService.GenerateMemorandumPDF(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.writePDF(c, result)
}

func (h *PrintHandler) writePDF(c *gin.Context, result *printingapp.PDFResponse) {
	disposition := "attachment"
	if c.Query("disposition") == "inline" {
		disposition = "inline"
	}

	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, result.FileName))
	c.Header(HeaderDocumentID, result.DocumentID)
	c.Header(HeaderPageCount, strconv.Itoa(result.PageCount))
	if result.URL != "" {
		c.Header(HeaderDocumentURL, result.URL)
	}
	c.Data(http.StatusOK, "application/pdf", result.PDFData)
}

// =============================================================================
// Reference Data Endpoints
// =============================================================================

// GetDocumentTypes godoc
//
//	@ID				getPrintReferenceDocumentTypes
//
//	@Summary		Get available document types
//	@Tags			print-reference
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]printing.DocumentTypeResponse]
//	@Router			/print/document-types [get]
func (h *PrintHandler) GetDocumentTypes(c *gin.Context) {
	h.Success(c, h.printService.GetDocumentTypes())
}

// GetPaperSizes godoc
//
//	@ID				getPrintReferencePaperSizes
//
//	@Summary		Get available paper sizes
//	@Tags			print-reference
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]printing.PaperSizeResponse]
//	@Router			/print/paper-sizes [get]
func (h *PrintHandler) GetPaperSizes(c *gin.Context) {
	h.Success(c, h.printService.GetPaperSizes())
}

// GetTemplates godoc
//
//	@ID				getPrintReferenceTemplates
//
//	@Summary		Get built-in templates
//	@Tags			print-reference
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]printing.TemplateResponse]
//	@Router			/print/templates [get]
func (h *PrintHandler) GetTemplates(c *gin.Context) {
	h.Success(c, h.printService.GetTemplates())
}

// =============================================================================
// PDF File Serving
// =============================================================================

// ServePDF godoc
//
//	@ID				servePDFPrintFile
//
//	@Summary		Serve a stored PDF
//	@Tags			print-files
//	@Produce		application/pdf
//	@Param			path	path		string	true	"Storage path, e.g. check_request/2026/10/{id}.pdf"
//	@Success		200		{file}		binary	"PDF file"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/print/files/{path} [get]
func (h *PrintHandler) ServePDF(c *gin.Context) {
	p := path.Clean("/" + c.Param("path"))[1:]
	if !storedPDFPattern.MatchString(p) {
		h.BadRequest(c, "Invalid file path")
		return
	}

	file, err := h.printService.OpenDocument(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", path.Base(p)))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		_ = c.Error(err)
	}
}
