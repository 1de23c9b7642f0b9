package amountwords

import (
	"bytes"
	"encoding/json"

	"github.com/exos/backend/internal/domain/amountwords"
)

// AmountValue holds an amount as the client sent it. JSON numbers are kept
// as json.Number so large or fractional values never pass through float64.
type AmountValue struct {
	raw any
}

// NewAmountValue wraps an already decoded value (query strings, CLI args)
func NewAmountValue(v any) AmountValue {
	return AmountValue{raw: v}
}

// Value returns the wrapped value, nil when the field was absent or null
func (a AmountValue) Value() any {
	return a.raw
}

// UnmarshalJSON implements json.Unmarshaler
func (a *AmountValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	a.raw = v
	return nil
}

// MarshalJSON implements json.Marshaler
func (a AmountValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.raw)
}

// ConvertRequest asks for the legal text of an amount
type ConvertRequest struct {
	Amount   AmountValue `json:"amount"`
	Currency string      `json:"currency" binding:"max=20"`
}

// ConvertResponse is a converted amount
type ConvertResponse struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	CurrencyName string `json:"currency_name"`
	Text         string `json:"text"`
	IntegerPart  int64  `json:"integer_part"`
	Cents        string `json:"cents"`
	Known        bool   `json:"known_currency"`
}

// CurrencyResponse describes one entry of the currency table
type CurrencyResponse struct {
	Code     string   `json:"code"`
	Singular string   `json:"singular"`
	Plural   string   `json:"plural"`
	Symbol   string   `json:"symbol,omitempty"`
	Aliases  []string `json:"aliases,omitempty"`
	Default  bool     `json:"default"`
}

func toCurrencyResponse(c amountwords.Currency, defaultCode string) CurrencyResponse {
	return CurrencyResponse{
		Code:     c.Code,
		Singular: c.Singular,
		Plural:   c.Plural,
		Symbol:   c.Symbol,
		Aliases:  c.Aliases,
		Default:  c.Code == defaultCode,
	}
}
