package amountwords

import (
	"slices"
	"strings"

	"github.com/exos/backend/internal/domain/shared"
)

// Currency describes how a currency is named in legal amount text
type Currency struct {
	Code     string   `json:"code"`
	Singular string   `json:"singular"`
	Plural   string   `json:"plural"`
	Symbol   string   `json:"symbol"`
	Aliases  []string `json:"aliases,omitempty"`
}

// Name returns the singular or plural form
func (c Currency) Name(singular bool) string {
	if singular {
		return c.Singular
	}
	return c.Plural
}

// FallbackCurrency builds the entry used for codes missing from a table:
// the uppercased code serves as both names and there is no symbol.
func FallbackCurrency(code string) Currency {
	name := strings.ToUpper(strings.TrimSpace(code))
	return Currency{
		Code:     name,
		Singular: name,
		Plural:   name,
	}
}

// Default table entries. Names are stored unaccented because legal amounts
// are printed in plain uppercase (CORDOBAS, DOLARES).
var (
	Cordoba = Currency{Code: "cordoba", Singular: "cordoba", Plural: "cordobas", Symbol: "C$", Aliases: []string{"NIO", "C$"}}
	Dolar   = Currency{Code: "dolar", Singular: "dolar", Plural: "dolares", Symbol: "$", Aliases: []string{"USD", "US$"}}
	Euro    = Currency{Code: "euro", Singular: "euro", Plural: "euros", Symbol: "€", Aliases: []string{"EUR"}}
)

var errInvalidCurrency = shared.NewDomainError("INVALID_CURRENCY", "Invalid currency definition")

// CurrencyTable maps currency codes and aliases to naming entries.
// Lookups are case-insensitive. A table must not be modified once it is
// shared with a Formatter.
type CurrencyTable struct {
	entries map[string]Currency
	codes   []string
}

// NewCurrencyTable creates a table holding the given entries
func NewCurrencyTable(entries ...Currency) (*CurrencyTable, error) {
	t := &CurrencyTable{entries: make(map[string]Currency)}
	for _, c := range entries {
		if err := t.Register(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// DefaultCurrencyTable returns a table with córdoba, dólar and euro
func DefaultCurrencyTable() *CurrencyTable {
	t, _ := NewCurrencyTable(Cordoba, Dolar, Euro)
	return t
}

// Register adds or replaces an entry under its code and aliases
func (t *CurrencyTable) Register(c Currency) error {
	code := normalizeCode(c.Code)
	if code == "" {
		return errInvalidCurrency.WithMessage("currency code cannot be empty")
	}
	if strings.TrimSpace(c.Singular) == "" || strings.TrimSpace(c.Plural) == "" {
		return errInvalidCurrency.WithMessage("currency " + c.Code + " needs singular and plural names")
	}

	c.Code = code
	c.Singular = strings.TrimSpace(c.Singular)
	c.Plural = strings.TrimSpace(c.Plural)

	if !slices.Contains(t.codes, code) {
		t.codes = append(t.codes, code)
	}
	t.entries[code] = c
	for _, alias := range c.Aliases {
		if a := normalizeCode(alias); a != "" && a != code {
			t.entries[a] = c
		}
	}
	return nil
}

// Lookup returns the entry for code, or FallbackCurrency(code) when unknown
func (t *CurrencyTable) Lookup(code string) Currency {
	if c, ok := t.Find(code); ok {
		return c
	}
	return FallbackCurrency(code)
}

// Find returns the entry for code and whether it is registered
func (t *CurrencyTable) Find(code string) (Currency, bool) {
	if t == nil {
		return Currency{}, false
	}
	c, ok := t.entries[normalizeCode(code)]
	return c, ok
}

// Codes returns the primary codes in registration order
func (t *CurrencyTable) Codes() []string {
	return slices.Clone(t.codes)
}

// Currencies returns the primary entries in registration order
func (t *CurrencyTable) Currencies() []Currency {
	result := make([]Currency, 0, len(t.codes))
	for _, code := range t.codes {
		result = append(result, t.entries[code])
	}
	return result
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
