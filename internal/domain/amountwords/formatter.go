package amountwords

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/exos/backend/internal/domain/shared"
	"github.com/exos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Conversion errors
var (
	ErrInvalidAmount    = shared.NewDomainError("INVALID_AMOUNT", "Amount must be a non-negative number")
	ErrMissingCurrency  = shared.NewDomainError("MISSING_CURRENCY", "Currency is required")
	ErrAmountOutOfRange = shared.NewDomainError("AMOUNT_OUT_OF_RANGE", "Amount is too large to write in words")
)

const (
	centsPlaces = 2
	// maxIntegerDigits is the digit count of MaxIntegerPart
	maxIntegerDigits = 9
)

// Result is a converted amount together with the parts it was built from
type Result struct {
	Text         string   `json:"text"`
	IntegerPart  int64    `json:"integer_part"`
	IntegerWords string   `json:"integer_words"`
	Cents        string   `json:"cents"`
	Currency     Currency `json:"currency"`
	Singular     bool     `json:"singular"`
}

// Formatter converts amounts to legal Spanish text
type Formatter struct {
	currencies *CurrencyTable
}

// FormatterOption configures a Formatter
type FormatterOption func(*Formatter)

// WithCurrencies replaces the default currency table
func WithCurrencies(table *CurrencyTable) FormatterOption {
	return func(f *Formatter) {
		if table != nil {
			f.currencies = table
		}
	}
}

// NewFormatter creates a formatter backed by DefaultCurrencyTable unless
// WithCurrencies is given
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{currencies: DefaultCurrencyTable()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Currencies returns the table used by the formatter
func (f *Formatter) Currencies() *CurrencyTable {
	return f.currencies
}

// Convert converts amount in the given currency
func (f *Formatter) Convert(amount decimal.Decimal, currency string) (*Result, error) {
	if strings.TrimSpace(currency) == "" {
		return nil, ErrMissingCurrency
	}
	if amount.IsNegative() {
		return nil, ErrInvalidAmount.WithMessage("Amount cannot be negative")
	}
	amount, err := bounded(amount)
	if err != nil {
		return nil, err
	}

	info := f.currencies.Lookup(currency)

	fixed := amount.StringFixed(centsPlaces)
	intStr, cents, _ := strings.Cut(fixed, ".")
	integer, err := decimal.NewFromString(intStr)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if integer.GreaterThan(decimal.NewFromInt(MaxIntegerPart)) {
		return nil, ErrAmountOutOfRange
	}
	n := integer.IntPart()

	words := IntegerWords(n)
	singular := false
	if n == 1 && words == wordOne {
		words = wordOneShort
		singular = true
	}

	text := fmt.Sprintf("%s CON %s/100 %s", words, cents, info.Name(singular))

	return &Result{
		Text:         toUpper(text),
		IntegerPart:  n,
		IntegerWords: words,
		Cents:        cents,
		Currency:     info,
		Singular:     singular,
	}, nil
}

// Format converts amount and returns only the text
func (f *Formatter) Format(amount decimal.Decimal, currency string) (string, error) {
	res, err := f.Convert(amount, currency)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// FormatValue accepts loosely typed input (numbers, numeric strings,
// decimals, nil) the way form fields and template data arrive.
func (f *Formatter) FormatValue(amount any, currency string) (string, error) {
	d, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	return f.Format(d, currency)
}

// ConvertValue is FormatValue returning the full Result
func (f *Formatter) ConvertValue(amount any, currency string) (*Result, error) {
	d, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	return f.Convert(d, currency)
}

// FormatMoney converts a Money value using its own currency code
func (f *Formatter) FormatMoney(m valueobject.Money) (string, error) {
	return f.Format(m.Amount(), m.Currency().String())
}

// NumeroALetras converts with the default table and returns "" on any
// invalid input.
func NumeroALetras(amount any, currency string) string {
	s, err := defaultFormatter.FormatValue(amount, currency)
	if err != nil {
		return ""
	}
	return s
}

var defaultFormatter = NewFormatter()

// ParseAmount coerces a loosely typed amount into a decimal. Missing,
// empty, non-numeric, non-finite and negative values are ErrInvalidAmount.
func ParseAmount(v any) (decimal.Decimal, error) {
	var d decimal.Decimal

	switch val := v.(type) {
	case nil:
		return decimal.Zero, ErrInvalidAmount.WithMessage("Amount is required")
	case decimal.Decimal:
		d = val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero, ErrInvalidAmount.WithMessage("Amount is required")
		}
		d = *val
	case valueobject.Money:
		d = val.Amount()
	case int:
		d = decimal.NewFromInt(int64(val))
	case int8:
		d = decimal.NewFromInt(int64(val))
	case int16:
		d = decimal.NewFromInt(int64(val))
	case int32:
		d = decimal.NewFromInt(int64(val))
	case int64:
		d = decimal.NewFromInt(val)
	case uint:
		d = decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(val)), 0)
	case uint8:
		d = decimal.NewFromInt(int64(val))
	case uint16:
		d = decimal.NewFromInt(int64(val))
	case uint32:
		d = decimal.NewFromInt(int64(val))
	case uint64:
		d = decimal.NewFromBigInt(new(big.Int).SetUint64(val), 0)
	case float32:
		return parseFloat(float64(val))
	case float64:
		return parseFloat(val)
	case json.Number:
		return parseString(val.String())
	case string:
		return parseString(val)
	default:
		return decimal.Zero, ErrInvalidAmount.WithMessage(fmt.Sprintf("Unsupported amount type %T", v))
	}

	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount.WithMessage("Amount cannot be negative")
	}
	return bounded(d)
}

// bounded rejects amounts whose integer part has more digits than the
// grammar covers and collapses amounts below half a cent to zero. It reads
// only the coefficient and exponent, so "1e2000000" is never expanded.
func bounded(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsZero() {
		return decimal.Zero, nil
	}
	// d < 10^magnitude and d >= 10^(magnitude-1)
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	if magnitude > maxIntegerDigits {
		return decimal.Zero, ErrAmountOutOfRange
	}
	if magnitude < -centsPlaces {
		return decimal.Zero, nil
	}
	return d, nil
}

func parseFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrInvalidAmount.WithMessage("Amount must be a finite number")
	}
	if f < 0 {
		return decimal.Zero, ErrInvalidAmount.WithMessage("Amount cannot be negative")
	}
	return bounded(decimal.NewFromFloat(f))
}

func parseString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount.WithMessage("Amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount.WithMessage("Amount is not a number: " + s)
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount.WithMessage("Amount cannot be negative")
	}
	return bounded(d)
}

// toUpper uses Spanish casing rules; a Caser is not safe for concurrent use,
// so one is built per call.
func toUpper(s string) string {
	return cases.Upper(language.Spanish).String(s)
}
