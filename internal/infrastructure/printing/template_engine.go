package printing

import (
	"bytes"
	"context"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/exos/backend/internal/domain/amountwords"
	"github.com/exos/backend/internal/domain/printing"
	"github.com/exos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders HTML print templates with business data.
// Amount helpers use the injected amountwords.Formatter so printed documents
// share the currency table configured for the API.
type TemplateEngine struct {
	formatter *amountwords.Formatter
	funcMap   template.FuncMap
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithFormatter sets the formatter used by amountToWords and formatMoney
func WithFormatter(f *amountwords.Formatter) TemplateEngineOption {
	return func(e *TemplateEngine) {
		if f != nil {
			e.formatter = f
		}
	}
}

// NewTemplateEngine creates a new template engine with default configuration
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e := &TemplateEngine{formatter: amountwords.NewFormatter()}
	for _, opt := range opts {
		opt(e)
	}

	e.funcMap = template.FuncMap{
		// Amounts
		"amountToWords":  e.amountToWords,
		"formatMoney":    e.formatMoney,
		"formatMoneyRaw": formatMoneyRaw,

		// Dates
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,

		// Numbers
		"formatDecimal": formatDecimal,

		// Strings
		"upper":    upperCase,
		"lower":    strings.ToLower,
		"title":    titleCase,
		"trim":     strings.TrimSpace,
		"truncate": truncate,

		// Conditional
		"default":  defaultFunc,
		"empty":    empty,
		"notEmpty": notEmpty,

		// Misc
		"shortUUID": shortUUID,
		"now":       time.Now,
	}

	return e
}

// Formatter returns the formatter behind the amount helpers
func (e *TemplateEngine) Formatter() *amountwords.Formatter {
	return e.formatter
}

// RenderTemplateRequest is a request to render a print template
type RenderTemplateRequest struct {
	// Template is the print template to render
	Template *printing.PrintTemplate
	// Data is the business data to bind to the template
	Data any
	// AdditionalFuncs are extra template functions (optional)
	AdditionalFuncs template.FuncMap
}

// RenderTemplateResult contains the rendered HTML output
type RenderTemplateResult struct {
	HTML           string
	RenderDuration time.Duration
}

// Render renders a print template with the provided data
func (e *TemplateEngine) Render(ctx context.Context, req *RenderTemplateRequest) (*RenderTemplateResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if req.Template == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "template is nil", nil)
	}
	if req.Template.Content == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	startTime := time.Now()

	funcMap := e.GetFuncMap()
	if req.AdditionalFuncs != nil {
		maps.Copy(funcMap, req.AdditionalFuncs)
	}

	html, err := execute(req.Template.ID.String(), req.Template.Content, funcMap, req.Data)
	if err != nil {
		return nil, err
	}

	return &RenderTemplateResult{
		HTML:           html,
		RenderDuration: time.Since(startTime),
	}, nil
}

// RenderString renders a template string with the provided data
func (e *TemplateEngine) RenderString(ctx context.Context, name, content string, data any) (string, error) {
	if content == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}
	return execute(name, content, e.funcMap, data)
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

func execute(name, content string, funcMap template.FuncMap, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.String(), nil
}

// =============================================================================
// Template Functions - Amounts
// =============================================================================

// amountToWords writes an amount as legal text.
// Example: {{ amountToWords .Amount }} or {{ amountToWords 1500 "dolar" }}
// A Money value supplies its own currency when none is given. Invalid input
// renders as an empty string so a bad field never aborts a print.
func (e *TemplateEngine) amountToWords(v any, currency ...string) string {
	if m, ok := v.(*valueobject.Money); ok {
		if m == nil {
			return ""
		}
		v = *m
	}
	code := currencyOf(v, currency)
	text, err := e.formatter.FormatValue(v, code)
	if err != nil {
		return ""
	}
	return text
}

// formatMoney formats an amount with the currency symbol from the table.
// Example: {{ formatMoney .Amount }} -> "C$ 1,234.56"
func (e *TemplateEngine) formatMoney(v any, currency ...string) string {
	raw := formatMoneyRaw(v)
	code := currencyOf(v, currency)
	if code == "" {
		return raw
	}
	c := e.formatter.Currencies().Lookup(code)
	if c.Symbol == "" {
		return c.Code + " " + raw
	}
	return c.Symbol + " " + raw
}

func currencyOf(v any, currency []string) string {
	if len(currency) > 0 && strings.TrimSpace(currency[0]) != "" {
		return currency[0]
	}
	switch m := v.(type) {
	case valueobject.Money:
		return m.Currency().String()
	case *valueobject.Money:
		if m != nil {
			return m.Currency().String()
		}
	}
	return ""
}

// formatMoneyRaw formats an amount with thousands separators and two decimals.
// Example: 1234.56 -> "1,234.56"
func formatMoneyRaw(v any) string {
	d := toDecimal(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart, decPart, _ := strings.Cut(d.StringFixed(2), ".")

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return sign + result.String() + "." + decPart
}

// =============================================================================
// Template Functions - Dates and Numbers
// =============================================================================

// formatDate formats a time value as dd/mm/yyyy
func formatDate(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// formatDateTime formats a time value as dd/mm/yyyy hh:mm
func formatDateTime(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

// formatDecimal formats a number with the given precision
func formatDecimal(v any, precision int) string {
	return toDecimal(v).StringFixed(int32(precision))
}

// =============================================================================
// Template Functions - Strings
// =============================================================================

func upperCase(s string) string {
	return cases.Upper(language.Spanish).String(s)
}

func titleCase(s string) string {
	return cases.Title(language.Spanish).String(s)
}

// truncate shortens s to max runes, ending with "..."
func truncate(s string, max int) string {
	const suffix = "..."
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= len(suffix) {
		return string(runes[:max])
	}
	return string(runes[:max-len(suffix)]) + suffix
}

// =============================================================================
// Template Functions - Conditional
// =============================================================================

// defaultFunc returns def when val is empty.
// Example: {{ default .Concept "-" }}
func defaultFunc(val, def any) any {
	if empty(val) {
		return def
	}
	return val
}

func empty(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		return len(val) == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	case float64:
		return val == 0
	case bool:
		return !val
	case decimal.Decimal:
		return val.IsZero()
	case *valueobject.Money:
		return val == nil
	}
	return false
}

func notEmpty(v any) bool {
	return !empty(v)
}

func shortUUID(id uuid.UUID) string {
	return id.String()[:8]
}

// =============================================================================
// Helper Functions
// =============================================================================

// toDecimal converts loosely typed template values to a decimal, zero when
// the value cannot be read as a number
func toDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case valueobject.Money:
		return val.Amount()
	case *valueobject.Money:
		if val == nil {
			return decimal.Zero
		}
		return val.Amount()
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case int:
		return decimal.NewFromInt(int64(val))
	case int32:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float32:
		return decimal.NewFromFloat(float64(val))
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// toTime converts various types to time.Time
func toTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	case string:
		for _, f := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "02/01/2006"} {
			if t, err := time.Parse(f, val); err == nil {
				return t
			}
		}
		return time.Time{}
	case int64:
		return time.Unix(val, 0)
	default:
		return time.Time{}
	}
}
