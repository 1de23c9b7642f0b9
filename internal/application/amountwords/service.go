package amountwords

import (
	"context"
	"strconv"

	"github.com/exos/backend/internal/domain/amountwords"
	"github.com/exos/backend/internal/domain/shared"
	"github.com/exos/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Service exposes amount-to-words conversion to the HTTP and CLI layers
type Service struct {
	formatter       *amountwords.Formatter
	defaultCurrency string
	logger          *zap.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithDefaultCurrency marks code as the default entry in currency listings
func WithDefaultCurrency(code string) ServiceOption {
	return func(s *Service) {
		s.defaultCurrency = code
	}
}

// WithLogger sets the fallback logger used when a request context carries none
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a new Service
func NewService(formatter *amountwords.Formatter, opts ...ServiceOption) *Service {
	if formatter == nil {
		formatter = amountwords.NewFormatter()
	}
	s := &Service{
		formatter:       formatter,
		defaultCurrency: amountwords.Cordoba.Code,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if c, ok := formatter.Currencies().Find(s.defaultCurrency); ok {
		s.defaultCurrency = c.Code
	}
	return s
}

// Formatter returns the formatter backing the service
func (s *Service) Formatter() *amountwords.Formatter {
	return s.formatter
}

// DefaultCurrency returns the primary code of the default currency
func (s *Service) DefaultCurrency() string {
	return s.defaultCurrency
}

// Convert writes req.Amount as legal text in req.Currency
func (s *Service) Convert(ctx context.Context, req ConvertRequest) (*ConvertResponse, error) {
	log := logger.FromContextOr(ctx, s.logger)

	res, err := s.formatter.ConvertValue(req.Amount.Value(), req.Currency)
	if err != nil {
		log.Info("amount conversion rejected",
			zap.String("code", shared.CodeOf(err)),
			zap.Any("amount", req.Amount.Value()),
			zap.String("currency", req.Currency))
		return nil, err
	}

	_, known := s.formatter.Currencies().Find(req.Currency)
	if !known {
		log.Debug("unknown currency, using code as name", zap.String("currency", req.Currency))
	}

	return &ConvertResponse{
		Amount:       strconv.FormatInt(res.IntegerPart, 10) + "." + res.Cents,
		Currency:     res.Currency.Code,
		CurrencyName: res.Currency.Name(res.Singular),
		Text:         res.Text,
		IntegerPart:  res.IntegerPart,
		Cents:        res.Cents,
		Known:        known,
	}, nil
}

// ListCurrencies returns the configured currency table in registration order
func (s *Service) ListCurrencies(ctx context.Context) []CurrencyResponse {
	currencies := s.formatter.Currencies().Currencies()
	result := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		result[i] = toCurrencyResponse(c, s.defaultCurrency)
	}
	return result
}
