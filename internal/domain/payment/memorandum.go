package payment

import (
	"strings"
	"time"

	"github.com/exos/backend/internal/domain/shared"
	"github.com/exos/backend/internal/domain/shared/valueobject"
)

// Memorandum is an internal note sent with a payment, optionally quoting an amount
type Memorandum struct {
	shared.BaseEntity
	NE       string
	To       string
	From     string
	Subject  string
	Body     string
	Amount   *valueobject.Money
	IssuedAt time.Time
}

// NewMemorandum creates a validated memorandum. amount may be nil.
func NewMemorandum(ne, to, from, subject, body string, amount *valueobject.Money) (*Memorandum, error) {
	ne = strings.TrimSpace(ne)
	if err := validateNE(ne); err != nil {
		return nil, err
	}
	if strings.TrimSpace(to) == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient cannot be empty")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}

	var rounded *valueobject.Money
	if amount != nil {
		if err := validateAmount(*amount); err != nil {
			return nil, err
		}
		r := amount.Round(2)
		rounded = &r
	}

	return &Memorandum{
		BaseEntity: shared.NewBaseEntity(),
		NE:         ne,
		To:         strings.TrimSpace(to),
		From:       strings.TrimSpace(from),
		Subject:    strings.TrimSpace(subject),
		Body:       body,
		Amount:     rounded,
		IssuedAt:   time.Now(),
	}, nil
}

// HasAmount reports whether the memorandum quotes an amount
func (m *Memorandum) HasAmount() bool {
	return m.Amount != nil
}
