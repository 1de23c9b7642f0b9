package payment

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/exos/backend/internal/domain/shared"
	"github.com/exos/backend/internal/domain/shared/valueobject"
)

const (
	maxNELength          = 50
	maxBeneficiaryLength = 200
	maxConceptLength     = 500
)

// CheckRequest asks treasury to issue a check on behalf of a customs case
type CheckRequest struct {
	shared.BaseEntity
	NE          string            // customs case reference number
	Beneficiary string            // who the check is written to
	Concept     string            // what the payment covers
	Amount      valueobject.Money // amount printed on the check
	RequestedBy string
	RequestedAt time.Time
}

// NewCheckRequest creates a validated check request
func NewCheckRequest(ne, beneficiary, concept string, amount valueobject.Money, requestedBy string) (*CheckRequest, error) {
	ne = strings.TrimSpace(ne)
	beneficiary = strings.TrimSpace(beneficiary)
	concept = strings.TrimSpace(concept)

	if err := validateNE(ne); err != nil {
		return nil, err
	}
	if beneficiary == "" {
		return nil, shared.NewDomainError("INVALID_BENEFICIARY", "Beneficiary cannot be empty")
	}
	if utf8.RuneCountInString(beneficiary) > maxBeneficiaryLength {
		return nil, shared.NewDomainError("INVALID_BENEFICIARY", "Beneficiary cannot exceed 200 characters")
	}
	if utf8.RuneCountInString(concept) > maxConceptLength {
		return nil, shared.NewDomainError("INVALID_CONCEPT", "Concept cannot exceed 500 characters")
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	return &CheckRequest{
		BaseEntity:  shared.NewBaseEntity(),
		NE:          ne,
		Beneficiary: beneficiary,
		Concept:     concept,
		Amount:      amount.Round(2),
		RequestedBy: strings.TrimSpace(requestedBy),
		RequestedAt: time.Now(),
	}, nil
}

func validateNE(ne string) error {
	if ne == "" {
		return shared.NewDomainError("INVALID_NE", "NE cannot be empty")
	}
	if utf8.RuneCountInString(ne) > maxNELength {
		return shared.NewDomainError("INVALID_NE", "NE cannot exceed 50 characters")
	}
	return nil
}

func validateAmount(amount valueobject.Money) error {
	if amount.Currency() == "" {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount currency is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	return nil
}
