package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeUnavailable is used when an optional feature is not configured
	ErrCodeUnavailable = "ERR_UNAVAILABLE"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Domain codes passed through unchanged
const (
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeMissingCurrency    = "MISSING_CURRENCY"
	ErrCodeAmountOutOfRange   = "AMOUNT_OUT_OF_RANGE"
	ErrCodeInvalidCurrency    = "INVALID_CURRENCY"
	ErrCodeInvalidNE          = "INVALID_NE"
	ErrCodeInvalidBeneficiary = "INVALID_BENEFICIARY"
	ErrCodeInvalidConcept     = "INVALID_CONCEPT"
	ErrCodeInvalidRecipient   = "INVALID_RECIPIENT"
	ErrCodeInvalidSubject     = "INVALID_SUBJECT"
	ErrCodeInvalidPaperSize   = "INVALID_PAPER_SIZE"
	ErrCodePDFUnavailable     = "PDF_UNAVAILABLE"
	ErrCodeRenderTimeout      = "RENDER_TIMEOUT"
	ErrCodeRenderFailed       = "RENDER_FAILED"
	ErrCodeInvalidTemplate    = "INVALID_HTML"
	ErrCodeStorageFailed      = "STORAGE_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:     http.StatusInternalServerError,
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeUnavailable: http.StatusServiceUnavailable,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound: http.StatusNotFound,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Amount and document input -> 400 Bad Request
	ErrCodeInvalidAmount:      http.StatusBadRequest,
	ErrCodeMissingCurrency:    http.StatusBadRequest,
	ErrCodeAmountOutOfRange:   http.StatusBadRequest,
	ErrCodeInvalidCurrency:    http.StatusBadRequest,
	ErrCodeInvalidNE:          http.StatusBadRequest,
	ErrCodeInvalidPaperSize:   http.StatusBadRequest,
	ErrCodeInvalidRecipient:   http.StatusBadRequest,
	ErrCodeInvalidSubject:     http.StatusBadRequest,
	ErrCodeInvalidBeneficiary: http.StatusBadRequest,
	ErrCodeInvalidConcept:     http.StatusBadRequest,

	// Rendering
	ErrCodePDFUnavailable:  http.StatusServiceUnavailable,
	ErrCodeRenderTimeout:   http.StatusGatewayTimeout,
	ErrCodeRenderFailed:    http.StatusInternalServerError,
	ErrCodeInvalidTemplate: http.StatusInternalServerError,
	ErrCodeStorageFailed:   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps generic domain error codes to standardized codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":        ErrCodeNotFound,
	"INVALID_INPUT":    ErrCodeInvalidInput,
	"VALIDATION_ERROR": ErrCodeValidation,
	"BAD_REQUEST":      ErrCodeBadRequest,
	"INTERNAL_ERROR":   ErrCodeInternal,
}

// NormalizeErrorCode converts a legacy error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
