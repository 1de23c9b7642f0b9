package printing

import (
	"time"

	wordsapp "github.com/exos/backend/internal/application/amountwords"
)

// =============================================================================
// Document input DTOs
// =============================================================================

// CheckRequestInput carries the fields of a check request to print
type CheckRequestInput struct {
	NE          string               `json:"ne" binding:"required,max=50"`
	Beneficiary string               `json:"beneficiary" binding:"required,max=200"`
	Concept     string               `json:"concept" binding:"max=500"`
	Amount      wordsapp.AmountValue `json:"amount"`
	Currency    string               `json:"currency" binding:"max=20"` // empty uses the configured default
	RequestedBy string               `json:"requested_by" binding:"max=100"`
	PaperSize   string               `json:"paper_size" binding:"omitempty,oneofci=LETTER A4 CHECK"`
}

// MemorandumInput carries the fields of a memorandum to print.
// Amount is optional; when absent the memorandum prints without one.
type MemorandumInput struct {
	NE        string               `json:"ne" binding:"required,max=50"`
	To        string               `json:"to" binding:"required,max=200"`
	From      string               `json:"from" binding:"max=200"`
	Subject   string               `json:"subject" binding:"required,max=200"`
	Body      string               `json:"body" binding:"max=5000"`
	Amount    wordsapp.AmountValue `json:"amount"`
	Currency  string               `json:"currency" binding:"max=20"`
	PaperSize string               `json:"paper_size" binding:"omitempty,oneofci=LETTER A4 CHECK"`
}

// =============================================================================
// Preview and PDF DTOs
// =============================================================================

// MarginsDTO represents page margins in millimeters
type MarginsDTO struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// PreviewResponse is a rendered document ready for the browser
type PreviewResponse struct {
	HTML          string     `json:"html"`
	DocumentType  string     `json:"document_type"`
	DocumentID    string     `json:"document_id"`
	TemplateName  string     `json:"template_name"`
	PaperSize     string     `json:"paper_size"`
	Orientation   string     `json:"orientation"`
	Margins       MarginsDTO `json:"margins"`
	AmountInWords string     `json:"amount_in_words,omitempty"`
}

// PDFResponse describes a generated PDF. PDFData is never serialized;
// handlers stream it directly.
type PDFResponse struct {
	DocumentType string        `json:"document_type"`
	DocumentID   string        `json:"document_id"`
	FileName     string        `json:"file_name"`
	PageCount    int           `json:"page_count"`
	Size         int           `json:"size"`
	RenderTime   time.Duration `json:"render_time_ns"`
	Stored       bool          `json:"stored"`
	Path         string        `json:"path,omitempty"`
	URL          string        `json:"url,omitempty"`
	PDFData      []byte        `json:"-"`
}

// =============================================================================
// Reference Data DTOs
// =============================================================================

// DocumentTypeResponse represents a document type
type DocumentTypeResponse struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// PaperSizeResponse represents a paper size
type PaperSizeResponse struct {
	Code   string `json:"code"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// TemplateResponse describes a built-in print layout
type TemplateResponse struct {
	DocumentType string `json:"document_type"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PaperSize    string `json:"paper_size"`
	Orientation  string `json:"orientation"`
	IsDefault    bool   `json:"is_default"`
}
