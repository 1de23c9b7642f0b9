package printing

import (
	"strings"

	"github.com/exos/backend/internal/domain/shared"
)

// PrintTemplate is the HTML layout used to print one document type
type PrintTemplate struct {
	shared.BaseEntity
	DocumentType DocType
	Name         string
	Content      string // html/template source
	PaperSize    PaperSize
	Orientation  Orientation
	Margins      Margins
}

// NewPrintTemplate creates a new print template
func NewPrintTemplate(docType DocType, name, content string, paperSize PaperSize) (*PrintTemplate, error) {
	if err := validateDocType(docType); err != nil {
		return nil, err
	}
	if err := validateTemplateName(name); err != nil {
		return nil, err
	}
	if err := validateTemplateContent(content); err != nil {
		return nil, err
	}
	if err := validatePaperSize(paperSize); err != nil {
		return nil, err
	}

	template := &PrintTemplate{
		BaseEntity:   shared.NewBaseEntity(),
		DocumentType: docType,
		Name:         strings.TrimSpace(name),
		Content:      content,
		PaperSize:    paperSize,
		Orientation:  OrientationPortrait,
		Margins:      DefaultMargins(),
	}

	if paperSize == PaperSizeCheck {
		template.Margins = CheckMargins()
	}

	return template, nil
}

// SetOrientation sets the page orientation
func (t *PrintTemplate) SetOrientation(orientation Orientation) error {
	if !orientation.IsValid() {
		return shared.NewDomainError("INVALID_ORIENTATION", "Invalid orientation value")
	}
	t.Orientation = orientation
	t.Touch()
	return nil
}

// SetMargins sets the page margins
func (t *PrintTemplate) SetMargins(margins Margins) {
	t.Margins = margins
	t.Touch()
}

// Validation functions

func validateDocType(docType DocType) error {
	if !docType.IsValid() {
		return shared.NewDomainError("INVALID_DOC_TYPE", "Invalid document type")
	}
	return nil
}

func validateTemplateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot exceed 100 characters")
	}
	return nil
}

func validateTemplateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Template content cannot be empty")
	}
	if len(content) > 1024*1024 { // 1MB limit
		return shared.NewDomainError("INVALID_CONTENT", "Template content cannot exceed 1MB")
	}
	return nil
}

func validatePaperSize(paperSize PaperSize) error {
	if !paperSize.IsValid() {
		return shared.NewDomainError("INVALID_PAPER_SIZE", "Invalid paper size")
	}
	return nil
}
