package printing

import (
	"embed"
	"fmt"

	"github.com/exos/backend/internal/domain/printing"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTemplate describes a built-in print layout
type DefaultTemplate struct {
	DocType     printing.DocType
	Name        string
	Description string
	PaperSize   printing.PaperSize
	Orientation printing.Orientation
	FilePath    string // path within templateFS
	IsDefault   bool   // default layout for its doc type
}

// GetDefaultTemplates returns all built-in layouts
func GetDefaultTemplates() []DefaultTemplate {
	return []DefaultTemplate{
		{
			DocType:     printing.DocTypeCheckRequest,
			Name:        "Solicitud de cheque - Carta",
			Description: "Solicitud de cheque en papel carta con monto en letras y firmas",
			PaperSize:   printing.PaperSizeLetter,
			Orientation: printing.OrientationPortrait,
			FilePath:    "templates/check_request_letter.html",
			IsDefault:   true,
		},
		{
			DocType:     printing.DocTypeCheckRequest,
			Name:        "Solicitud de cheque - Formato cheque",
			Description: "Impresión directa sobre papel de cheque voucher",
			PaperSize:   printing.PaperSizeCheck,
			Orientation: printing.OrientationLandscape,
			FilePath:    "templates/check_request_check.html",
		},
		{
			DocType:     printing.DocTypeMemorandum,
			Name:        "Memorándum - Carta",
			Description: "Memorándum interno con monto opcional en letras",
			PaperSize:   printing.PaperSizeLetter,
			Orientation: printing.OrientationPortrait,
			FilePath:    "templates/memorandum_letter.html",
			IsDefault:   true,
		},
	}
}

// LoadTemplateContent reads an embedded layout
func LoadTemplateContent(filePath string) (string, error) {
	content, err := templateFS.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", filePath, err)
	}
	return string(content), nil
}

// GetDefaultTemplateByDocTypeAndPaperSize finds a layout, nil when none matches
func GetDefaultTemplateByDocTypeAndPaperSize(docType printing.DocType, paperSize printing.PaperSize) *DefaultTemplate {
	for _, tmpl := range GetDefaultTemplates() {
		if tmpl.DocType == docType && tmpl.PaperSize == paperSize {
			return &tmpl
		}
	}
	return nil
}

// GetDefaultTemplateForDocType returns the default layout for docType
func GetDefaultTemplateForDocType(docType printing.DocType) *DefaultTemplate {
	for _, tmpl := range GetDefaultTemplates() {
		if tmpl.DocType == docType && tmpl.IsDefault {
			return &tmpl
		}
	}
	return nil
}

// Build loads the layout content and creates the domain template
func (d DefaultTemplate) Build() (*printing.PrintTemplate, error) {
	content, err := LoadTemplateContent(d.FilePath)
	if err != nil {
		return nil, err
	}
	tmpl, err := printing.NewPrintTemplate(d.DocType, d.Name, content, d.PaperSize)
	if err != nil {
		return nil, err
	}
	if err := tmpl.SetOrientation(d.Orientation); err != nil {
		return nil, err
	}
	return tmpl, nil
}

// ResolveTemplate returns the built-in template for docType and paperSize.
// An empty paperSize selects the doc type's default layout.
func ResolveTemplate(docType printing.DocType, paperSize printing.PaperSize) (*printing.PrintTemplate, error) {
	var def *DefaultTemplate
	if paperSize == "" {
		def = GetDefaultTemplateForDocType(docType)
	} else {
		def = GetDefaultTemplateByDocTypeAndPaperSize(docType, paperSize)
	}
	if def == nil {
		return nil, NewRenderError(ErrCodeInvalidPaperSize,
			fmt.Sprintf("no template for %s on %s paper", docType, paperSize), nil)
	}
	return def.Build()
}
