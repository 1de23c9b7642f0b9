package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	wordsapp "github.com/exos/backend/internal/application/amountwords"
	"github.com/exos/backend/internal/domain/amountwords"
	"github.com/exos/backend/internal/domain/payment"
	"github.com/exos/backend/internal/domain/printing"
	"github.com/exos/backend/internal/domain/shared"
	"github.com/exos/backend/internal/domain/shared/valueobject"
	infra "github.com/exos/backend/internal/infrastructure/printing"
	"github.com/exos/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPDFUnavailable is returned when PDF output is requested but no renderer is configured
var ErrPDFUnavailable = shared.NewDomainError("PDF_UNAVAILABLE", "PDF generation is not enabled on this server")

// PrintService renders check requests and memoranda to HTML and PDF
type PrintService struct {
	templateEngine  *infra.TemplateEngine
	pdfRenderer     infra.PDFRenderer
	pdfStorage      infra.PDFStorage
	defaultCurrency string
	renderTimeout   time.Duration
	logger          *zap.Logger
}

// PrintServiceOption configures a PrintService
type PrintServiceOption func(*PrintService)

// WithDefaultCurrency sets the currency used when an input omits one
func WithDefaultCurrency(code string) PrintServiceOption {
	return func(s *PrintService) {
		if strings.TrimSpace(code) != "" {
			s.defaultCurrency = code
		}
	}
}

// WithRenderTimeout bounds each PDF render
func WithRenderTimeout(d time.Duration) PrintServiceOption {
	return func(s *PrintService) {
		s.renderTimeout = d
	}
}

// NewPrintService creates a new PrintService. pdfRenderer and pdfStorage may
// be nil: without a renderer PDF requests fail with ErrPDFUnavailable, and
// without storage generated PDFs are only returned to the caller.
func NewPrintService(
	templateEngine *infra.TemplateEngine,
	pdfRenderer infra.PDFRenderer,
	pdfStorage infra.PDFStorage,
	log *zap.Logger,
	opts ...PrintServiceOption,
) *PrintService {
	if templateEngine == nil {
		templateEngine = infra.NewTemplateEngine()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &PrintService{
		templateEngine:  templateEngine,
		pdfRenderer:     pdfRenderer,
		pdfStorage:      pdfStorage,
		defaultCurrency: amountwords.Cordoba.Code,
		logger:          log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PDFEnabled reports whether a PDF renderer is configured
func (s *PrintService) PDFEnabled() bool {
	return s.pdfRenderer != nil
}

// StorageEnabled reports whether generated PDFs are persisted
func (s *PrintService) StorageEnabled() bool {
	return s.pdfStorage != nil
}

// =============================================================================
// Check Requests
// =============================================================================

// PreviewCheckRequest renders a check request to HTML
func (s *PrintService) PreviewCheckRequest(ctx context.Context, input CheckRequestInput) (*PreviewResponse, error) {
	req, err := s.buildCheckRequest(input)
	if err != nil {
		return nil, err
	}
	return s.preview(ctx, s.checkRequestDocument(req, input.PaperSize))
}

// GenerateCheckRequestPDF renders a check request to PDF and stores it when
// storage is configured
func (s *PrintService) GenerateCheckRequestPDF(ctx context.Context, input CheckRequestInput) (*PDFResponse, error) {
	if !s.PDFEnabled() {
		return nil, ErrPDFUnavailable
	}
	req, err := s.buildCheckRequest(input)
	if err != nil {
		return nil, err
	}
	return s.generatePDF(ctx, s.checkRequestDocument(req, input.PaperSize))
}

func (s *PrintService) buildCheckRequest(input CheckRequestInput) (*payment.CheckRequest, error) {
	amount, err := s.toMoney(input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}
	return payment.NewCheckRequest(input.NE, input.Beneficiary, input.Concept, amount, input.RequestedBy)
}

func (s *PrintService) checkRequestDocument(req *payment.CheckRequest, paperSize string) *document {
	return &document{
		docType:   printing.DocTypeCheckRequest,
		id:        req.ID,
		reference: req.NE,
		paperSize: normalizePaperSize(paperSize),
		amount:    &req.Amount,
		data:      req,
	}
}

// =============================================================================
// Memoranda
// =============================================================================

// PreviewMemorandum renders a memorandum to HTML
func (s *PrintService) PreviewMemorandum(ctx context.Context, input MemorandumInput) (*PreviewResponse, error) {
	memo, err := s.buildMemorandum(input)
	if err != nil {
		return nil, err
	}
	return s.preview(ctx, s.memorandumDocument(memo, input.PaperSize))
}

// GenerateMemorandumPDF renders a memorandum to PDF and stores it when
// storage is configured
func (s *PrintService) GenerateMemorandumPDF(ctx context.Context, input MemorandumInput) (*PDFResponse, error) {
	if !s.PDFEnabled() {
		return nil, ErrPDFUnavailable
	}
	memo, err := s.buildMemorandum(input)
	if err != nil {
		return nil, err
	}
	return s.generatePDF(ctx, s.memorandumDocument(memo, input.PaperSize))
}

func (s *PrintService) buildMemorandum(input MemorandumInput) (*payment.Memorandum, error) {
	var amount *valueobject.Money
	if input.Amount.Value() != nil {
		m, err := s.toMoney(input.Amount, input.Currency)
		if err != nil {
			return nil, err
		}
		amount = &m
	}
	return payment.NewMemorandum(input.NE, input.To, input.From, input.Subject, input.Body, amount)
}

func (s *PrintService) memorandumDocument(memo *payment.Memorandum, paperSize string) *document {
	return &document{
		docType:   printing.DocTypeMemorandum,
		id:        memo.ID,
		reference: memo.NE,
		paperSize: normalizePaperSize(paperSize),
		amount:    memo.Amount,
		data:      memo,
	}
}

// =============================================================================
// Stored Documents
// =============================================================================

// OpenDocument opens a stored PDF by its storage path
func (s *PrintService) OpenDocument(ctx context.Context, path string) (io.ReadCloser, error) {
	if s.pdfStorage == nil {
		return nil, shared.ErrNotFound.WithMessage("PDF storage is not enabled")
	}
	rc, err := s.pdfStorage.Get(ctx, path)
	if err != nil {
		return nil, toDomainError(err)
	}
	return rc, nil
}

// =============================================================================
// Reference Data
// =============================================================================

// GetDocumentTypes returns all printable document types
func (s *PrintService) GetDocumentTypes() []DocumentTypeResponse {
	docTypes := printing.AllDocTypes()
	result := make([]DocumentTypeResponse, len(docTypes))
	for i, dt := range docTypes {
		result[i] = DocumentTypeResponse{
			Code:        string(dt),
			DisplayName: dt.DisplayName(),
		}
	}
	return result
}

// GetPaperSizes returns all available paper sizes
func (s *PrintService) GetPaperSizes() []PaperSizeResponse {
	paperSizes := printing.AllPaperSizes()
	result := make([]PaperSizeResponse, len(paperSizes))
	for i, ps := range paperSizes {
		w, h := ps.Dimensions()
		result[i] = PaperSizeResponse{
			Code:   string(ps),
			Width:  w,
			Height: h,
		}
	}
	return result
}

// GetTemplates returns the built-in layouts
func (s *PrintService) GetTemplates() []TemplateResponse {
	defaults := infra.GetDefaultTemplates()
	result := make([]TemplateResponse, len(defaults))
	for i, d := range defaults {
		result[i] = TemplateResponse{
			DocumentType: string(d.DocType),
			Name:         d.Name,
			Description:  d.Description,
			PaperSize:    string(d.PaperSize),
			Orientation:  string(d.Orientation),
			IsDefault:    d.IsDefault,
		}
	}
	return result
}

// =============================================================================
// Rendering
// =============================================================================

// document is a validated business document ready for a template
type document struct {
	docType   printing.DocType
	id        uuid.UUID
	reference string
	paperSize printing.PaperSize
	amount    *valueobject.Money
	data      any
}

func (d *document) title() string {
	return fmt.Sprintf("%s - %s", d.docType.DisplayName(), d.reference)
}

func (d *document) fileName() string {
	ref := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, d.reference)
	return fmt.Sprintf("%s_%s.pdf", strings.ToLower(d.docType.String()), ref)
}

type renderedDocument struct {
	template *printing.PrintTemplate
	html     string
	words    string
}

func (s *PrintService) render(ctx context.Context, doc *document) (*renderedDocument, error) {
	words := ""
	if doc.amount != nil {
		// Rejects amounts the template helper would silently print as "".
		text, err := s.templateEngine.Formatter().FormatMoney(*doc.amount)
		if err != nil {
			return nil, err
		}
		words = text
	}

	template, err := infra.ResolveTemplate(doc.docType, doc.paperSize)
	if err != nil {
		return nil, toDomainError(err)
	}

	result, err := s.templateEngine.Render(ctx, &infra.RenderTemplateRequest{
		Template: template,
		Data:     doc.data,
	})
	if err != nil {
		logger.FromContextOr(ctx, s.logger).Error("template rendering failed",
			zap.Error(err),
			zap.String("docType", doc.docType.String()),
			zap.String("template", template.Name))
		return nil, toDomainError(err)
	}

	return &renderedDocument{template: template, html: result.HTML, words: words}, nil
}

func (s *PrintService) preview(ctx context.Context, doc *document) (*PreviewResponse, error) {
	rendered, err := s.render(ctx, doc)
	if err != nil {
		return nil, err
	}
	t := rendered.template
	return &PreviewResponse{
		HTML:         rendered.html,
		DocumentType: doc.docType.String(),
		DocumentID:   doc.id.String(),
		TemplateName: t.Name,
		PaperSize:    t.PaperSize.String(),
		Orientation:  t.Orientation.String(),
		Margins: MarginsDTO{
			Top:    t.Margins.Top,
			Right:  t.Margins.Right,
			Bottom: t.Margins.Bottom,
			Left:   t.Margins.Left,
		},
		AmountInWords: rendered.words,
	}, nil
}

func (s *PrintService) generatePDF(ctx context.Context, doc *document) (*PDFResponse, error) {
	log := logger.FromContextOr(ctx, s.logger).With(
		zap.String("docType", doc.docType.String()),
		zap.String("documentId", doc.id.String()))

	rendered, err := s.render(ctx, doc)
	if err != nil {
		return nil, err
	}
	t := rendered.template

	pdfResult, err := s.pdfRenderer.Render(ctx, &infra.RenderRequest{
		HTML:        rendered.html,
		PaperSize:   t.PaperSize,
		Orientation: t.Orientation,
		Margins:     t.Margins,
		Title:       doc.title(),
		Timeout:     s.renderTimeout,
	})
	if err != nil {
		log.Error("PDF rendering failed", zap.Error(err))
		return nil, toDomainError(err)
	}

	resp := &PDFResponse{
		DocumentType: doc.docType.String(),
		DocumentID:   doc.id.String(),
		FileName:     doc.fileName(),
		PageCount:    pdfResult.PageCount,
		Size:         len(pdfResult.PDFData),
		RenderTime:   pdfResult.RenderDuration,
		PDFData:      pdfResult.PDFData,
	}

	if s.pdfStorage != nil {
		stored, err := s.pdfStorage.Store(ctx, &infra.StoreRequest{
			DocType:    doc.docType,
			DocumentID: doc.id,
			PDFData:    pdfResult.PDFData,
		})
		if err != nil {
			log.Error("PDF storage failed", zap.Error(err))
			return nil, toDomainError(err)
		}
		resp.Stored = true
		resp.Path = stored.Path
		resp.URL = stored.URL
	}

	log.Info("PDF generated",
		zap.Int("pages", resp.PageCount),
		zap.Int("bytes", resp.Size),
		zap.Bool("stored", resp.Stored),
		zap.String("url", resp.URL))

	return resp, nil
}

// toMoney parses an input amount in currency, falling back to the default
// currency when none is given
func (s *PrintService) toMoney(amount wordsapp.AmountValue, currency string) (valueobject.Money, error) {
	d, err := amountwords.ParseAmount(amount.Value())
	if err != nil {
		return valueobject.Money{}, err
	}
	if strings.TrimSpace(currency) == "" {
		currency = s.defaultCurrency
	}
	if c, ok := s.templateEngine.Formatter().Currencies().Find(currency); ok {
		currency = c.Code
	}
	m, err := valueobject.NewMoney(d, valueobject.Currency(currency))
	if err != nil {
		return valueobject.Money{}, amountwords.ErrMissingCurrency
	}
	return m, nil
}

// normalizePaperSize accepts paper codes in any case; empty selects the
// template default
func normalizePaperSize(paperSize string) printing.PaperSize {
	return printing.PaperSize(strings.ToUpper(strings.TrimSpace(paperSize)))
}

// toDomainError converts rendering and storage failures to domain errors so
// the HTTP layer can map them by code
func toDomainError(err error) error {
	var renderErr *infra.RenderError
	if errors.As(err, &renderErr) {
		if renderErr.Code == infra.ErrCodeNotFound {
			return shared.ErrNotFound.WithMessage(renderErr.Message)
		}
		return shared.NewDomainError(renderErr.Code, renderErr.Message)
	}
	return err
}
