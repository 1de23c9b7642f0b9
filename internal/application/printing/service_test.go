package printing_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	wordsapp "github.com/exos/backend/internal/application/amountwords"
	"github.com/exos/backend/internal/application/printing"
	"github.com/exos/backend/internal/domain/amountwords"
	domain "github.com/exos/backend/internal/domain/printing"
	"github.com/exos/backend/internal/domain/shared"
	infra "github.com/exos/backend/internal/infrastructure/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, req *infra.RenderRequest) (*infra.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.RenderResult), args.Error(1)
}

func (m *MockPDFRenderer) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockPDFStorage struct {
	mock.Mock
}

func (m *MockPDFStorage) Store(ctx context.Context, req *infra.StoreRequest) (*infra.StoreResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.StoreResult), args.Error(1)
}

func (m *MockPDFStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockPDFStorage) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockPDFStorage) GetURL(path string) string {
	args := m.Called(path)
	return args.String(0)
}

// =============================================================================
// Helper Functions
// =============================================================================

func newTestService(renderer infra.PDFRenderer, storage infra.PDFStorage) *printing.PrintService {
	return printing.NewPrintService(infra.NewTemplateEngine(), renderer, storage, zap.NewNop(),
		printing.WithRenderTimeout(5*time.Second))
}

func validCheckInput() printing.CheckRequestInput {
	return printing.CheckRequestInput{
		NE:          "NE-2024-0153",
		Beneficiary: "Dirección General de Aduanas",
		Concept:     "Pago de impuestos de importación",
		Amount:      wordsapp.NewAmountValue("15000"),
		Currency:    "cordoba",
		RequestedBy: "maria lopez",
	}
}

func validMemoInput() printing.MemorandumInput {
	return printing.MemorandumInput{
		NE:      "NE-2024-0154",
		To:      "Contabilidad",
		From:    "Operaciones",
		Subject: "Reembolso de almacenaje",
		Body:    "Favor procesar el reembolso.",
	}
}

func fakePDF() *infra.RenderResult {
	return &infra.RenderResult{
		PDFData:        []byte("%PDF-1.4 fake"),
		PageCount:      1,
		RenderDuration: 10 * time.Millisecond,
	}
}

// =============================================================================
// Preview
// =============================================================================

func TestPreviewCheckRequest_Success(t *testing.T) {
	svc := newTestService(nil, nil)

	resp, err := svc.PreviewCheckRequest(context.Background(), validCheckInput())
	require.NoError(t, err)

	assert.Equal(t, "CHECK_REQUEST", resp.DocumentType)
	assert.Equal(t, "LETTER", resp.PaperSize)
	assert.Equal(t, "PORTRAIT", resp.Orientation)
	assert.Equal(t, "QUINCE MIL CON 00/100 CORDOBAS", resp.AmountInWords)
	assert.Contains(t, resp.HTML, "QUINCE MIL CON 00/100 CORDOBAS")
	assert.Contains(t, resp.HTML, "C$ 15,000.00")
	assert.Contains(t, resp.HTML, "NE-2024-0153")
	assert.NotEmpty(t, resp.DocumentID)
}

func TestPreviewCheckRequest_CheckPaper(t *testing.T) {
	svc := newTestService(nil, nil)
	input := validCheckInput()
	input.PaperSize = "CHECK"

	resp, err := svc.PreviewCheckRequest(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "CHECK", resp.PaperSize)
	assert.Equal(t, "LANDSCAPE", resp.Orientation)
	assert.Equal(t, 5, resp.Margins.Top)
}

func TestPreviewCheckRequest_PaperSizeAnyCase(t *testing.T) {
	svc := newTestService(nil, nil)

	for _, paper := range []string{"check", " Check ", "CHECK"} {
		input := validCheckInput()
		input.PaperSize = paper

		resp, err := svc.PreviewCheckRequest(context.Background(), input)
		require.NoError(t, err, paper)
		assert.Equal(t, "CHECK", resp.PaperSize, paper)
	}

	memo := validMemoInput()
	memo.PaperSize = "letter"
	resp, err := svc.PreviewMemorandum(context.Background(), memo)
	require.NoError(t, err)
	assert.Equal(t, "LETTER", resp.PaperSize)
}

func TestPreviewCheckRequest_DefaultCurrency(t *testing.T) {
	svc := printing.NewPrintService(nil, nil, nil, nil, printing.WithDefaultCurrency("USD"))
	input := validCheckInput()
	input.Currency = ""
	input.Amount = wordsapp.NewAmountValue(1)

	resp, err := svc.PreviewCheckRequest(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "UN CON 00/100 DOLAR", resp.AmountInWords)
}

func TestPreviewCheckRequest_Validation(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		modify func(*printing.CheckRequestInput)
		code   string
	}{
		{"missing amount", func(in *printing.CheckRequestInput) { in.Amount = wordsapp.NewAmountValue(nil) }, "INVALID_AMOUNT"},
		{"negative amount", func(in *printing.CheckRequestInput) { in.Amount = wordsapp.NewAmountValue("-5") }, "INVALID_AMOUNT"},
		{"zero amount", func(in *printing.CheckRequestInput) { in.Amount = wordsapp.NewAmountValue(0) }, "INVALID_AMOUNT"},
		{"amount too large", func(in *printing.CheckRequestInput) { in.Amount = wordsapp.NewAmountValue("1000000000") }, "AMOUNT_OUT_OF_RANGE"},
		{"missing NE", func(in *printing.CheckRequestInput) { in.NE = " " }, "INVALID_NE"},
		{"missing beneficiary", func(in *printing.CheckRequestInput) { in.Beneficiary = "" }, "INVALID_BENEFICIARY"},
		{"unknown paper size", func(in *printing.CheckRequestInput) { in.PaperSize = "A3" }, "INVALID_PAPER_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCheckInput()
			tt.modify(&input)

			_, err := svc.PreviewCheckRequest(ctx, input)
			require.Error(t, err)
			assert.Equal(t, tt.code, shared.CodeOf(err))
		})
	}
}

func TestPreviewMemorandum(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	t.Run("without amount", func(t *testing.T) {
		resp, err := svc.PreviewMemorandum(ctx, validMemoInput())
		require.NoError(t, err)
		assert.Equal(t, "MEMORANDUM", resp.DocumentType)
		assert.Empty(t, resp.AmountInWords)
		assert.Contains(t, resp.HTML, "Reembolso de almacenaje")
		assert.NotContains(t, resp.HTML, "CON 00/100")
	})

	t.Run("with amount", func(t *testing.T) {
		input := validMemoInput()
		input.Amount = wordsapp.NewAmountValue("250.75")
		input.Currency = "USD"

		resp, err := svc.PreviewMemorandum(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "DOSCIENTOS CINCUENTA CON 75/100 DOLARES", resp.AmountInWords)
		assert.Contains(t, resp.HTML, "DOSCIENTOS CINCUENTA CON 75/100 DOLARES")
	})

	t.Run("no template for check paper", func(t *testing.T) {
		input := validMemoInput()
		input.PaperSize = "CHECK"

		_, err := svc.PreviewMemorandum(ctx, input)
		assert.Equal(t, infra.ErrCodeInvalidPaperSize, shared.CodeOf(err))
	})

	t.Run("missing subject", func(t *testing.T) {
		input := validMemoInput()
		input.Subject = ""

		_, err := svc.PreviewMemorandum(ctx, input)
		assert.Equal(t, "INVALID_SUBJECT", shared.CodeOf(err))
	})
}

// =============================================================================
// PDF Generation
// =============================================================================

func TestGenerateCheckRequestPDF_WithoutRenderer(t *testing.T) {
	svc := newTestService(nil, nil)
	assert.False(t, svc.PDFEnabled())

	_, err := svc.GenerateCheckRequestPDF(context.Background(), validCheckInput())
	assert.ErrorIs(t, err, printing.ErrPDFUnavailable)

	_, err = svc.GenerateMemorandumPDF(context.Background(), validMemoInput())
	assert.ErrorIs(t, err, printing.ErrPDFUnavailable)
}

func TestGenerateCheckRequestPDF_RenderAndStore(t *testing.T) {
	renderer := new(MockPDFRenderer)
	storage := new(MockPDFStorage)
	svc := newTestService(renderer, storage)

	renderer.On("Render", mock.Anything, mock.MatchedBy(func(req *infra.RenderRequest) bool {
		return req.PaperSize == domain.PaperSizeLetter &&
			req.Timeout == 5*time.Second &&
			strings.Contains(req.HTML, "QUINCE MIL CON 00/100 CORDOBAS") &&
			req.Title == "Solicitud de cheque - NE-2024-0153"
	})).Return(fakePDF(), nil)

	storage.On("Store", mock.Anything, mock.MatchedBy(func(req *infra.StoreRequest) bool {
		return req.DocType == domain.DocTypeCheckRequest && len(req.PDFData) > 0
	})).Return(&infra.StoreResult{
		Path: "check_request/2024/05/abc.pdf",
		URL:  "/api/v1/print/files/check_request/2024/05/abc.pdf",
		Size: 13,
	}, nil)

	resp, err := svc.GenerateCheckRequestPDF(context.Background(), validCheckInput())
	require.NoError(t, err)

	assert.True(t, resp.Stored)
	assert.Equal(t, "/api/v1/print/files/check_request/2024/05/abc.pdf", resp.URL)
	assert.Equal(t, "check_request_NE-2024-0153.pdf", resp.FileName)
	assert.Equal(t, 1, resp.PageCount)
	assert.Equal(t, []byte("%PDF-1.4 fake"), resp.PDFData)

	renderer.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestGenerateCheckRequestPDF_WithoutStorage(t *testing.T) {
	renderer := new(MockPDFRenderer)
	svc := newTestService(renderer, nil)

	renderer.On("Render", mock.Anything, mock.Anything).Return(fakePDF(), nil)

	resp, err := svc.GenerateCheckRequestPDF(context.Background(), validCheckInput())
	require.NoError(t, err)
	assert.False(t, resp.Stored)
	assert.Empty(t, resp.URL)
	assert.NotEmpty(t, resp.PDFData)
}

func TestGenerateCheckRequestPDF_RenderFailure(t *testing.T) {
	renderer := new(MockPDFRenderer)
	storage := new(MockPDFStorage)
	svc := newTestService(renderer, storage)

	renderer.On("Render", mock.Anything, mock.Anything).
		Return(nil, infra.NewRenderError(infra.ErrCodeRenderTimeout, "PDF rendering timed out", context.DeadlineExceeded))

	_, err := svc.GenerateCheckRequestPDF(context.Background(), validCheckInput())
	require.Error(t, err)
	assert.Equal(t, infra.ErrCodeRenderTimeout, shared.CodeOf(err))
	storage.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestGenerateCheckRequestPDF_InvalidInputSkipsRenderer(t *testing.T) {
	renderer := new(MockPDFRenderer)
	svc := newTestService(renderer, nil)

	input := validCheckInput()
	input.Amount = wordsapp.NewAmountValue("abc")

	_, err := svc.GenerateCheckRequestPDF(context.Background(), input)
	assert.ErrorIs(t, err, amountwords.ErrInvalidAmount)
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestGenerateMemorandumPDF_StorageFailure(t *testing.T) {
	renderer := new(MockPDFRenderer)
	storage := new(MockPDFStorage)
	svc := newTestService(renderer, storage)

	renderer.On("Render", mock.Anything, mock.Anything).Return(fakePDF(), nil)
	storage.On("Store", mock.Anything, mock.Anything).
		Return(nil, infra.NewRenderError(infra.ErrCodeStorageFailed, "failed to write PDF file", errors.New("disk full")))

	_, err := svc.GenerateMemorandumPDF(context.Background(), validMemoInput())
	require.Error(t, err)
	assert.Equal(t, infra.ErrCodeStorageFailed, shared.CodeOf(err))
}

// =============================================================================
// Stored Documents
// =============================================================================

func TestOpenDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("storage disabled", func(t *testing.T) {
		svc := newTestService(nil, nil)
		_, err := svc.OpenDocument(ctx, "check_request/2024/05/abc.pdf")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("found", func(t *testing.T) {
		storage := new(MockPDFStorage)
		svc := newTestService(nil, storage)
		storage.On("Get", mock.Anything, "memorandum/2024/05/x.pdf").
			Return(io.NopCloser(strings.NewReader("%PDF")), nil)

		rc, err := svc.OpenDocument(ctx, "memorandum/2024/05/x.pdf")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(data))
	})

	t.Run("missing file maps to not found", func(t *testing.T) {
		storage := new(MockPDFStorage)
		svc := newTestService(nil, storage)
		storage.On("Get", mock.Anything, "nope.pdf").
			Return(nil, infra.NewRenderError(infra.ErrCodeNotFound, "PDF not found", nil))

		_, err := svc.OpenDocument(ctx, "nope.pdf")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// =============================================================================
// Reference Data
// =============================================================================

func TestGetDocumentTypes(t *testing.T) {
	svc := newTestService(nil, nil)

	types := svc.GetDocumentTypes()
	require.Len(t, types, 2)
	assert.Equal(t, "CHECK_REQUEST", types[0].Code)
	assert.Equal(t, "Solicitud de cheque", types[0].DisplayName)
}

func TestGetPaperSizes(t *testing.T) {
	svc := newTestService(nil, nil)

	sizes := svc.GetPaperSizes()
	require.Len(t, sizes, 3)
	assert.Equal(t, "CHECK", sizes[2].Code)
	assert.Equal(t, 203, sizes[2].Width)
	assert.Equal(t, 89, sizes[2].Height)
}

func TestGetTemplates(t *testing.T) {
	svc := newTestService(nil, nil)

	templates := svc.GetTemplates()
	require.Len(t, templates, 3)

	defaults := 0
	for _, tmpl := range templates {
		if tmpl.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 2, defaults)
}
