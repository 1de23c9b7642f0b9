package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	printingapp "github.com/exos/backend/internal/application/printing"
	"github.com/exos/backend/internal/interfaces/http/dto"
	"github.com/exos/backend/internal/interfaces/http/middleware"
	"github.com/exos/backend/internal/interfaces/http/router"
	infra "github.com/exos/backend/internal/infrastructure/printing"
	"github.com/exos/backend/internal/infrastructure/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakePDF = []byte("%PDF-1.4 fake")

// stubRenderer returns a fixed PDF, or err when set
type stubRenderer struct {
	err      error
	requests []*infra.RenderRequest
}

func (r *stubRenderer) Render(_ context.Context, req *infra.RenderRequest) (*infra.RenderResult, error) {
	r.requests = append(r.requests, req)
	if r.err != nil {
		return nil, r.err
	}
	return &infra.RenderResult{PDFData: fakePDF, PageCount: 1, RenderDuration: time.Millisecond}, nil
}

func (r *stubRenderer) Close() error { return nil }

type printFixture struct {
	engine   *gin.Engine
	renderer *stubRenderer
	objects  *storage.MemoryObjectStorage
}

// newPrintFixture wires the print routes. A nil renderer disables PDFs;
// withStorage backs generated PDFs with in-memory object storage.
func newPrintFixture(t *testing.T, renderer *stubRenderer, withStorage bool) *printFixture {
	t.Helper()
	middleware.SetupValidator()

	f := &printFixture{renderer: renderer}

	var pdfRenderer infra.PDFRenderer
	if renderer != nil {
		pdfRenderer = renderer
	}
	var pdfStorage infra.PDFStorage
	if withStorage {
		f.objects = storage.NewMemoryObjectStorage()
		objectStorage, err := infra.NewObjectStorage(f.objects, &infra.ObjectStorageConfig{Prefix: "prints"})
		require.NoError(t, err)
		pdfStorage = objectStorage
	}

	service := printingapp.NewPrintService(nil, pdfRenderer, pdfStorage, nil)

	f.engine = gin.New()
	f.engine.Use(middleware.RequestID())
	r := router.NewRouter(f.engine)
	r.Register(PrintRoutes(NewPrintHandler(service)))
	r.Setup()
	return f
}

func (f *printFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

const checkRequestBody = `{
	"ne": "NE-2026-0042",
	"beneficiary": "Aduana Central",
	"concept": "Pago de impuestos DUA",
	"amount": 15000,
	"currency": "cordoba",
	"requested_by": "Operaciones"
}`

func TestPrintHandler_PreviewCheckRequest(t *testing.T) {
	f := newPrintFixture(t, nil, false)

	t.Run("renders html with the amount in words", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/print/check-requests/preview", checkRequestBody)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "CHECK_REQUEST", data["document_type"])
		assert.Equal(t, "QUINCE MIL CON 00/100 CORDOBAS", data["amount_in_words"])
		html := data["html"].(string)
		assert.Contains(t, html, "QUINCE MIL CON 00/100 CORDOBAS")
		assert.Contains(t, html, "NE-2026-0042")
		assert.Contains(t, html, "ADUANA CENTRAL")
	})

	t.Run("missing required fields", func(t *testing.T) {
		w := f.do(http.MethodPost, "/api/v1/print/check-requests/preview", `{"amount": 10}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		fields := make([]string, 0, len(resp.Error.Details))
		for _, d := range resp.Error.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"ne", "beneficiary"}, fields)
	})

	t.Run("unknown paper size", func(t *testing.T) {
		body := `{"ne": "NE-1", "beneficiary": "X", "amount": 1, "paper_size": "LEGAL"}`
		w := f.do(http.MethodPost, "/api/v1/print/check-requests/preview", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	})

	t.Run("paper size in lower case", func(t *testing.T) {
		body := `{"ne": "NE-1", "beneficiary": "X", "amount": 1, "paper_size": "check"}`
		w := f.do(http.MethodPost, "/api/v1/print/check-requests/preview", body)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "CHECK", decodeResponse(t, w).Data.(map[string]any)["paper_size"])
	})

	t.Run("exponent amount beyond range", func(t *testing.T) {
		body := `{"ne": "NE-1", "beneficiary": "X", "amount": "1e2000000"}`
		w := f.do(http.MethodPost, "/api/v1/print/check-requests/preview", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeAmountOutOfRange, decodeResponse(t, w).Error.Code)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		body := `{"ne": "NE-1", "beneficiary": "X", "amount": 0}`
		w := f.do(http.MethodPost, "/api/v1/print/check-requests/preview", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidAmount, decodeResponse(t, w).Error.Code)
	})
}

func TestPrintHandler_PreviewMemorandum(t *testing.T) {
	f := newPrintFixture(t, nil, false)

	t.Run("without amount", func(t *testing.T) {
		body := `{"ne": "NE-7", "to": "Gerencia", "subject": "Liquidacion", "body": "Adjunto liquidacion."}`
		w := f.do(http.MethodPost, "/api/v1/print/memoranda/preview", body)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "MEMORANDUM", data["document_type"])
		assert.NotContains(t, data, "amount_in_words")
	})

	t.Run("check paper is rejected", func(t *testing.T) {
		body := `{"ne": "NE-7", "to": "Gerencia", "subject": "Liquidacion", "paper_size": "CHECK"}`
		w := f.do(http.MethodPost, "/api/v1/print/memoranda/preview", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidPaperSize, decodeResponse(t, w).Error.Code)
	})
}

func TestPrintHandler_GeneratePDF(t *testing.T) {
	t.Run("unavailable without renderer", func(t *testing.T) {
		f := newPrintFixture(t, nil, false)

		w := f.do(http.MethodPost, "/api/v1/print/check-requests/pdf", checkRequestBody)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodePDFUnavailable, decodeResponse(t, w).Error.Code)
	})

	t.Run("streams the pdf without storage", func(t *testing.T) {
		f := newPrintFixture(t, &stubRenderer{}, false)

		w := f.do(http.MethodPost, "/api/v1/print/check-requests/pdf?disposition=inline", checkRequestBody)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, fakePDF, w.Body.Bytes())
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), `inline; filename="check_request_`))
		assert.NotEmpty(t, w.Header().Get(HeaderDocumentID))
		assert.Equal(t, "1", w.Header().Get(HeaderPageCount))
		assert.Empty(t, w.Header().Get(HeaderDocumentURL))

		require.Len(t, f.renderer.requests, 1)
		assert.Contains(t, f.renderer.requests[0].HTML, "QUINCE MIL CON 00/100 CORDOBAS")
	})

	t.Run("render timeout maps to 504", func(t *testing.T) {
		f := newPrintFixture(t, &stubRenderer{
			err: infra.NewRenderError(infra.ErrCodeRenderTimeout, "PDF rendering timed out", context.DeadlineExceeded),
		}, false)

		w := f.do(http.MethodPost, "/api/v1/print/memoranda/pdf",
			`{"ne": "NE-7", "to": "Gerencia", "subject": "Liquidacion"}`)

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
		assert.Equal(t, dto.ErrCodeRenderTimeout, decodeResponse(t, w).Error.Code)
	})

	t.Run("stored pdf can be fetched back", func(t *testing.T) {
		f := newPrintFixture(t, &stubRenderer{}, true)

		w := f.do(http.MethodPost, "/api/v1/print/check-requests/pdf", checkRequestBody)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment;"))
		url := w.Header().Get(HeaderDocumentURL)
		require.True(t, strings.HasPrefix(url, "/api/v1/print/files/check_request/"), url)
		require.Len(t, f.objects.Keys(), 1)
		assert.True(t, strings.HasPrefix(f.objects.Keys()[0], "prints/check_request/"))

		w = f.do(http.MethodGet, url, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, fakePDF, w.Body.Bytes())
	})
}

func TestPrintHandler_ServePDF(t *testing.T) {
	f := newPrintFixture(t, &stubRenderer{}, true)

	tests := []struct {
		name         string
		path         string
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "missing file",
			path:         "check_request/2026/10/6f1c1f0e-0000-4000-8000-000000000000.pdf",
			expectedCode: http.StatusNotFound,
			expectedErr:  dto.ErrCodeNotFound,
		},
		{
			name:         "bad month",
			path:         "check_request/2026/13/6f1c1f0e-0000-4000-8000-000000000000.pdf",
			expectedCode: http.StatusBadRequest,
			expectedErr:  dto.ErrCodeBadRequest,
		},
		{
			name:         "not a pdf",
			path:         "check_request/2026/10/notes.txt",
			expectedCode: http.StatusBadRequest,
			expectedErr:  dto.ErrCodeBadRequest,
		},
		{
			name:         "traversal",
			path:         "check_request/../../etc/passwd",
			expectedCode: http.StatusBadRequest,
			expectedErr:  dto.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodGet, "/api/v1/print/files/"+tt.path, "")

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedErr, decodeResponse(t, w).Error.Code)
		})
	}

	t.Run("storage disabled", func(t *testing.T) {
		f := newPrintFixture(t, nil, false)
		w := f.do(http.MethodGet, "/api/v1/print/files/check_request/2026/10/6f1c1f0e-0000-4000-8000-000000000000.pdf", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPrintHandler_ReferenceData(t *testing.T) {
	f := newPrintFixture(t, nil, false)

	t.Run("document types", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/v1/print/document-types", "")
		require.Equal(t, http.StatusOK, w.Code)
		items := decodeResponse(t, w).Data.([]any)
		assert.Len(t, items, 2)
	})

	t.Run("paper sizes", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/v1/print/paper-sizes", "")
		require.Equal(t, http.StatusOK, w.Code)
		items := decodeResponse(t, w).Data.([]any)
		assert.Len(t, items, 3)
	})

	t.Run("templates", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/v1/print/templates", "")
		require.Equal(t, http.StatusOK, w.Code)
		items := decodeResponse(t, w).Data.([]any)
		assert.NotEmpty(t, items)
	})
}
