package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/exos/backend/internal/infrastructure/config"
	printinginfra "github.com/exos/backend/internal/infrastructure/printing"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{Name: "exos-test", Env: "development", Port: "0"},
		HTTP: config.HTTPConfig{
			MaxBodySize:      1 << 10,
			CORSAllowOrigins: []string{"https://exos.example.com"},
			CORSAllowMethods: []string{"GET", "POST", "OPTIONS"},
			CORSAllowHeaders: []string{"Content-Type", "X-Request-ID"},
		},
		Currency: config.CurrencyConfig{Default: "dolar"},
		Print:    config.PrintConfig{RenderTimeout: time.Second},
		Storage: config.StorageConfig{
			Backend: config.StorageBackendNone,
			BaseURL: "/api/v1/print/files",
			Prefix:  "prints",
		},
	}
}

func TestNewPDFStorage(t *testing.T) {
	log := zap.NewNop()

	t.Run("none", func(t *testing.T) {
		s, err := newPDFStorage(context.Background(), &config.StorageConfig{Backend: config.StorageBackendNone}, log)
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("memory", func(t *testing.T) {
		s, err := newPDFStorage(context.Background(), &config.StorageConfig{
			Backend: config.StorageBackendMemory,
			Prefix:  "prints",
		}, log)
		require.NoError(t, err)
		assert.IsType(t, &printinginfra.ObjectStorage{}, s)
	})

	t.Run("file system", func(t *testing.T) {
		s, err := newPDFStorage(context.Background(), &config.StorageConfig{
			Backend:  config.StorageBackendFileSystem,
			BasePath: t.TempDir(),
			BaseURL:  "/api/v1/print/files",
		}, log)
		require.NoError(t, err)
		assert.IsType(t, &printinginfra.FileSystemStorage{}, s)
	})
}

func TestNewApp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	a, err := newApp(ctx, testConfig(t), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	assert.Nil(t, a.renderer)

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		a.engine.ServeHTTP(w, req)
		return w
	}

	t.Run("health", func(t *testing.T) {
		w := serve(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("amount words", func(t *testing.T) {
		w := serve(httptest.NewRequest(http.MethodGet, "/api/v1/amount-words?amount=1001000&currency=USD", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data struct {
				Text string `json:"text"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "UN MILLON MIL CON 00/100 DOLARES", body.Data.Text)
	})

	t.Run("print preview uses the configured default currency", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/print/check-requests/preview",
			strings.NewReader(`{"ne": "NE-1", "beneficiary": "Aduana", "amount": "2"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "DOS CON 00/100 DOLARES")
	})

	t.Run("pdf disabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/print/check-requests/pdf",
			strings.NewReader(`{"ne": "NE-1", "beneficiary": "Aduana", "amount": "2"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("body limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/amount-words",
			strings.NewReader(`{"amount": 1, "currency": "`+strings.Repeat("x", 2048)+`"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/amount-words", nil)
		req.Header.Set("Origin", "https://exos.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := serve(req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://exos.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewApp_RetentionSweeper(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := testConfig(t)
	cfg.Storage.Backend = config.StorageBackendFileSystem
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.RetentionDays = 30

	a, err := newApp(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, a.sweeper)
	assert.True(t, a.sweeper.IsRunning())

	a.Close()
	assert.False(t, a.sweeper.IsRunning())
}

func TestNewApp_FailureReleasesResources(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := testConfig(t)
	cfg.HTTP.TrustedProxies = []string{"not-an-address"}
	cfg.Print.PDFEnabled = true
	cfg.Print.ChromeURL = "ws://127.0.0.1:1"
	cfg.Storage.Backend = config.StorageBackendFileSystem
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.RetentionDays = 30

	a, err := newApp(ctx, cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http.trusted_proxies")
	assert.Nil(t, a)

	t.Run("sweeper is not started when the engine fails", func(t *testing.T) {
		a := &app{log: zap.NewNop()}
		err := a.wire(ctx, cfg)
		require.Error(t, err)
		assert.Nil(t, a.sweeper)
		require.NotNil(t, a.renderer)
		a.Close()
	})
}
