package main

import (
	"context"
	"fmt"
	"time"

	wordsapp "github.com/exos/backend/internal/application/amountwords"
	printingapp "github.com/exos/backend/internal/application/printing"
	"github.com/exos/backend/internal/domain/amountwords"
	"github.com/exos/backend/internal/infrastructure/config"
	"github.com/exos/backend/internal/infrastructure/logger"
	printinginfra "github.com/exos/backend/internal/infrastructure/printing"
	"github.com/exos/backend/internal/infrastructure/scheduler"
	"github.com/exos/backend/internal/infrastructure/storage"
	"github.com/exos/backend/internal/interfaces/http/handler"
	"github.com/exos/backend/internal/interfaces/http/middleware"
	"github.com/exos/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// app holds the wired HTTP engine and the resources it owns
type app struct {
	engine   *gin.Engine
	renderer *printinginfra.ChromedpRenderer
	sweeper  *scheduler.RetentionSweeper
	log      *zap.Logger
}

// newApp wires configuration into services and routes. ctx bounds background
// work such as the retention sweeper. Resources acquired before a failure
// are released.
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{log: log}
	if err := a.wire(ctx, cfg); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// wire builds the engine before starting the sweeper so a routing error
// leaves nothing running.
func (a *app) wire(ctx context.Context, cfg *config.Config) error {
	log := a.log
	table, err := cfg.Currency.Table()
	if err != nil {
		return fmt.Errorf("currency table: %w", err)
	}
	formatter := amountwords.NewFormatter(amountwords.WithCurrencies(table))

	pdfStorage, err := newPDFStorage(ctx, &cfg.Storage, log)
	if err != nil {
		return err
	}

	// A nil renderer disables PDF endpoints
	var pdfRenderer printinginfra.PDFRenderer
	if cfg.Print.PDFEnabled {
		a.renderer = printinginfra.NewChromedpRenderer(&printinginfra.ChromedpConfig{
			DefaultTimeout: cfg.Print.RenderTimeout,
			RemoteURL:      cfg.Print.ChromeURL,
			NoSandbox:      cfg.Print.NoSandbox,
			Logger:         log.Named("chromedp"),
		})
		pdfRenderer = a.renderer
		log.Info("PDF rendering enabled", zap.String("chrome_url", cfg.Print.ChromeURL))
	}

	wordsService := wordsapp.NewService(formatter,
		wordsapp.WithDefaultCurrency(cfg.Currency.Default),
		wordsapp.WithLogger(log))
	printService := printingapp.NewPrintService(
		printinginfra.NewTemplateEngine(printinginfra.WithFormatter(formatter)),
		pdfRenderer,
		pdfStorage,
		log,
		printingapp.WithDefaultCurrency(cfg.Currency.Default),
		printingapp.WithRenderTimeout(cfg.Print.RenderTimeout),
	)

	a.engine, err = newEngine(cfg, log, wordsService, printService)
	if err != nil {
		return err
	}

	// Object storage backends rely on bucket lifecycle rules instead
	if fs, ok := pdfStorage.(*printinginfra.FileSystemStorage); ok && cfg.Storage.RetentionDays > 0 {
		sweeper, err := scheduler.NewRetentionSweeper(
			scheduler.RetentionDays(cfg.Storage.RetentionDays), fs, log.Named("retention"))
		if err != nil {
			return err
		}
		if err := sweeper.Start(ctx); err != nil {
			return err
		}
		a.sweeper = sweeper
	}
	return nil
}

// Close stops background work and releases the browser, if one was started
func (a *app) Close() {
	if a.sweeper != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.sweeper.Stop(ctx); err != nil {
			a.log.Warn("Failed to stop retention sweeper", zap.Error(err))
		}
	}
	if a.renderer != nil {
		if err := a.renderer.Close(); err != nil {
			a.log.Warn("Failed to close PDF renderer", zap.Error(err))
		}
	}
}

// newEngine builds the gin engine with middleware and all route groups
func newEngine(
	cfg *config.Config,
	log *zap.Logger,
	wordsService *wordsapp.Service,
	printService *printingapp.PrintService,
) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("http.trusted_proxies: %w", err)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.IsProduction()

	// Request ID must run before the logger so every log line carries it
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.SecureWithConfig(securityCfg),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	systemHandler := handler.NewSystemHandler(handler.Capabilities{
		PDF:     printService.PDFEnabled(),
		Storage: printService.StorageEnabled(),
	})
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.SystemRoutes(systemHandler)).
		Register(handler.PrintRoutes(handler.NewPrintHandler(printService)))
	for _, g := range handler.AmountWordsRoutes(handler.NewAmountWordsHandler(wordsService)) {
		r.Register(g)
	}
	r.Setup()

	for _, route := range r.Routes() {
		log.Debug("Route registered",
			zap.String("group", route.Group),
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	return engine, nil
}

// newPDFStorage selects the storage backend. It returns nil for "none".
func newPDFStorage(ctx context.Context, cfg *config.StorageConfig, log *zap.Logger) (printinginfra.PDFStorage, error) {
	log = log.Named("storage")

	switch cfg.Backend {
	case config.StorageBackendFileSystem:
		fs, err := printinginfra.NewFileSystemStorage(&printinginfra.FileSystemStorageConfig{
			BasePath: cfg.BasePath,
			BaseURL:  cfg.BaseURL,
			Logger:   log,
		})
		if err != nil {
			return nil, fmt.Errorf("file system storage: %w", err)
		}
		log.Info("Storing PDFs on disk", zap.String("path", cfg.BasePath))
		return fs, nil

	case config.StorageBackendS3:
		s3Store, err := storage.NewS3ObjectStorage(cfg, storage.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		log.Info("Storing PDFs in object storage",
			zap.String("bucket", cfg.Bucket),
			zap.String("endpoint", cfg.Endpoint))
		return newObjectStorage(s3Store, cfg, log)

	case config.StorageBackendMemory:
		log.Warn("Storing PDFs in memory; files are lost on restart")
		return newObjectStorage(storage.NewMemoryObjectStorage(), cfg, log)

	default:
		log.Info("PDF storage disabled")
		return nil, nil
	}
}

func newObjectStorage(store printinginfra.ObjectStore, cfg *config.StorageConfig, log *zap.Logger) (printinginfra.PDFStorage, error) {
	s, err := printinginfra.NewObjectStorage(store, &printinginfra.ObjectStorageConfig{
		Prefix:  cfg.Prefix,
		BaseURL: cfg.BaseURL,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
