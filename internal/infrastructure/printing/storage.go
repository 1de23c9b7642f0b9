package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/exos/backend/internal/domain/printing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	pdfContentType = "application/pdf"
	defaultBaseURL = "/api/v1/print/files"
)

// PDFStorage stores generated PDFs and resolves them by relative path
type PDFStorage interface {
	// Store saves a PDF file and returns its path and URL
	Store(ctx context.Context, req *StoreRequest) (*StoreResult, error)
	// Get opens a stored PDF
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes a stored PDF; a missing file is not an error
	Delete(ctx context.Context, path string) error
	// GetURL returns the accessible URL for a stored PDF
	GetURL(path string) string
}

// StoreRequest contains the parameters for storing a PDF
type StoreRequest struct {
	DocType    printing.DocType
	DocumentID uuid.UUID
	PDFData    []byte
}

// StoreResult contains the result of storing a PDF
type StoreResult struct {
	// Path is the storage path relative to the storage root
	Path string
	URL  string
	Size int64
}

// storagePath builds {doc_type}/{year}/{month}/{document_id}.pdf
func storagePath(req *StoreRequest, now time.Time) string {
	return path.Join(
		strings.ToLower(req.DocType.String()),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		req.DocumentID.String()+".pdf",
	)
}

func validateStoreRequest(ctx context.Context, req *StoreRequest) error {
	if err := ctx.Err(); err != nil {
		return NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	if req == nil {
		return NewRenderError(ErrCodeStorageFailed, "store request is nil", nil)
	}
	if !req.DocType.IsValid() {
		return NewRenderError(ErrCodeStorageFailed, "document type is invalid", nil)
	}
	if req.DocumentID == uuid.Nil {
		return NewRenderError(ErrCodeStorageFailed, "document ID is required", nil)
	}
	if len(req.PDFData) == 0 {
		return NewRenderError(ErrCodeStorageFailed, "PDF data is empty", nil)
	}
	return nil
}

// cleanRelativePath rejects absolute paths and ".." components
func cleanRelativePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" || containsDotDot(p) {
		return "", NewRenderError(ErrCodeStorageFailed, "invalid path", nil)
	}
	clean := path.Clean(filepath.ToSlash(p))
	if path.IsAbs(clean) || filepath.IsAbs(p) {
		return "", NewRenderError(ErrCodeStorageFailed, "invalid path", nil)
	}
	return clean, nil
}

// containsDotDot checks the raw path for ".." before any normalization
func containsDotDot(p string) bool {
	parts := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	return slices.Contains(parts, "..")
}

func joinURL(base, p string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

// =============================================================================
// File system
// =============================================================================

// FileSystemStorageConfig contains configuration for file system storage
type FileSystemStorageConfig struct {
	// BasePath is the root directory for PDF storage
	BasePath string
	// BaseURL is the URL prefix used by GetURL
	BaseURL string
	Logger  *zap.Logger
}

// FileSystemStorage stores PDFs on the local file system
type FileSystemStorage struct {
	config *FileSystemStorageConfig
	logger *zap.Logger
}

// NewFileSystemStorage creates a file system PDF storage, creating BasePath if needed
func NewFileSystemStorage(config *FileSystemStorageConfig) (*FileSystemStorage, error) {
	if config == nil {
		config = &FileSystemStorageConfig{}
	}
	if config.BasePath == "" {
		config.BasePath = "data/prints"
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	if err := os.MkdirAll(config.BasePath, 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed,
			fmt.Sprintf("failed to create storage directory: %s", config.BasePath), err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileSystemStorage{
		config: config,
		logger: logger,
	}, nil
}

// Store writes the PDF under BasePath
func (s *FileSystemStorage) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	if err := validateStoreRequest(ctx, req); err != nil {
		return nil, err
	}

	relativePath := storagePath(req, time.Now())
	fullPath := filepath.Join(s.config.BasePath, filepath.FromSlash(relativePath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to create directory", err)
	}
	if err := os.WriteFile(fullPath, req.PDFData, 0o644); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to write PDF file", err)
	}

	url := s.GetURL(relativePath)
	s.logger.Info("PDF stored",
		zap.String("path", fullPath),
		zap.Int("size", len(req.PDFData)),
		zap.String("url", url))

	return &StoreResult{
		Path: relativePath,
		URL:  url,
		Size: int64(len(req.PDFData)),
	}, nil
}

// Get opens a PDF by its relative path
func (s *FileSystemStorage) Get(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}

	fullPath, err := s.resolve(p)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewRenderError(ErrCodeNotFound, "PDF not found", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open PDF file", err)
	}
	return file, nil
}

// Delete removes a PDF file
func (s *FileSystemStorage) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}

	fullPath, err := s.resolve(p)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return NewRenderError(ErrCodeStorageFailed, "failed to delete PDF file", err)
	}

	s.logger.Info("PDF deleted", zap.String("path", p))
	return nil
}

// CleanupOlderThan removes PDFs not modified within age
func (s *FileSystemStorage) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	deleted := 0

	err := filepath.WalkDir(s.config.BasePath, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".pdf" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(p); err == nil {
				deleted++
				s.logger.Debug("deleted old PDF", zap.String("path", p))
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return deleted, NewRenderError(ErrCodeStorageFailed, "cleanup walk failed", err)
	}

	s.logger.Info("PDF cleanup completed",
		zap.Int("deleted", deleted),
		zap.Duration("age", age))

	return deleted, nil
}

// GetURL returns the accessible URL for a stored PDF
func (s *FileSystemStorage) GetURL(p string) string {
	return joinURL(s.config.BaseURL, filepath.ToSlash(filepath.Clean(p)))
}

// resolve maps a relative path to a file under BasePath
func (s *FileSystemStorage) resolve(p string) (string, error) {
	clean, err := cleanRelativePath(p)
	if err != nil {
		s.logger.Warn("blocked invalid storage path", zap.String("path", p))
		return "", err
	}

	absBase, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve base path", err)
	}
	absPath, err := filepath.Abs(filepath.Join(absBase, filepath.FromSlash(clean)))
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve file path", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		s.logger.Warn("path escape attempt blocked", zap.String("path", p))
		return "", NewRenderError(ErrCodeStorageFailed, "invalid path", nil)
	}
	return absPath, nil
}

// =============================================================================
// Object storage
// =============================================================================

// ObjectStore is the subset of an object storage client needed to keep PDFs
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteObject(ctx context.Context, key string) error
}

// ErrObjectNotFound is returned by ObjectStore implementations for missing keys
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorageConfig contains configuration for object storage backed PDFs
type ObjectStorageConfig struct {
	// Prefix is prepended to every object key
	Prefix  string
	BaseURL string
	Logger  *zap.Logger
}

// ObjectStorage stores PDFs in an S3-compatible bucket
type ObjectStorage struct {
	store  ObjectStore
	prefix string
	base   string
	logger *zap.Logger
}

// NewObjectStorage wraps an ObjectStore as PDFStorage
func NewObjectStorage(store ObjectStore, config *ObjectStorageConfig) (*ObjectStorage, error) {
	if store == nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "object store is required", nil)
	}
	if config == nil {
		config = &ObjectStorageConfig{}
	}

	s := &ObjectStorage{
		store:  store,
		prefix: strings.Trim(config.Prefix, "/"),
		base:   config.BaseURL,
		logger: config.Logger,
	}
	if s.base == "" {
		s.base = defaultBaseURL
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

// Store uploads the PDF
func (s *ObjectStorage) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	if err := validateStoreRequest(ctx, req); err != nil {
		return nil, err
	}

	relativePath := storagePath(req, time.Now())
	if err := s.store.Upload(ctx, s.key(relativePath), req.PDFData, pdfContentType); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to upload PDF", err)
	}

	url := s.GetURL(relativePath)
	s.logger.Info("PDF uploaded",
		zap.String("key", s.key(relativePath)),
		zap.Int("size", len(req.PDFData)))

	return &StoreResult{
		Path: relativePath,
		URL:  url,
		Size: int64(len(req.PDFData)),
	}, nil
}

// Get downloads a PDF by its relative path
func (s *ObjectStorage) Get(ctx context.Context, p string) (io.ReadCloser, error) {
	clean, err := cleanRelativePath(p)
	if err != nil {
		return nil, err
	}
	body, err := s.store.Download(ctx, s.key(clean))
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, NewRenderError(ErrCodeNotFound, "PDF not found", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to download PDF", err)
	}
	return body, nil
}

// Delete removes a PDF object
func (s *ObjectStorage) Delete(ctx context.Context, p string) error {
	clean, err := cleanRelativePath(p)
	if err != nil {
		return err
	}
	if err := s.store.DeleteObject(ctx, s.key(clean)); err != nil && !errors.Is(err, ErrObjectNotFound) {
		return NewRenderError(ErrCodeStorageFailed, "failed to delete PDF", err)
	}
	return nil
}

// GetURL returns the accessible URL for a stored PDF
func (s *ObjectStorage) GetURL(p string) string {
	return joinURL(s.base, path.Clean(p))
}

func (s *ObjectStorage) key(p string) string {
	if s.prefix == "" {
		return p
	}
	return s.prefix + "/" + p
}

var (
	_ PDFStorage = (*FileSystemStorage)(nil)
	_ PDFStorage = (*ObjectStorage)(nil)
)
