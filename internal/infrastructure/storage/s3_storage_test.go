package storage

import (
	"context"
	"testing"

	"github.com/exos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{
			Bucket:       "exos-prints",
			AccessKey:    "test-key",
			SecretKey:    "test-secret",
			Region:       "us-east-1",
			Endpoint:     "http://localhost:9000",
			UsePathStyle: true,
		}, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "exos-prints", storage.Bucket())
		assert.NotNil(t, storage.logger)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
		expected string
	}{
		{"default", "", false, "http://localhost:9000"},
		{"keeps scheme", "https://s3.amazonaws.com", false, "https://s3.amazonaws.com"},
		{"adds http", "minio:9000", false, "http://minio:9000"},
		{"adds https", "minio:9000", true, "https://minio:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeEndpoint(tt.endpoint, tt.useSSL)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := normalizeEndpoint("http://", false)
	assert.Error(t, err)
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	storage, err := NewS3ObjectStorage(&config.StorageConfig{
		Bucket:    "exos-prints",
		AccessKey: "test-key",
		SecretKey: "test-secret",
	})
	require.NoError(t, err)
	ctx := context.Background()

	assert.Error(t, storage.Upload(ctx, "", []byte("x"), "application/pdf"))
	_, err = storage.Download(ctx, "")
	assert.Error(t, err)
	assert.Error(t, storage.DeleteObject(ctx, ""))
	_, err = storage.ObjectExists(ctx, "")
	assert.Error(t, err)
}
