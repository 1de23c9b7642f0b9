package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	logger := zap.NewExample()
	ctx := WithContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	ctx = context.WithValue(context.Background(), loggerKey, "not a logger")
	assert.NotNil(t, FromContext(ctx))
}

func TestFromContextOr(t *testing.T) {
	fallback := zap.NewExample()
	assert.Same(t, fallback, FromContextOr(context.Background(), fallback))
	assert.NotNil(t, FromContextOr(context.Background(), nil))

	scoped := zap.NewExample()
	ctx := WithContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContextOr(ctx, fallback))
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, enriched := WithRequestID(context.Background(), zap.New(core), "req-42")
	assert.Equal(t, "req-42", GetRequestID(ctx))

	enriched.Info("hello")
	FromContext(ctx).Info("again")

	entries := recorded.All()
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "req-42", e.ContextMap()["request_id"])
	}

	assert.Empty(t, GetRequestID(context.Background()))
}

func TestWithFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))

	ctx = WithFields(ctx, zap.String("currency", "euro"))
	FromContext(ctx).Info("converted")

	entry := recorded.All()[0]
	assert.Equal(t, "euro", entry.ContextMap()["currency"])
}
