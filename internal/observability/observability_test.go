package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("debug", false)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("nonsense", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))

	logger, err = NewLogger("", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestLoggerContextRoundTrip(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("hello")
	require.Equal(t, 1, logs.Len())

	assert.NotNil(t, FromContext(context.Background()))
	assert.Equal(t, ctx, WithLogger(ctx, nil))
}

func TestSpansAreNoopWithoutProvider(t *testing.T) {
	t.Parallel()

	ctx, span := StartPageSpan(context.Background(), "render", "/a/")
	EndSpan(span, errors.New("boom"))
	assert.Empty(t, TraceID(ctx))
}

func TestRequestSpanKeepsRemoteTraceID(t *testing.T) {
	t.Parallel()

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		SpanID:     trace.SpanID{1, 2, 3, 4, 5, 6, 7, 8},
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	parent := trace.ContextWithRemoteSpanContext(context.Background(), sc)
	ctx, span := StartRequestSpan(parent, "GET", "/a/")
	defer EndSpan(span, nil)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", TraceID(ctx))
}
