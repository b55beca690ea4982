package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/oteladapters"
)

func Test_SlogBridgeLogger_WritesAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "executed sql for: insert")
	logger.InfoContext(ctx, "loanstore operation: loan inserted", "loan_id", "01J0000000000000000000000")
	logger.WarnContext(ctx, "loanstore operation: active loan conflict")
	logger.ErrorContext(ctx, "loanstore operation: update failed", "error", "boom")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"level":"ERROR"`)
	assert.Contains(t, output, `"loan_id":"01J0000000000000000000000"`)
	assert.Contains(t, output, `"error":"boom"`)
}

func Test_SlogBridgeLogger_RespectsHandlerLevel(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)

	// act
	logger.InfoContext(context.Background(), "hidden")
	logger.WarnContext(context.Background(), "visible")

	// assert
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func Test_NewSlogBridgeLogger_UsesGlobalProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("loans")

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "started", "addr", ":8080")
	})
}

func Test_OTelLogger_ToleratesArbitraryArgs(t *testing.T) {
	// arrange
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))
	ctx := context.Background()

	// act & assert
	assert.NotPanics(t, func() {
		logger.DebugContext(ctx, "debug", "count", 3)
		logger.InfoContext(ctx, "info", "ok", true, "dangling")
		logger.WarnContext(ctx, "warn", 42, "non-string key")
		logger.ErrorContext(ctx, "error")
	})
}
