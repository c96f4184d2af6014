package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return slog.String("request_id", id), true
	}
	return slog.Attr{}, false
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger_JSONWithExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, Config{Level: "info"}, requestIDExtractor, nil)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-42")
	log.InfoContext(ctx, "product created", slog.String("slug", "office-365"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "product created", entry["msg"])
	assert.Equal(t, "office-365", entry["slug"])
	assert.Equal(t, "req-42", entry["request_id"])
}

func TestNewLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, Config{Level: "warn"})

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, Config{Level: "debug", Format: "text"})
	log.Debug("backfill started", slog.Int("products", 3))

	out := buf.String()
	assert.True(t, strings.Contains(out, "msg=\"backfill started\""), out)
	assert.Contains(t, out, "products=3")
}

func TestLogHandlerDecorator_WithAttrsKeepsExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	log := slog.New(NewLogHandlerDecorator(base, requestIDExtractor)).With(slog.String("component", "catalog"))

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-7")
	log.InfoContext(ctx, "hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog", entry["component"])
	assert.Equal(t, "req-7", entry["request_id"])
}

type failingHandler struct{ err error }

func (h failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }
func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h failingHandler) WithGroup(string) slog.Handler             { return h }

func TestMultiHandler_DeliversToAllAndJoinsErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	boom := errors.New("boom")
	h := newMultiHandler(failingHandler{err: boom}, slog.NewJSONHandler(&buf, nil))

	err := slog.New(h).Handler().Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "msg", 0))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "msg")
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := NewNope()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
