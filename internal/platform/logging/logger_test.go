package logging

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLogger_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("provider", "openligadb")

	logger.InfoContext(context.Background(), "standings fetched", "league", "bl1", "rows", 18)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "openligadb", fields["provider"])
	assert.Equal(t, "bl1", fields["league"])
	assert.EqualValues(t, 18, fields["rows"])
}

func TestLogger_MirrorReceivesEnabledRecords(t *testing.T) {
	core, _ := observer.New(LevelInfo)
	logger := FromZap(zap.New(core)).With("component", "sync")

	var (
		mu   sync.Mutex
		seen []string
		args [][]any
	)
	SetMirror(func(_ context.Context, level Level, msg string, a ...any) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, level.String()+":"+msg)
		args = append(args, a)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("dropped below level")
	logger.WarnContext(context.Background(), "row skipped", "external_id", "fd-100")

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"warn:row skipped"}, seen)
	assert.Equal(t, []any{"component", "sync", "external_id", "fd-100"}, args[0])
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	core, logs := observer.New(LevelInfo)
	logger := FromZap(zap.New(core))

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.ErrorContext(ctx, "fixture sync failed", "error", errors.New("upstream 503"), "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, sc.TraceID().String(), fields["trace_id"])
	assert.Equal(t, sc.SpanID().String(), fields["span_id"])
	assert.Equal(t, "upstream 503", fields["error"])
	assert.Contains(t, fields, "dangling")
}

func TestDefault_NilSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Info("no logger wired") })
	assert.NoError(t, l.Sync())

	SetDefault(nil)
	assert.NotNil(t, Default())
}
