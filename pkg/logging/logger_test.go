package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/quotebook/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")

	out := buf.String()
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "warning message")
	assert.NotContains(t, out, "debug message")
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithSyncRun(ctx, "run-42")
	ctx = logging.WithGateway(ctx, "http")
	ctx = logging.WithOperation(ctx, "sync")

	logging.FromContext(ctx).Info().Msg("fetched remote quotes")

	assert.True(t, tl.ContainsAll(`"sync_run":"run-42"`, `"gateway":"http"`, `"operation":"sync"`, "fetched remote quotes"))
	assert.Equal(t, 1, tl.Count())
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.NotNil(t, logging.FromContext(nil))
	assert.NotNil(t, logging.FromContext(logging.WithLogger(context.Background(), nil)))
}

func TestRequestID(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRequestID(ctx, "req-1")

	assert.Equal(t, "req-1", logging.RequestID(ctx))
	assert.Empty(t, logging.RequestID(context.Background()))

	logging.FromContext(ctx).Info().Msg("handled")
	assert.True(t, tl.Contains(`"request_id":"req-1"`))
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Info().Str("key", "quotes").Msg("saved")
	require.Equal(t, 1, tl.Count())
	assert.True(t, tl.Contains("saved"))

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
	assert.Empty(t, tl.Lines())
}

func TestDisableLoggingForTest(t *testing.T) {
	buf := &bytes.Buffer{}
	original := *logging.Default()
	logging.SetDefault(zerolog.New(buf))
	t.Cleanup(func() { logging.SetDefault(original) })

	t.Run("silenced", func(t *testing.T) {
		logging.DisableLoggingForTest(t)
		logging.Error().Msg("hidden")
	})
	assert.Empty(t, buf.String())

	logging.Error().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewConsole(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	l := logging.NewConsole()
	assert.NotNil(t, &l)
	assert.NotNil(t, logging.NewNopLogger())
}
