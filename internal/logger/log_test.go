package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/6540011013-oss/Room-Status-System/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
	assert.NotNil(t, Ctx(ctx))
}

func TestInit_FileWriter(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closer := Init(config.LogConfig{Level: "debug", File: filepath.Join(t.TempDir(), "app.log"), MaxSizeMB: 1})
	require.NotNil(t, closer)
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	assert.NoError(t, closer.Close())
}
