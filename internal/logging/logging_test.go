package logging

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("default level is info", func(t *testing.T) {
		result := New(Config{})
		assert.Equal(t, zerolog.InfoLevel, result.Logger.GetLevel())
		assert.False(t, result.UsingFile)
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		result := New(Config{Level: "chatty"})
		assert.Equal(t, zerolog.InfoLevel, result.Logger.GetLevel())
	})

	t.Run("debug level honored", func(t *testing.T) {
		result := New(Config{Level: "debug"})
		assert.Equal(t, zerolog.DebugLevel, result.Logger.GetLevel())
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		result := New(Config{File: path})
		assert.True(t, result.UsingFile)
		assert.Equal(t, path, result.FilePath)
	})

	t.Run("unopenable file degrades to console", func(t *testing.T) {
		result := New(Config{File: filepath.Join(t.TempDir(), "missing", "run.log")})
		assert.False(t, result.UsingFile)
		assert.True(t, result.FallbackUsed)
		assert.NotEmpty(t, result.FallbackReason)
	})
}

func TestContextRoundTrip(t *testing.T) {
	result := New(Config{Level: "warn"})
	ctx := result.Logger.WithContext(context.Background())

	got := FromContext(ctx)
	assert.Equal(t, zerolog.WarnLevel, got.GetLevel())
}

func TestTraceIDs(t *testing.T) {
	id := NewTraceID()
	require.Len(t, id, 26, "ULIDs are 26 characters")

	ctx := ContextWithTraceID(context.Background(), id)
	assert.Equal(t, id, TraceIDFromContext(ctx))

	// A bare context mints a fresh ID rather than returning empty.
	fresh := TraceIDFromContext(context.Background())
	assert.Len(t, fresh, 26)
	assert.NotEqual(t, id, fresh)
}
