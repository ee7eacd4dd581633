package logutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	ctx := WithLogger(context.Background(), l)
	Logger(ctx).Info("attached", zap.Int("n", 1))
	Logger(context.Background()).Info("background")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "attached", entry.Message)
	assert.Equal(t, int64(1), entry.ContextMap()["n"])
}

func TestReplaceGlobal(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := ReplaceGlobal(zap.New(core))
	defer ReplaceGlobal(prev)

	BgLogger().Debug("hello")
	assert.Equal(t, 1, logs.FilterMessage("hello").Len())

	ReplaceGlobal(nil)
	assert.NotNil(t, BgLogger())
}

func TestInitLogger(t *testing.T) {
	prev := BgLogger()
	defer ReplaceGlobal(prev)

	l, err := InitLogger("warn")
	require.NoError(t, err)
	assert.Same(t, l, BgLogger())
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))

	_, err = InitLogger("loud")
	assert.Error(t, err)
}
