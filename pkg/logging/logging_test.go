package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl)

	lvl, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	lvl, err = ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, WARN, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestRunIDIsAttached(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	ctx := WithRunID(context.Background(), "run-1")
	logger.Info(ctx, "hello", zap.Int("n", 1))
	logger.Debug(context.Background(), "no run")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1", entries[0].ContextMap()["run_id"])
	assert.EqualValues(t, 1, entries[0].ContextMap()["n"])
	_, ok := entries[1].ContextMap()["run_id"]
	assert.False(t, ok)
}

func TestGeneratedRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "")
	assert.Len(t, GetRunID(ctx), 36)
	assert.Equal(t, "no-run-id", GetRunID(context.Background()))
}

func TestGetLoggerFromContext(t *testing.T) {
	logger := FromZap(zap.NewNop())
	ctx := logger.IntoContext(context.Background())

	got, ctx2 := GetLogger(ctx)
	assert.Same(t, logger, got)
	assert.Equal(t, ctx, ctx2)

	fresh, ctx3 := GetLogger(context.Background())
	require.NotNil(t, fresh)
	again, _ := GetLogger(ctx3)
	assert.Same(t, fresh, again)
}
