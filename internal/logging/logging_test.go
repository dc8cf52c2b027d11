package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("Given a debug level When a logger is built Then debug is enabled", func(t *testing.T) {
		l, err := New(Config{Level: "debug", OutputPaths: []string{"stderr"}})

		require.NoError(t, err)
		assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Given an unknown level When a logger is built Then it falls back to info", func(t *testing.T) {
		l, err := New(Config{Level: "loud", Development: true})

		require.NoError(t, err)
		assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
		assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Given a logger in the context When it is read Then the same logger is returned", func(t *testing.T) {
		l := Nop().WithComponent("validation")

		assert.Same(t, l, FromContext(WithLogger(context.Background(), l)))
	})

	t.Run("Given an empty context When it is read Then the default logger is returned", func(t *testing.T) {
		assert.Same(t, Default(), FromContext(context.Background()))
	})
}

func TestZap(t *testing.T) {
	assert.NotNil(t, Nop().WithFile("saft.xml").Zap())
}
