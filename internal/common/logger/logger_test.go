// internal/common/logger/logger_test.go
package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "rank-card-recommendations"})

	log.Info("ranked", map[string]interface{}{"count": 5})
	log.WithError(errors.New("boom")).Error("failed", nil)
	log.Warn("cache miss", map[string]interface{}{"error": errors.New("redis down")})

	entries := logs.All()
	require.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, "rank-card-recommendations", first["taskType"])
	assert.EqualValues(t, 5, first["count"])

	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, "redis down", entries[2].ContextMap()["error"])
}

func TestNewLoggers(t *testing.T) {
	assert.NotNil(t, New("info", "json"))
	assert.NotNil(t, New("debug", "console"))
	assert.NotPanics(t, func() {
		NewNoOpLogger().With(map[string]interface{}{"a": 1}).Debug("noop", nil)
		NewTestLogger(t).Info("test", map[string]interface{}{"k": "v"})
		NewStructured("error", "json").Warn("dropped", nil)
	})
}
