package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"bridgequote/internal/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_JSONWithAppFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := newLogger(
		config.LoggerConfig{Level: "debug", Encoding: "json"},
		config.AppConfig{Name: "bridgequote", Version: "1.2.3"},
		zapcore.AddSync(&buf),
	)
	require.NoError(t, err)

	l.Debug("hello")
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "hello", entry["msg"])
	require.Equal(t, "bridgequote", entry["app"])
	require.Equal(t, "1.2.3", entry["version"])
	require.Contains(t, entry, "timestamp")
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := newLogger(config.LoggerConfig{Level: "loud"}, config.AppConfig{}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	l.Debug("dropped")
	require.Zero(t, buf.Len())
	l.Info("kept")
	require.Contains(t, buf.String(), "kept")
}
