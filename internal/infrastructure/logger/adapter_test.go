package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"suite run", "suite_run"},
		{"__x__", "x"},
		{"", "run"},
		{"???", "run"},
		{strings.Repeat("a", 80), strings.Repeat("a", 60)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitize(tt.in), tt.in)
	}
}

func TestLoggerAdapter_FieldsAndNames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewFromZap(zap.New(core))

	log.Named("resolver").WithField("run_id", "r1").Warn("no candidate", "action", "click")
	log.WithFields(map[string]any{"scenario": "sliders"}).Info("started")

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "resolver", first.LoggerName)
	assert.Equal(t, zapcore.WarnLevel, first.Level)
	assert.Equal(t, "r1", first.ContextMap()["run_id"])
	assert.Equal(t, "click", first.ContextMap()["action"])
	assert.Equal(t, "sliders", logs.All()[1].ContextMap()["scenario"])
}

func TestNewLoggerAdapter_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("file test")
	cfg.Dir = dir
	cfg.Console = zapcore.AddSync(&strings.Builder{})

	log, err := NewLoggerAdapter(cfg)
	require.NoError(t, err)
	log.Info("hello", "k", "v")
	require.NoError(t, log.Close())

	matches, err := filepath.Glob(filepath.Join(dir, "*_file_test.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}
