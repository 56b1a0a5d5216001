package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algointent/atomix/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected config.LogLevel
	}{
		{"off", config.LogLevelOff},
		{"none", config.LogLevelOff},
		{"OFF", config.LogLevelOff},
		{"error", config.LogLevelError},
		{"ERROR", config.LogLevelError},
		{"info", config.LogLevelInfo},
		{"debug", config.LogLevelDebug},
		{" debug ", config.LogLevelDebug},
		{"unknown", config.LogLevelError},
		{"", config.LogLevelError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("parse %q", tt.input), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, config.ParseLogLevel(tt.input))
		})
	}
}

func TestLogLevelString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "off", config.LogLevelOff.String())
	assert.Equal(t, "error", config.LogLevelError.String())
	assert.Equal(t, "info", config.LogLevelInfo.String())
	assert.Equal(t, "debug", config.LogLevelDebug.String())
	assert.Equal(t, "error", config.LogLevel(99).String())
}

func TestNewLogger_WritesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := config.NewLogger(config.LogLevelDebug, path)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.Error("an error: %s", "boom")
	logger.Info("fallback decimals used for asset %d", 42)
	logger.Debug("a debug line")

	data, err := os.ReadFile(path) // #nosec G304 -- temp path
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[ERROR] an error: boom")
	assert.Contains(t, content, "[INFO] fallback decimals used for asset 42")
	assert.Contains(t, content, "[DEBUG] a debug line")
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := config.NewLogger(config.LogLevelError, path)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.Error("kept")
	logger.Info("dropped info")
	logger.Debug("dropped debug")

	data, err := os.ReadFile(path) // #nosec G304 -- temp path
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "kept")
	assert.NotContains(t, content, "dropped info")
	assert.NotContains(t, content, "dropped debug")
}

func TestNewLogger_Off(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := config.NewLogger(config.LogLevelOff, path)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.Error("never written")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "log file should not be created when logging is off")
}

func TestNewLogger_CreatesDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "nested", "test.log")

	logger, err := config.NewLogger(config.LogLevelError, path)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.Error("hello")

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLogger_SetLevel(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := config.NewLogger(config.LogLevelError, path)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	assert.Equal(t, config.LogLevelError, logger.Level())

	logger.SetLevel(config.LogLevelDebug)
	assert.Equal(t, config.LogLevelDebug, logger.Level())

	logger.Debug("now visible")

	data, err := os.ReadFile(path) // #nosec G304 -- temp path
	require.NoError(t, err)
	assert.Contains(t, string(data), "now visible")
}

func TestLogger_Writer(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := config.NewLogger(config.LogLevelDebug, path)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	w := logger.Writer(config.LogLevelDebug)
	n, err := w.Write([]byte("from writer\n"))
	require.NoError(t, err)
	assert.Equal(t, len("from writer\n"), n)

	data, err := os.ReadFile(path) // #nosec G304 -- temp path
	require.NoError(t, err)
	assert.Contains(t, string(data), "from writer")
}

func TestNullLogger(t *testing.T) {
	t.Parallel()
	logger := config.NullLogger()
	// Must not panic with no backing file.
	logger.Error("discarded")
	logger.Info("discarded")
	logger.Debug("discarded")
	assert.Equal(t, config.LogLevelOff, logger.Level())
	assert.NoError(t, logger.Close())
}
