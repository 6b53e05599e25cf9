package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("WARN"))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
	assert.Equal(t, logrus.InfoLevel, GetLevel("chatty"))
}

func TestNew_WritesToRotatingFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "logs", "mapty")

	logger, closer := New(SetupParams{LogFileName: base, LogLevel: "debug", LogFormatJSON: true})
	logger.WithField("outcome", "restored").Debug("snapshot loaded")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(base + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"outcome":"restored"`)
	assert.Contains(t, string(data), `"msg":"snapshot loaded"`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapty.log")

	logger, closer := New(SetupParams{LogFileName: path, LogLevel: "warn"})
	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_CopyGoesToStderrNotStdout(t *testing.T) {
	assert.Equal(t, os.Stderr, console)

	var buf bytes.Buffer
	prev := console
	console = &buf
	t.Cleanup(func() { console = prev })

	path := filepath.Join(t.TempDir(), "mapty.log")
	logger, closer := New(SetupParams{LogFileName: path, LogToStderr: true, LogLevel: "info"})
	logger.Info("workout recorded")
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "workout recorded")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workout recorded")
}

func TestNew_NoFileUsesStderr(t *testing.T) {
	logger, closer := New(SetupParams{LogLevel: "info"})
	assert.Equal(t, os.Stderr, logger.Out)
	assert.NoError(t, closer.Close())
}
