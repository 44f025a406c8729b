package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(nil, slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	c := NewCapture("", slog.LevelInfo)
	SetLogger(slog.New(c))
	defer SetLogger(nil)

	Logger().Info("hello", "n", 3)
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "INFO hello")
	assert.Contains(t, lines[0], "n=3")
}

func TestCaptureLevel(t *testing.T) {
	c := NewCapture("", slog.LevelWarn)
	l := slog.New(c)

	l.Info("dropped")
	l.Warn("kept")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "WARN kept")
}

func TestCaptureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "out.txt")
	c := NewCapture(path, slog.LevelInfo)
	l := slog.New(c)

	l.Info("first")
	l.Info("second")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := strings.TrimSpace(string(data))
	parts := strings.Split(got, "\n")
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0], "first")
	assert.Contains(t, parts[1], "second")
}

func TestCaptureWithAttrs(t *testing.T) {
	c := NewCapture("", slog.LevelInfo)
	l := slog.New(c).With("mesh", "arm.obj")

	l.Warn("load failed")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "mesh=arm.obj")
}

func TestCaptureTail(t *testing.T) {
	c := NewCapture("", slog.LevelInfo)
	l := slog.New(c)
	for i := 0; i < 5; i++ {
		l.Info("line", "i", i)
	}

	tail := c.Tail(2)
	require.Len(t, tail, 2)
	assert.Contains(t, tail[0], "i=3")
	assert.Contains(t, tail[1], "i=4")
	assert.Len(t, c.Tail(100), 5)
}
