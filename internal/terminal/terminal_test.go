package terminal

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RussellJ95/opensim-core/internal/commands"
	"github.com/RussellJ95/opensim-core/internal/logger"
)

func TestSubmitRunsCommandsAndLogs(t *testing.T) {
	capture := logger.NewCapture("", slog.LevelInfo)
	logger.SetLogger(slog.New(capture))
	t.Cleanup(func() { logger.SetLogger(nil) })

	reg := commands.NewRegistry()
	ran := false
	reg.Register("grid", flag.NewFlagSet("grid", flag.ContinueOnError), func() error {
		ran = true
		return nil
	})

	term := New(capture, reg)
	term.submit("grid")

	assert.True(t, ran)
	lines := capture.Lines()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "grid")
}

func TestSubmitReportsUnknownCommand(t *testing.T) {
	capture := logger.NewCapture("", slog.LevelInfo)
	logger.SetLogger(slog.New(capture))
	t.Cleanup(func() { logger.SetLogger(nil) })

	term := New(capture, commands.NewRegistry())
	term.submit("bogus")

	lines := capture.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "unknown command")
}
