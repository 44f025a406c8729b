package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogFilePath is the path of the log file, relative to the working directory
// (project root when run via go run ./cmd/simview).
const LogFilePath = "logs/simview.txt"

// Capture is a slog.Handler that stores formatted lines in memory and
// appends them to a file on disk. The viewer terminal reads Lines to show
// recent log output on screen.
type Capture struct {
	level slog.Level
	path  string
	attrs []slog.Attr
	group string

	mu    *sync.Mutex
	lines *[]string
}

// NewCapture returns a Capture writing to path and ensures its directory
// exists. Records below level are dropped. An empty path disables the file
// and keeps lines in memory only.
func NewCapture(path string, level slog.Level) *Capture {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	lines := make([]string, 0)
	return &Capture{
		level: level,
		path:  path,
		mu:    &sync.Mutex{},
		lines: &lines,
	}
}

// Enabled reports whether records at the given level are kept.
func (c *Capture) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level
}

// Handle formats the record as a single line, stores it, and appends it to
// the log file. Each line is prefixed with [timestamp] using computer time.
func (c *Capture) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString("[" + r.Time.Format("2006-01-02 15:04:05") + "] ")
	b.WriteString(r.Level.String() + " " + r.Message)
	for _, a := range c.attrs {
		b.WriteString(" " + c.formatAttr(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(" " + c.formatAttr(a))
		return true
	})
	line := b.String()

	c.mu.Lock()
	*c.lines = append(*c.lines, line)
	c.mu.Unlock()

	if c.path == "" {
		return nil
	}
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, _ = f.WriteString(line + "\n")
	return f.Close()
}

func (c *Capture) formatAttr(a slog.Attr) string {
	key := a.Key
	if c.group != "" {
		key = c.group + "." + key
	}
	return fmt.Sprintf("%s=%s", key, a.Value.String())
}

// WithAttrs returns a handler that prepends attrs to every record.
func (c *Capture) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *c
	out.attrs = append(append([]slog.Attr{}, c.attrs...), attrs...)
	return &out
}

// WithGroup returns a handler that qualifies attribute keys with name.
func (c *Capture) WithGroup(name string) slog.Handler {
	out := *c
	if out.group == "" {
		out.group = name
	} else {
		out.group = out.group + "." + name
	}
	return &out
}

// Lines returns a copy of all stored lines.
func (c *Capture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(*c.lines))
	copy(out, *c.lines)
	return out
}

// Tail returns up to n of the most recent lines.
func (c *Capture) Tail(n int) []string {
	all := c.Lines()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

var _ slog.Handler = (*Capture)(nil)
