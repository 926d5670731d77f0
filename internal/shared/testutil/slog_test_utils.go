package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// LogRecord is a captured log event with its attributes flattened to values.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type logStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// LogCapture is a slog.Handler that keeps every record for later assertions.
// Loggers derived with With share the same store.
type LogCapture struct {
	store *logStore
	attrs []slog.Attr
	t     *testing.T
}

// NewTestLogger returns a logger whose output is captured by the returned handler.
func NewTestLogger(t *testing.T) (*slog.Logger, *LogCapture) {
	c := &LogCapture{store: &logStore{}, t: t}
	return slog.New(c), c
}

// Enabled implements slog.Handler. Every level is captured.
func (c *LogCapture) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (c *LogCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(c.attrs)+r.NumAttrs())
	for _, a := range c.attrs {
		attrs[a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})

	c.store.mu.Lock()
	c.store.records = append(c.store.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	c.store.mu.Unlock()

	if c.t != nil {
		c.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler
func (c *LogCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(c.attrs)+len(attrs))
	merged = append(merged, c.attrs...)
	merged = append(merged, attrs...)
	return &LogCapture{store: c.store, attrs: merged, t: c.t}
}

// WithGroup implements slog.Handler. Groups are not tracked.
func (c *LogCapture) WithGroup(string) slog.Handler {
	return c
}

// Events returns the captured records whose message is event, in order.
func (c *LogCapture) Events(event string) []LogRecord {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	var out []LogRecord
	for _, r := range c.store.records {
		if r.Message == event {
			out = append(out, r)
		}
	}
	return out
}

// AssertFileEvent checks that event was logged at level for the archive
// named file and returns that record.
func AssertFileEvent(t *testing.T, c *LogCapture, level slog.Level, event, file string) LogRecord {
	t.Helper()

	events := c.Events(event)
	for _, r := range events {
		if r.Level == level && r.Attrs["file"] == file {
			return r
		}
	}

	t.Errorf("no %s event at level %s for file %q", event, level, file)
	for _, r := range events {
		t.Logf("  - [%s] %v", r.Level, r.Attrs)
	}
	return LogRecord{}
}
