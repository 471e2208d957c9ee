// Package log provides structured logging (slog) for plugin modules. A
// SAORI module has no console: the host swallows stdio, so the handler
// writes plain text lines to a writer of the caller's choice, typically a
// debug file opened next to the module itself.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	saori "github.com/ukagaka-dev/saori-sdk"
)

// Handler implements slog.Handler with a flat text line per record.
type Handler struct {
	opts   handlerConfig
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

type handlerConfig struct {
	level     slog.Level
	addSource bool
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{level: slog.LevelInfo}
}

// HandlerOption configures a Handler.
type HandlerOption func(*handlerConfig)

// WithLevel sets the minimum level to write. Records below it are dropped.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of the record's source file and line.
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewHandler creates a Handler writing to w.
func NewHandler(w io.Writer, opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{opts: cfg, mu: &sync.Mutex{}, w: w}
}

// Enabled reports whether records at the given level are written.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle writes one record as a single text line.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	if !record.Time.IsZero() {
		b.WriteString(record.Time.Format("2006-01-02 15:04:05.000"))
		b.WriteByte(' ')
	}
	b.WriteString(record.Level.String())
	b.WriteByte(' ')
	b.WriteString(record.Message)

	for _, attr := range h.attrs {
		appendAttr(&b, "", attr)
	}
	prefix := strings.Join(h.groups, ".")
	record.Attrs(func(attr slog.Attr) bool {
		appendAttr(&b, prefix, attr)
		return true
	})
	if h.opts.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		if frame.File != "" {
			fmt.Fprintf(&b, " source=%s:%d", frame.File, frame.Line)
		}
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func appendAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	key := attr.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(strconv.Quote(attr.Value.Resolve().String()))
}

// WithAttrs returns a Handler that includes attrs on every record. The keys
// are qualified with the groups open at the time of the call.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	prefix := strings.Join(h.groups, ".")
	qualified := append([]slog.Attr{}, h.attrs...)
	for _, attr := range attrs {
		if prefix != "" {
			attr.Key = prefix + "." + attr.Key
		}
		qualified = append(qualified, attr)
	}
	h2.attrs = qualified
	return &h2
}

// WithGroup returns a Handler qualifying subsequent attribute keys.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}

// OpenBeside opens (appending, creating if needed) a log file next to the
// loaded module, using the path the load entry point registered. Before a
// load event, or when the path is unusable, the file lands in the
// OS temp directory instead.
func OpenBeside(name string) (*os.File, error) {
	dir := os.TempDir()
	if p, ok := saori.Path(); ok && p != "" {
		dir = filepath.Dir(p)
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log: open %s: %w", name, err)
	}
	return f, nil
}
