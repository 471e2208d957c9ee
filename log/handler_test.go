package log

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_LevelFiltering(t *testing.T) {
	h := NewHandler(&strings.Builder{}, WithLevel(slog.LevelWarn))

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestHandler_WritesLine(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(NewHandler(&buf, WithLevel(slog.LevelDebug)))

	logger.Info("load hook finished", "entry", "loadu", "ok", true)

	line := buf.String()
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "load hook finished")
	assert.Contains(t, line, `entry="loadu"`)
	assert.Contains(t, line, `ok="true"`)
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(NewHandler(&buf, WithLevel(slog.LevelDebug))).
		With("module", "echo").WithGroup("request")

	logger.Debug("dispatch", "len", 4)

	line := buf.String()
	assert.Contains(t, line, `module="echo"`)
	assert.Contains(t, line, `request.len="4"`)
}

func TestOpenBeside_FallsBackToTempDir(t *testing.T) {
	// No load event has run in this test binary, so the path registry is
	// empty and the file must land in the temp dir.
	f, err := OpenBeside("saori-sdk-test.log")
	require.NoError(t, err)
	t.Cleanup(func() {
		name := f.Name()
		f.Close()
		_ = os.Remove(name)
	})
	assert.NotEmpty(t, f.Name())
}
