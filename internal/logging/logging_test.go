package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("", false))
	require.Equal(t, slog.LevelInfo, parseLevel("", true))
	require.Equal(t, slog.LevelWarn, parseLevel("warn", false))
	require.Equal(t, slog.LevelError, parseLevel("error", true))
	require.Equal(t, slog.LevelInfo, parseLevel("bogus", true))
}

func TestNew_ProductionWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")

	logger, closer := New(Options{Production: true, File: file})
	logger.Info("hello", Operation("test"))
	require.NoError(t, closer.Close())

	require.FileExists(t, file)
}

func TestErrAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("ok", Err(nil))
	require.NotContains(t, buf.String(), "error=")

	logger.Info("failed", Err(errors.New("boom")))
	require.Contains(t, buf.String(), "error=boom")
}
