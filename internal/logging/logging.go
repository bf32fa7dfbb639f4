// Package logging builds the service's slog logger and shared attribute helpers.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Common log attribute keys.
const (
	KeyOperation = "operation"
	KeyUpstream  = "upstream"
	KeyProperty  = "property_id"
	KeyRequestID = "request_id"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
)

// Options selects the handler and destination of the logger.
type Options struct {
	// Production switches to JSON output teed into a rotating file.
	Production bool
	// Level is one of debug, info, warn, error; empty picks info in
	// production and debug otherwise.
	Level string
	// File is the rotating log file used in production; empty disables it.
	File string
}

// New returns a logger and a closer for any file it opened.
func New(opts Options) (*slog.Logger, io.Closer) {
	level := parseLevel(opts.Level, opts.Production)
	handlerOpts := &slog.HandlerOptions{Level: level}

	if !opts.Production {
		return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts)), nopCloser{}
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, file)
		closer = file
	}
	return slog.New(slog.NewJSONHandler(out, handlerOpts)), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func parseLevel(level string, production bool) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if production {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Upstream returns a slog attribute for the third-party API name.
func Upstream(name string) slog.Attr {
	return slog.String(KeyUpstream, name)
}

// Property returns a slog attribute for a GA4 property id.
func Property(id string) slog.Attr {
	return slog.String(KeyProperty, id)
}

// RequestID returns a slog attribute for the inbound request id.
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Err returns a slog attribute for an error. A nil error yields an empty
// group, which handlers omit.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group(KeyError)
	}
	return slog.String(KeyError, err.Error())
}
