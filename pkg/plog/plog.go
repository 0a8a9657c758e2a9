// Package plog is the application logger: a thin wrapper around log/slog with
// a settable global level and a dispatch handler that sends routine output to
// stdout and warnings and errors to stderr.
package plog

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Level aliases slog.Level so callers don't need to import log/slog.
type Level = slog.Level

// Log levels, lowest to highest. Notice sits between Debug and Info for
// messages that should survive a quiet-ish configuration without being
// warnings.
const (
	LevelDebug  Level = slog.LevelDebug
	LevelNotice Level = slog.Level(-2)
	LevelInfo   Level = slog.LevelInfo
	LevelWarn   Level = slog.LevelWarn
	LevelError  Level = slog.LevelError
)

// LevelFromString maps a config/flag string to a Level. Unknown strings fall
// back to Info.
func LevelFromString(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "notice":
		return LevelNotice
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// globalLevel gates all handlers; SetLevel adjusts it atomically.
var globalLevel slog.LevelVar

// renameNotice gives the custom notice level a proper name in the output.
func renameNotice(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelNotice {
			a.Value = slog.StringValue("NOTICE")
		}
	}
	return a
}

// LevelDispatchHandler is a slog.Handler that routes records by level:
// warnings and above go to the stderr handler, everything else to the stdout
// handler.
type LevelDispatchHandler struct {
	stdoutHandler slog.Handler
	stderrHandler slog.Handler
}

// Enabled consults the global level.
func (h *LevelDispatchHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= globalLevel.Level()
}

// Handle dispatches the record to the appropriate handler.
func (h *LevelDispatchHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		return h.stderrHandler.Handle(ctx, r)
	}
	return h.stdoutHandler.Handle(ctx, r)
}

// WithAttrs returns a new LevelDispatchHandler with the given attributes added.
func (h *LevelDispatchHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LevelDispatchHandler{
		stdoutHandler: h.stdoutHandler.WithAttrs(attrs),
		stderrHandler: h.stderrHandler.WithAttrs(attrs),
	}
}

// WithGroup returns a new LevelDispatchHandler with the given group.
func (h *LevelDispatchHandler) WithGroup(name string) slog.Handler {
	return &LevelDispatchHandler{
		stdoutHandler: h.stdoutHandler.WithGroup(name),
		stderrHandler: h.stderrHandler.WithGroup(name),
	}
}

var defaultLogger *slog.Logger

func init() {
	globalLevel.Set(LevelInfo)

	stdoutHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       &globalLevel,
		ReplaceAttr: renameNotice,
	})
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       &globalLevel,
		ReplaceAttr: renameNotice,
	})

	defaultLogger = slog.New(&LevelDispatchHandler{
		stdoutHandler: stdoutHandler,
		stderrHandler: stderrHandler,
	})
}

// Default returns the global logger for callers that need the slog API
// directly (e.g. Enabled checks).
func Default() *slog.Logger {
	return defaultLogger
}

// SetLevel sets the global minimum log level.
func SetLevel(l Level) {
	globalLevel.Set(l)
}

// SetOutput redirects all output to a single writer, primarily for testing.
// The level filter stays in effect.
func SetOutput(w io.Writer) {
	defaultLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       &globalLevel,
		ReplaceAttr: renameNotice,
	}))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Notice logs a message at the notice level.
func Notice(msg string, args ...any) {
	defaultLogger.Log(context.Background(), LevelNotice, msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}
