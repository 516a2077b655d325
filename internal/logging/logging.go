// Package logging provides structured logging for citysafe components.
//
// logs go to stderr by default so command output on stdout stays pipeable.
// The logger wraps log/slog; use With to attach per-scope attributes:
//
//	logger := logging.Default()
//	logger.Info("post created", "post_id", id)
package logging

import (
	"log/slog"
	"os"
)

type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

type Config struct {
	// Level is the minimum level emitted. Default: Info.
	Level Level
	// JSON switches from human-readable text to JSON lines.
	JSON bool
	// Service is attached to every entry as the "service" attribute.
	Service string
}

type Logger struct {
	slog *slog.Logger
}

func New(cfg Config) *Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	if cfg.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", cfg.Service)})
	}
	return &Logger{slog: slog.New(handler)}
}

func Default() *Logger {
	return New(Config{Level: LevelInfo, Service: "citysafe"})
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// With returns a logger that adds the given attributes to every entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}
