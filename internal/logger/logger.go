// Package logger builds the process logger and carries it through contexts.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys used by the logger
type ContextKey string

const (
	// LoggerKey is the context key for the logger instance
	LoggerKey ContextKey = "logger"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options controls how the logger is built.
type Options struct {
	Level  string
	Format string
	// Out defaults to stderr. Stdio mode must never log to stdout.
	Out io.Writer
}

// New creates a structured logger from opts.
func New(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	switch opts.Format {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (expected %s or %s)", opts.Format, FormatConsole, FormatJSON)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// NewWithWriter creates a JSON logger writing to w at debug level.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context, or a disabled logger
// when there is none.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}
