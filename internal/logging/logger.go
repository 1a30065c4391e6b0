// Package logging builds the structured debug logger shared by the tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel overrides the configured log level.
const EnvLevel = "HUMAN_UTILS_LOG"

// Options configures the logger
type Options struct {
	// Level is one of off, error, warn, info, debug
	Level string
	// Output sets the output destination (defaults to os.Stderr)
	Output io.Writer
	// JSON enables JSON output format
	JSON bool
}

// ParseLevel converts a level name to a slog.Level. The second result is
// false for "off".
func ParseLevel(name string) (slog.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "off":
		return 0, false, nil
	case "error":
		return slog.LevelError, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "debug":
		return slog.LevelDebug, true, nil
	default:
		return 0, false, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger creates a new logger with the given options. HUMAN_UTILS_LOG,
// when set, replaces opts.Level. A logger at level off discards everything.
func NewLogger(opts *Options) (*slog.Logger, error) {
	if opts == nil {
		opts = &Options{}
	}

	name := opts.Level
	if env := os.Getenv(EnvLevel); env != "" {
		name = env
	}
	level, enabled, err := ParseLevel(name)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return Discard(), nil
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(output, handlerOpts)
	}

	return slog.New(handler), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithTool tags a logger with the name of the running tool
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With("tool", tool)
}
