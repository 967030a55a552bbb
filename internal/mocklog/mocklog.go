// Package mocklog provides the *slog.Logger construction used by
// pkg/mockserver. A Pool defaults to Nop() so tests stay silent; a caller
// who wants visibility into match misses and misconfigured mocks builds one
// with New and passes it to mockserver.WithLogger.
package mocklog

import (
	"io"
	"log/slog"
	"os"
)

// Level is a log level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Config holds logging configuration. There is no JSON output mode: worker
// and pool log lines are short key/value pairs meant for a terminal, not a
// log-shipping pipeline, so the handler is always text.
type Config struct {
	// Level is the minimum log level to output.
	Level Level

	// Output is the writer to send logs to. Defaults to os.Stderr.
	Output io.Writer

	// AddSource adds source file and line to log entries.
	AddSource bool
}

// DefaultConfig returns Warn-level text logging to stderr. Warn, not Info,
// because the pool's own default is Nop(); a caller reaching for New wants
// to see mismatches and misconfigurations, not a line per request.
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Output: os.Stderr,
	}
}

// New creates a text-handler slog.Logger with the given configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	handler := slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	})
	return slog.New(handler)
}

// Nop returns a logger that discards all output. Pool and Server use this
// when constructed without an explicit logger via WithLogger.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel parses a log level string: "debug", "info", "warn"/"warning",
// "error". Unrecognized values, including "", fall back to Warn to match
// DefaultConfig.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING", "":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelWarn
	}
}
