package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Format represents the available log output formats
type Format string

const (
	FormatPretty Format = "pretty" // Colorized, human-readable (tint)
	FormatJSON   Format = "json"   // JSON lines
	FormatText   Format = "text"   // key=value pairs
)

// Init initializes the global slog logger with the specified format and level.
// Output goes to stderr so stdout stays clean for command results and the
// MCP stdio transport.
func Init(format Format, level slog.Level) {
	var handler slog.Handler

	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	case FormatText:
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	case FormatPretty:
		fallthrough
	default:
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		})
	}

	slog.SetDefault(slog.New(handler))
}

// ParseFormat converts a string to Format, defaulting to pretty
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatPretty
	}
}

// ParseLevel converts a string to slog.Level, defaulting to Info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
