package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/samirrijal/schoolnav/internal/pkg/config"
)

// Setup installs the default slog logger for a service and returns it.
// Every record carries a "service" attribute.
func Setup(cfg config.LogConfig, service string) *slog.Logger {
	logger := New(os.Stdout, cfg).With("service", service)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w.
// Level may be "debug", "info", "warn", or "error" (default "info").
// Format may be "json" or "text" (default "json").
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
