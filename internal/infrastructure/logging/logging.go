package logging

import (
	"log/slog"
	"os"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/config"
)

// New creates a slog.Logger according to the log configuration.
// Unknown levels fall back to info, unknown formats to JSON.
func New(cfg *config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
