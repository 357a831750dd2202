package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		debugShown bool
		warnShown  bool
	}{
		{"debug level", "debug", true, true},
		{"info level", "info", false, true},
		{"warn level", "warn", false, true},
		{"error level", "error", false, false},
		{"unknown level falls back to info", "loud", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(&config.LogConfig{Level: tt.level, Format: "json"})

			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.debugShown {
				t.Errorf("Enabled(debug) = %v, want %v", got, tt.debugShown)
			}
			if got := logger.Enabled(ctx, slog.LevelWarn); got != tt.warnShown {
				t.Errorf("Enabled(warn) = %v, want %v", got, tt.warnShown)
			}
		})
	}
}

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{"json", "text", ""} {
		logger := New(&config.LogConfig{Level: "info", Format: format})
		if logger == nil {
			t.Errorf("New() returned nil for format %q", format)
		}
	}
}
