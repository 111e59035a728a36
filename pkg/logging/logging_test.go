package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		enabled slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown falls back to info", "verbose", slog.LevelInfo},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.level)
			if !l.Enabled(ctx, tt.enabled) {
				t.Fatalf("expected level %s enabled", tt.enabled)
			}
		})
	}
}

func TestDefaultIsInfo(t *testing.T) {
	l := Default()
	ctx := context.Background()
	if !l.Enabled(ctx, slog.LevelInfo) {
		t.Error("default logger should enable info")
	}
	if l.Enabled(ctx, slog.LevelDebug) {
		t.Error("default logger should not enable debug")
	}
}

func TestComponent(t *testing.T) {
	l := Default().Component("merger")
	if l.Logger == nil {
		t.Fatal("component logger missing underlying slog.Logger")
	}
	l.Info("component logger works")
}
