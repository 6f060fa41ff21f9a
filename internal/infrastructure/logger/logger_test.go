package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := level(tt.input); got != tt.want {
			t.Fatalf("level(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewAppliesLevel(t *testing.T) {
	log := New(Config{Level: "error", Format: "json"})

	if log.GetLevel() != zerolog.ErrorLevel {
		t.Fatalf("expected error level, got %v", log.GetLevel())
	}
}
