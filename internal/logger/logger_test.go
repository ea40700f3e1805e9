package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level       string
		development bool
		enabled     zapcore.Level
		disabled    zapcore.Level
	}{
		{"info", false, zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", false, zapcore.WarnLevel, zapcore.InfoLevel},
		{"debug", true, zapcore.DebugLevel, zapcore.DebugLevel - 1},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			l, err := New(tc.level, tc.development)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !l.Core().Enabled(tc.enabled) {
				t.Errorf("level %v should be enabled", tc.enabled)
			}
			if l.Core().Enabled(tc.disabled) {
				t.Errorf("level %v should be disabled", tc.disabled)
			}
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
