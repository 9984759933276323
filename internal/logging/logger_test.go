package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"itemgroups/questionnaire/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		verbose   bool
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"console info", config.LoggingConfig{Level: "info", Format: "console"}, false, zapcore.InfoLevel, false},
		{"json warn", config.LoggingConfig{Level: "warn", Format: "json"}, false, zapcore.WarnLevel, false},
		{"verbose forces debug", config.LoggingConfig{Level: "error", Format: "json"}, true, zapcore.DebugLevel, false},
		{"bad level", config.LoggingConfig{Level: "loud", Format: "json"}, false, 0, true},
		{"bad format", config.LoggingConfig{Level: "info", Format: "xml"}, false, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.verbose)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !logger.Core().Enabled(tt.wantLevel) {
				t.Errorf("level %s should be enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("level %s should be disabled", tt.wantLevel-1)
			}
		})
	}
}
