package config_test

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/timbre-tts/timbre/internal/config"
)

func TestLogLevelIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level config.LogLevel
		want  bool
	}{
		{config.LogDebug, true},
		{config.LogInfo, true},
		{config.LogWarn, true},
		{config.LogError, true},
		{config.LogLevel("trace"), false},
		{config.LogLevel("INFO"), false},
		{config.LogLevel(""), false},
	}

	for _, tt := range tests {
		if got := tt.level.IsValid(); got != tt.want {
			t.Errorf("LogLevel(%q).IsValid() = %v, expected %v", tt.level, got, tt.want)
		}
	}
}

func TestDurationUnmarshalYAML(t *testing.T) {
	t.Parallel()

	t.Run("valid notation", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			in   string
			want time.Duration
		}{
			{"30s", 30 * time.Second},
			{"5m", 5 * time.Minute},
			{"1h30m", 90 * time.Minute},
			{"0s", 0},
		}
		for _, tt := range tests {
			var d config.Duration
			if err := yaml.Unmarshal([]byte(tt.in), &d); err != nil {
				t.Errorf("unmarshal %q: %v", tt.in, err)
				continue
			}
			if d.Std() != tt.want {
				t.Errorf("unmarshal %q: expected %s, got %s", tt.in, tt.want, d.Std())
			}
		}
	})

	t.Run("invalid notation", func(t *testing.T) {
		t.Parallel()
		for _, in := range []string{"thirty seconds", "30", "[]"} {
			var d config.Duration
			if err := yaml.Unmarshal([]byte(in), &d); err == nil {
				t.Errorf("unmarshal %q: expected an error", in)
			}
		}
	})
}
