package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/timbre-tts/timbre/internal/config"
)

const fullConfig = `
server:
  listen_addr: ":9000"
  log_level: debug
voices:
  directory: /var/lib/timbre/voices
  predefined:
    en_us_1: "US English, neutral"
    en_gb_1: "British English, neutral"
  refresh_interval: 30s
`

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(fullConfig))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("ListenAddr: expected :9000, got %q", cfg.Server.ListenAddr)
	}
	if cfg.Server.LogLevel != config.LogDebug {
		t.Errorf("LogLevel: expected debug, got %q", cfg.Server.LogLevel)
	}
	if cfg.Voices.Directory != "/var/lib/timbre/voices" {
		t.Errorf("Directory: expected /var/lib/timbre/voices, got %q", cfg.Voices.Directory)
	}
	if len(cfg.Voices.Predefined) != 2 {
		t.Errorf("Predefined: expected 2 entries, got %d", len(cfg.Voices.Predefined))
	}
	if got := cfg.Voices.RefreshInterval.Std(); got != 30*time.Second {
		t.Errorf("RefreshInterval: expected 30s, got %s", got)
	}
}

func TestLoadFromReaderDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(`
voices:
  directory: ./voices
`))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Server.ListenAddr != ":8321" {
		t.Errorf("expected default listen address :8321, got %q", cfg.Server.ListenAddr)
	}
	if cfg.Voices.RefreshInterval.Std() != 0 {
		t.Errorf("expected zero refresh interval by default, got %s", cfg.Voices.RefreshInterval.Std())
	}
}

func TestLoadFromReaderRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name: "unknown field",
			yaml: `
server:
  listen_addr: ":9000"
  log_levle: info
`,
			wantMsg: "log_levle",
		},
		{
			name: "invalid log level",
			yaml: `
server:
  log_level: verbose
`,
			wantMsg: "log_level",
		},
		{
			name: "negative refresh interval",
			yaml: `
voices:
  refresh_interval: -5s
`,
			wantMsg: "refresh_interval",
		},
		{
			name: "malformed duration",
			yaml: `
voices:
  refresh_interval: soon
`,
			wantMsg: "duration",
		},
		{
			name: "empty predefined voice name",
			yaml: `
voices:
  predefined:
    "": "nameless"
`,
			wantMsg: "empty voice name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.LoadFromReader(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("from file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(fullConfig), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Server.ListenAddr != ":9000" {
			t.Errorf("ListenAddr: expected :9000, got %q", cfg.Server.ListenAddr)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("decode error is not double-prefixed", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("server:\n  log_levle: info\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		_, err := config.Load(path)
		if err == nil {
			t.Fatal("expected an error")
		}
		if got := strings.Count(err.Error(), "config:"); got != 1 {
			t.Errorf("error carries %d \"config:\" prefixes, want 1: %q", got, err)
		}
	})
}

func TestValidateAcceptsEmptyLogLevel(t *testing.T) {
	t.Parallel()

	if err := config.Validate(&config.Config{}); err != nil {
		t.Errorf("Validate of zero config: %v", err)
	}
}
