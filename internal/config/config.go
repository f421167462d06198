// Package config provides the configuration schema and loader for the Timbre
// voice registry server.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// LogLevel controls log verbosity for the Timbre server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Duration wraps [time.Duration] so YAML values can be written in the usual
// "30s" / "5m" notation.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler using [time.ParseDuration].
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns d as a standard [time.Duration].
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the root configuration structure for Timbre.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server ServerConfig `yaml:"server"`
	Voices VoicesConfig `yaml:"voices"`
}

// ServerConfig holds network and logging settings for the Timbre server.
type ServerConfig struct {
	// ListenAddr is the TCP address the HTTP API listens on (e.g., ":8321").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// VoicesConfig describes the two voice catalogues the registry serves.
type VoicesConfig struct {
	// Directory is the flat directory scanned for .wav voice files.
	// It is not required to exist; a missing directory yields zero file voices.
	Directory string `yaml:"directory"`

	// Predefined maps voice names to opaque descriptor strings. Only the
	// names matter to the registry.
	Predefined map[string]string `yaml:"predefined"`

	// RefreshInterval makes the server rescan the directory periodically.
	// Zero disables periodic refreshes; the registry itself never watches the
	// filesystem, so without the interval only POST /v1/voices/refresh
	// picks up new files.
	RefreshInterval Duration `yaml:"refresh_interval"`
}
