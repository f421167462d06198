package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultListenAddr is used when server.listen_addr is left empty.
const defaultListenAddr = ":8321"

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader] and
// [Validate]. Decode and validation errors come back as [LoadFromReader]
// produced them; only the open error gains the path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = defaultListenAddr
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Voices.RefreshInterval < 0 {
		errs = append(errs, fmt.Errorf("voices.refresh_interval must not be negative, got %s", cfg.Voices.RefreshInterval.Std()))
	}

	for name := range cfg.Voices.Predefined {
		if name == "" {
			errs = append(errs, errors.New("voices.predefined contains an empty voice name"))
		}
	}

	// A missing directory is an expected state, not a configuration error:
	// the registry treats it as "zero file voices". Still worth a heads-up.
	if cfg.Voices.Directory != "" {
		if info, err := os.Stat(cfg.Voices.Directory); errors.Is(err, fs.ErrNotExist) {
			slog.Warn("voices directory does not exist yet; no file voices will be discovered until it appears",
				"dir", cfg.Voices.Directory,
			)
		} else if err == nil && !info.IsDir() {
			slog.Warn("voices directory path is not a directory",
				"dir", cfg.Voices.Directory,
			)
		}
	}

	if cfg.Voices.Directory == "" && len(cfg.Voices.Predefined) == 0 {
		slog.Warn("no voices directory and no predefined voices configured; the registry will be empty")
	}

	return errors.Join(errs...)
}
