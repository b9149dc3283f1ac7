// Package config loads and persists the rtcctl YAML configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level rtcctl configuration.
type Config struct {
	// Bus is the host I²C bus name: "1", "/dev/i2c-1", or "" for the first
	// bus available.
	Bus string `yaml:"bus"`

	// Addr is the 7-bit device address. Defaults to 0x68.
	Addr uint16 `yaml:"addr"`

	// Century resolves the chip's two-digit year; 21 means 20xx.
	Century int `yaml:"century"`

	// SyncCron is a cron schedule (e.g. "*/15 * * * *") used by daemon mode
	// to read the RTC and report drift against the system clock.
	SyncCron string `yaml:"sync_cron"`

	// SetSystem makes each daemon tick also set the system clock from the
	// RTC. Requires the privileges to call settimeofday.
	SetSystem bool `yaml:"set_system"`
}

// Default returns an in-memory default configuration.
func Default() *Config {
	return &Config{
		Bus:      "1",
		Addr:     0x68,
		Century:  21,
		SyncCron: "*/15 * * * *",
	}
}

// Normalize fills in missing/zero values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	if c.Addr == 0 {
		c.Addr = 0x68
	}
	if c.Century <= 0 {
		c.Century = 21
	}
	if c.SyncCron == "" {
		c.SyncCron = "*/15 * * * *"
	}
}

// Load reads the YAML config at path. If the file does not exist, a default
// config is written there (0600, parent directory created) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".rtcctl-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
