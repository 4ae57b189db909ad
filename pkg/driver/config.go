package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"abrvalg/interpreter-go/pkg/interpreter"
)

// Config holds the user-tunable settings shared by the CLI and REPL.
type Config struct {
	Colors       bool   `toml:"colors"`
	HistoryFile  string `toml:"history_file"`
	MaxCallDepth int    `toml:"max_call_depth"`
}

func DefaultConfig() *Config {
	cfg := &Config{Colors: true}
	cfg.applyDefaults()
	return cfg
}

// DefaultConfigPath is where LoadConfig looks when no explicit path is
// given.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "abrvalg", "config.toml")
}

// LoadConfig reads a TOML config file. An explicit path must exist; a
// missing file at the default location just means defaults.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	cfg := &Config{Colors: true}
	if path == "" {
		cfg.applyDefaults()
		return cfg, nil
	}
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		cfg.applyDefaults()
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MaxCallDepth <= 0 {
		c.MaxCallDepth = interpreter.DefaultMaxCallDepth
	}
	if c.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.HistoryFile = filepath.Join(home, ".abrvalg_history")
		}
	}
}
