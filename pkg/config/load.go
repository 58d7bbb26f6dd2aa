// Package config handles configuration loading and validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cicd-ai-toolkit/contextfit/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Default config file names to search for
var defaultConfigFiles = []string{
	".contextfit.yaml",
	".contextfit.yml",
	"contextfit.yaml",
	"contextfit.yml",
}

// Load loads configuration from a specific file path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// LoadDefault searches for and loads configuration from default locations
// Search order:
// 1. Current directory
// 2. Parent directories (up to root)
// 3. User config directory (.config/contextfit/)
func LoadDefault() (*Config, error) {
	if cfg, err := findInParents("."); err == nil {
		return cfg, nil
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(homeDir, ".config", "contextfit", "config.yaml")
		if cfg, err := Load(userConfigPath); err == nil {
			return cfg, nil
		}
	}

	// No config found - return defaults with env overrides
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("default config validation failed", err)
	}
	return cfg, nil
}

// LoadFromEnv loads config from environment variable path
// CONTEXTFIT_CONFIG can override the config file path
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("CONTEXTFIT_CONFIG"); path != "" {
		return Load(path)
	}
	return LoadDefault()
}

// findInParents searches for config file in current directory and parent directories
func findInParents(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		for _, name := range defaultConfigFiles {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return Load(path)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, errors.ConfigError("no config file found", nil)
}

// applyEnvOverrides applies CONTEXTFIT_* environment variables on top of
// the loaded configuration. Environment always wins over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONTEXTFIT_LOG_LEVEL"); v != "" {
		cfg.Global.LogLevel = v
	}
	if v := os.Getenv("CONTEXTFIT_PRODUCER_COMMAND"); v != "" {
		if v != cfg.Producer.Command {
			// Configured args belong to the command they were set for;
			// a different command starts with none.
			cfg.Producer.Args = nil
		}
		cfg.Producer.Command = v
	}
	if v := os.Getenv("CONTEXTFIT_PRODUCER_TIMEOUT"); v != "" {
		cfg.Producer.Timeout = v
	}
	if v := os.Getenv("CONTEXTFIT_MAX_CONTEXT_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Budget.MaxContextTokens = n
		}
	}
	if v := os.Getenv("CONTEXTFIT_MAX_CONTENT_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Budget.MaxContentChars = n
		}
	}
}
