// Package config provides configuration management for hgrep.
//
// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	hgreperrors "github.com/chazuruo/hgrep/internal/errors"
)

// DefaultConfigPath returns ~/.config/hgrep/config.toml whether or not it exists.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "hgrep", "config.toml")
}

// DetectConfigPath searches for a config file using XDG standard paths.
// Returns the first config file found, or empty string if none exists.
//
// Search order:
// 1. $XDG_CONFIG_HOME/hgrep/config.toml
// 2. ~/.config/hgrep/config.toml
func DetectConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configPath := filepath.Join(xdg, "hgrep", "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	configPath := DefaultConfigPath()
	if configPath == "" {
		return ""
	}
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &hgreperrors.ConfigError{
			Path: path,
			Err:  fmt.Errorf("config file not found: %w", hgreperrors.ErrNotFound),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &hgreperrors.ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &hgreperrors.ConfigError{Path: path, Err: fmt.Errorf("failed to parse config file: %w", err)}
	}

	applyEnvOverrides(cfg)
	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, &hgreperrors.ConfigError{
			Path: path,
			Err:  fmt.Errorf("config validation failed: %w: %w", hgreperrors.ErrInvalid, err),
		}
	}

	return cfg, nil
}

// LoadWithDefaults loads the config at path, or the detected config when
// path is empty. If no config file is found, returns a config with all
// default values plus environment overrides.
func LoadWithDefaults(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		expandPaths(cfg)

		if err := cfg.Validate(); err != nil {
			return nil, &hgreperrors.ConfigError{
				Err: fmt.Errorf("config validation failed: %w: %w", hgreperrors.ErrInvalid, err),
			}
		}
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: HGREP_<SECTION>_<FIELD>
//
// Examples:
// - HGREP_HISTORY_PATH overrides [history].path
// - HGREP_SEARCH_CASE overrides [search].case
// - HGREP_LOG_LEVEL overrides [log].level
//
// Boolean fields: use "true"/"false" strings
func applyEnvOverrides(c *Config) {
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	// History section
	applyString("HGREP_HISTORY_PATH", &c.History.Path)
	applyBool("HGREP_HISTORY_DEDUP", &c.History.Dedup)
	applyString("HGREP_HISTORY_EMPTY_LINES", &c.History.EmptyLines)

	// Search section
	applyString("HGREP_SEARCH_CASE", &c.Search.Case)
	applyString("HGREP_SEARCH_QUERY_ENV", &c.Search.QueryEnv)

	// TUI section
	applyBool("HGREP_TUI_ALT_SCREEN", &c.TUI.AltScreen)
	applyString("HGREP_TUI_TITLE", &c.TUI.Title)
	applyBool("HGREP_TUI_CLIPBOARD", &c.TUI.Clipboard)

	// Log section
	applyString("HGREP_LOG_LEVEL", &c.Log.Level)
	applyString("HGREP_LOG_FILE", &c.Log.File)
}

// expandPaths expands ~ to the home directory in configured file paths.
func expandPaths(c *Config) {
	c.History.Path = ExpandHome(c.History.Path)
	c.Log.File = ExpandHome(c.Log.File)
}

// ExpandHome expands a leading ~ in path to the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") && path != "~" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
