// Package config provides configuration management for hgrep.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"

	"github.com/chazuruo/hgrep/internal/history"
	"github.com/chazuruo/hgrep/internal/logging"
	"github.com/chazuruo/hgrep/internal/pattern"
)

// DefaultQueryEnv is the environment variable that seeds the interactive search.
const DefaultQueryEnv = "HGREP_QUERY"

// Config is the top-level configuration struct for hgrep.
type Config struct {
	History HistoryConfig `toml:"history"`
	Search  SearchConfig  `toml:"search"`
	TUI     TUIConfig     `toml:"tui"`
	Log     LogConfig     `toml:"log"`
}

// HistoryConfig contains history file settings.
type HistoryConfig struct {
	// Path is the history file to read. Empty means auto-detect
	// ($HISTFILE, then the usual bash locations).
	Path string `toml:"path"`

	// Dedup collapses consecutive entries with identical text.
	Dedup bool `toml:"dedup"`

	// EmptyLines controls blank lines in the history file.
	// Valid values: "drop", "keep".
	EmptyLines string `toml:"empty_lines"`
}

// SearchConfig contains pattern matching settings.
type SearchConfig struct {
	// Case selects case handling for all patterns.
	// Valid values: "insensitive", "sensitive".
	Case string `toml:"case"`

	// QueryEnv names an environment variable whose value seeds the
	// interactive search text.
	QueryEnv string `toml:"query_env"`
}

// TUIConfig contains terminal UI settings.
type TUIConfig struct {
	// AltScreen runs the picker in the terminal's alternate screen.
	AltScreen bool `toml:"alt_screen"`

	// Title is shown in the picker's header bar.
	Title string `toml:"title"`

	// Clipboard copies the selected command via OSC 52.
	Clipboard bool `toml:"clipboard"`
}

// LogConfig contains diagnostic logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File receives log output. Empty means stderr in batch mode and
	// nowhere in interactive mode.
	File string `toml:"file"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			Path:       "",
			Dedup:      false,
			EmptyLines: string(history.DropEmptyLines),
		},
		Search: SearchConfig{
			Case:     pattern.Insensitive.String(),
			QueryEnv: DefaultQueryEnv,
		},
		TUI: TUIConfig{
			AltScreen: true,
			Title:     "hgrep",
			Clipboard: true,
		},
		Log: LogConfig{
			Level: "warn",
			File:  "",
		},
	}
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	if _, err := history.ParseEmptyLinePolicy(c.History.EmptyLines); err != nil {
		return fmt.Errorf("history.empty_lines must be one of: drop, keep; got %q", c.History.EmptyLines)
	}

	if _, err := pattern.ParseCaseMode(c.Search.Case); err != nil {
		return fmt.Errorf("search.case must be one of: insensitive, sensitive; got %q", c.Search.Case)
	}

	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level)
	}

	return nil
}

// CaseMode returns the parsed search case mode.
func (c *Config) CaseMode() pattern.CaseMode {
	mode, err := pattern.ParseCaseMode(c.Search.Case)
	if err != nil {
		return pattern.Insensitive
	}
	return mode
}

// EmptyLinePolicy returns the parsed history empty-line policy.
func (c *Config) EmptyLinePolicy() history.EmptyLinePolicy {
	policy, err := history.ParseEmptyLinePolicy(c.History.EmptyLines)
	if err != nil {
		return history.DropEmptyLines
	}
	return policy
}
