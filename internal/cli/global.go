// Package cli provides global state and utilities for CLI commands.
package cli

import (
	"sync"

	"github.com/spf13/cobra"
)

var (
	// NoTUI indicates that TUI/interactive mode should be disabled.
	// This is set by the global --no-tui flag.
	NoTUI bool

	// ConfigPath is the config file given with --config.
	ConfigPath string

	// LogLevel and LogFile override the [log] config section.
	LogLevel string
	LogFile  string

	// globalMutex protects the globals above for concurrent access.
	globalMutex sync.RWMutex
)

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&NoTUI, "no-tui", false,
		"disable TUI/interactive mode; forms and the picker are refused")
	cmd.PersistentFlags().StringVar(&ConfigPath, "config", "",
		"config file path (default ~/.config/hgrep/config.toml)")
	cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "",
		"log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&LogFile, "log-file", "",
		"append logs to this file instead of stderr")
}

// IsNoTUI returns true if TUI mode is disabled.
func IsNoTUI() bool {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return NoTUI
}

// globalConfigPath returns the --config value.
func globalConfigPath() string {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return ConfigPath
}

// globalLogSettings returns the --log-level and --log-file values.
func globalLogSettings() (level, file string) {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return LogLevel, LogFile
}
