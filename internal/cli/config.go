package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/chazuruo/hgrep/internal/config"
	"github.com/chazuruo/hgrep/internal/history"
	"github.com/chazuruo/hgrep/internal/pattern"
)

// ConfigInitOptions contains the options for the config init command.
type ConfigInitOptions struct {
	Force bool

	// Scriptable/flag options for --no-tui mode
	History    string
	Dedup      bool
	Case       string
	EmptyLines string
	Clipboard  bool
}

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage hgrep configuration",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	opts := &ConfigInitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file",
		Long: `Write an hgrep config file.

On a terminal, init asks for each setting. With --no-tui, or when stdin
is not a terminal, the values come from flags and defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, opts)
		},
	}

	defaults := config.DefaultConfig()
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing config file")
	cmd.Flags().StringVar(&opts.History, "history", defaults.History.Path, "history file (empty means auto-detect)")
	cmd.Flags().BoolVar(&opts.Dedup, "dedup", defaults.History.Dedup, "collapse consecutive duplicate entries")
	cmd.Flags().StringVar(&opts.Case, "case", defaults.Search.Case, "pattern case handling: insensitive or sensitive")
	cmd.Flags().StringVar(&opts.EmptyLines, "empty-lines", defaults.History.EmptyLines, "blank lines: drop or keep")
	cmd.Flags().BoolVar(&opts.Clipboard, "clipboard", defaults.TUI.Clipboard, "copy picked commands to the clipboard")

	return cmd
}

func runConfigInit(cmd *cobra.Command, opts *ConfigInitOptions) error {
	path := getConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path; use --config")
	}
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	if !IsNoTUI() && isatty.IsTerminal(os.Stdin.Fd()) {
		if err := askConfigInit(opts); err != nil {
			return err
		}
	}

	cfg := buildConfig(opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := config.Write(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration written to %s\n", path)
	return nil
}

// askConfigInit fills opts from an interactive form, using the current
// values as defaults.
func askConfigInit(opts *ConfigInitOptions) error {
	detected, _ := history.DetectPath()

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("History file").
				Description("Leave empty to use $HISTFILE or the bash default").
				Value(&opts.History).Placeholder(detected),
			huh.NewConfirm().
				Title("Collapse consecutive duplicates?").
				Value(&opts.Dedup),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pattern case").
				Options(
					huh.NewOption("Case-insensitive", pattern.Insensitive.String()),
					huh.NewOption("Case-sensitive", pattern.Sensitive.String()),
				).
				Value(&opts.Case),
			huh.NewSelect[string]().
				Title("Blank lines in the history file").
				Options(
					huh.NewOption("Drop them", string(history.DropEmptyLines)),
					huh.NewOption("Keep them inside multi-line commands", string(history.KeepEmptyLines)),
				).
				Value(&opts.EmptyLines),
			huh.NewConfirm().
				Title("Copy picked commands to the clipboard?").
				Value(&opts.Clipboard),
		),
	).Run(); err != nil {
		return fmt.Errorf("form error: %w", err)
	}
	return nil
}

func buildConfig(opts *ConfigInitOptions) *config.Config {
	cfg := config.DefaultConfig()
	cfg.History.Path = opts.History
	cfg.History.Dedup = opts.Dedup
	cfg.History.EmptyLines = opts.EmptyLines
	cfg.Search.Case = opts.Case
	cfg.TUI.Clipboard = opts.Clipboard
	return cfg
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration hgrep would use: the config file merged over
the defaults, with HGREP_<SECTION>_<FIELD> environment overrides applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}
}

func runConfigShow(w io.Writer) error {
	cfg, err := config.LoadWithDefaults(globalConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return config.Encode(w, cfg)
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), getConfigPath())
			return nil
		},
	}
}

// getConfigPath returns --config, the detected config file, or the default
// location for a new one.
func getConfigPath() string {
	if path := globalConfigPath(); path != "" {
		return path
	}
	if path := config.DetectConfigPath(); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}
