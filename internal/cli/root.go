// Package cli provides Cobra command definitions for hgrep.
package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/chazuruo/hgrep/internal/app"
	"github.com/chazuruo/hgrep/internal/clipboard"
	"github.com/chazuruo/hgrep/internal/config"
	"github.com/chazuruo/hgrep/internal/export"
	"github.com/chazuruo/hgrep/internal/history"
	"github.com/chazuruo/hgrep/internal/logging"
	"github.com/chazuruo/hgrep/internal/pattern"
	"github.com/chazuruo/hgrep/internal/tui"
)

// BuildInfo is set at build time using ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

// RootOptions contains the options for the root search command.
type RootOptions struct {
	File          string
	Excludes      []string
	CaseSensitive bool
	Interactive   bool
	Dedup         bool
	EmptyLines    string
	Entry         string
	Format        string
	Template      string
	Limit         int
	Query         string
	OutputPath    string
	NoClipboard   bool

	// pick replaces the terminal picker in tests.
	pick app.PickFunc
}

// NewRootCommand creates the hgrep command with all subcommands attached.
func NewRootCommand(info BuildInfo) *cobra.Command {
	return newRootCommand(info, nil)
}

func newRootCommand(info BuildInfo, pick app.PickFunc) *cobra.Command {
	opts := &RootOptions{pick: pick}

	cmd := &cobra.Command{
		Use:   "hgrep [flags] [pattern...]",
		Short: "Search shell history, including multi-line commands",
		Long: `hgrep reads a bash history file, rebuilds multi-line commands from their
timestamp markers, and prints the entries matching every pattern.

Patterns are literal substrings unless wrapped in slashes, in which case
they are regular expressions: "asd[12]" matches only that text while
"/asd[12]/" matches "asd1" and "asd2". Matching is case-insensitive
unless -s is given. An entry is printed if it matches every pattern and
none of the --exclude patterns.

Batch output is one line per entry: "<hex-index> <local-time> <command>".
Use --entry with a hex index to print a single entry again.

With -i the entries are shown in an interactive list that re-filters on
every keystroke. Enter prints the highlighted command and copies it to
the clipboard; Esc quits without a selection. With --output-path the
command is written to that file instead, for shell key bindings.

Examples:
  hgrep docker compose             # entries containing both words
  hgrep '/^git (push|pull)/'       # regular expression
  hgrep -e kubectl ssh             # ssh but not kubectl
  hgrep --entry 1a                 # print entry 0x1a
  hgrep -i                         # interactive search
  hgrep -i -o /tmp/cmd             # interactive, result written to a file`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		Version:       info.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.File, "file", "f", "", "history file (default $HISTFILE or ~/.bash_history)")
	flags.StringArrayVarP(&opts.Excludes, "exclude", "e", nil, "exclude entries matching this pattern (repeatable)")
	flags.BoolVarP(&opts.CaseSensitive, "case-sensitive", "s", false, "match case-sensitively (-s=false overrides a sensitive config)")
	flags.BoolVarP(&opts.Interactive, "interactive", "i", false, "pick an entry interactively")
	flags.BoolVar(&opts.Dedup, "dedup", false, "collapse consecutive duplicate entries")
	flags.StringVar(&opts.EmptyLines, "empty-lines", "", "blank lines in the history file: drop or keep")
	flags.StringVar(&opts.Entry, "entry", "", "print the entry with this hex index and exit")
	flags.StringVar(&opts.Format, "format", string(export.FormatPlain), "batch output format (plain, json, yaml, table)")
	flags.StringVar(&opts.Template, "template", "", "text/template file executed for each batch entry")
	flags.IntVar(&opts.Limit, "limit", 0, "print only the last N matching entries")
	flags.StringVarP(&opts.Query, "query", "q", "", "initial interactive search text")
	flags.StringVarP(&opts.OutputPath, "output-path", "o", "", "write the picked command to this file (implies -i)")
	flags.BoolVar(&opts.NoClipboard, "no-clipboard", false, "do not copy the picked command to the clipboard")

	AddGlobalFlags(cmd)
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewVersionCommand(info.Version, info.Commit, info.Date, info.BuiltBy))

	return cmd
}

func runRoot(cmd *cobra.Command, opts *RootOptions, args []string) error {
	cfg, err := config.LoadWithDefaults(globalConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, opts, cfg); err != nil {
		return err
	}

	interactive := opts.Interactive || opts.OutputPath != ""
	if interactive && IsNoTUI() {
		return fmt.Errorf("interactive mode cannot be used with --no-tui")
	}

	log, err := openLogger(cfg, interactive)
	if err != nil {
		return err
	}
	defer log.Close()
	log = log.With("run", uuid.NewString())

	caseMode := cfg.CaseMode()

	entries, err := app.LoadEntries(app.LoadOptions{
		Path:       cfg.History.Path,
		Dedup:      cfg.History.Dedup,
		EmptyLines: cfg.EmptyLinePolicy(),
		Logger:     log,
	})
	if err != nil {
		return err
	}

	if opts.Entry != "" {
		index, err := app.ParseIndex(opts.Entry)
		if err != nil {
			return err
		}
		exp, err := newExporter(opts)
		if err != nil {
			return err
		}
		return app.PrintEntry(cmd.OutOrStdout(), entries, index, exp)
	}

	if interactive {
		return runInteractive(cmd, opts, cfg, entries, caseMode, args, log)
	}

	exp, err := newExporter(opts)
	if err != nil {
		return err
	}
	n, err := app.Batch(cmd.OutOrStdout(), entries, app.Query{
		Includes: args,
		Excludes: opts.Excludes,
		CaseMode: caseMode,
	}, opts.Limit, exp)
	if err != nil {
		return err
	}
	log.Debug("batch search done", "patterns", len(args), "excludes", len(opts.Excludes), "matches", n)
	return nil
}

func runInteractive(cmd *cobra.Command, opts *RootOptions, cfg *config.Config, entries []history.Entry, caseMode pattern.CaseMode, args []string, log *logging.Logger) error {
	_, excludes, err := app.Query{Excludes: opts.Excludes, CaseMode: caseMode}.Compile()
	if err != nil {
		return err
	}

	width, height := tui.TerminalSize()
	pickerOpts := tui.Options{
		InitialSearch: initialSearch(opts, cfg, args),
		Excludes:      excludes,
		CaseMode:      caseMode,
		Title:         cfg.TUI.Title,
		Width:         width,
		Height:        height,
	}

	var sink app.Sink
	if opts.OutputPath != "" {
		sink = &app.FileSink{Path: opts.OutputPath}
	} else {
		stdout := &app.StdoutSink{Out: cmd.OutOrStdout(), Logger: log}
		if cfg.TUI.Clipboard {
			stdout.Clipboard = clipboard.New(os.Stderr)
		}
		sink = stdout
	}

	var progOpts []tea.ProgramOption
	if opts.pick == nil {
		progOpts = tui.TerminalOptions(cfg.TUI.AltScreen)
	}

	_, err = app.Select(cmd.Context(), entries, app.SelectOptions{
		Picker:         pickerOpts,
		ProgramOptions: progOpts,
		Pick:           opts.pick,
		Logger:         log,
	}, sink)
	return err
}

// initialSearch picks the seed for the search box: --query, then the
// configured environment variable, then the positional patterns.
func initialSearch(opts *RootOptions, cfg *config.Config, args []string) string {
	if opts.Query != "" {
		return opts.Query
	}
	if cfg.Search.QueryEnv != "" {
		if v := os.Getenv(cfg.Search.QueryEnv); v != "" {
			return v
		}
	}
	return strings.Join(args, " ")
}

// applyFlags overrides config values with flags given on the command line.
func applyFlags(cmd *cobra.Command, opts *RootOptions, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.History.Path = config.ExpandHome(opts.File)
	}
	if flags.Changed("dedup") {
		cfg.History.Dedup = opts.Dedup
	}
	if flags.Changed("empty-lines") {
		cfg.History.EmptyLines = opts.EmptyLines
	}
	if flags.Changed("case-sensitive") {
		cfg.Search.Case = pattern.CaseModeFromSensitive(opts.CaseSensitive).String()
	}
	if flags.Changed("no-clipboard") {
		cfg.TUI.Clipboard = !opts.NoClipboard
	}

	level, file := globalLogSettings()
	if level != "" {
		cfg.Log.Level = level
	}
	if file != "" {
		cfg.Log.File = config.ExpandHome(file)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid option: %w", err)
	}
	return nil
}

// openLogger opens the configured log destination. Without a log file the
// interactive picker logs nowhere so records never draw over the UI.
func openLogger(cfg *config.Config, interactive bool) (*logging.Logger, error) {
	if cfg.Log.File == "" && interactive {
		return logging.Discard(), nil
	}
	return logging.New(cfg.Log.File, cfg.Log.Level)
}

func newExporter(opts *RootOptions) (*export.Exporter, error) {
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	return export.NewExporter(export.Options{Format: format, CustomTemplate: opts.Template})
}
