// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/verte-zerg/keydrill/internal/charset"
	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/pool"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/store"
	"github.com/verte-zerg/keydrill/internal/tui"
)

const defaultScoresLast = 20

var (
	playDuration  int
	playHistory   int
	playFuture    int
	playLower     bool
	playUpper     bool
	playDigits    bool
	playPunct     bool
	playTenFinger bool
	playHardcore  bool
	playSeed      int64
	playTick      time.Duration

	scoresDuration int
	scoresSince    string
	scoresLast     int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "keydrill"})

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "Timed single-character typing drill",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	addSettingsFlags(rootCmd.Flags())
	rootCmd.Flags().DurationVar(&playTick, "tick", tui.DefaultTickInterval, "clock refresh interval")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCharsetCmd())
	rootCmd.AddCommand(newScoresCmd())

	return rootCmd
}

func addSettingsFlags(flags *pflag.FlagSet) {
	d := model.DefaultSettings()
	flags.IntVar(&playDuration, "duration", d.DurationSec, "session length in seconds")
	flags.IntVar(&playHistory, "history", d.HistoryLength, "typed characters kept on screen")
	flags.IntVar(&playFuture, "future", d.FutureLength, "upcoming characters shown")
	flags.BoolVar(&playLower, "lower", d.Categories.Lowercase, "include lowercase letters")
	flags.BoolVar(&playUpper, "upper", d.Categories.Uppercase, "include capital letters")
	flags.BoolVar(&playDigits, "digits", d.Categories.Digits, "include digits")
	flags.BoolVar(&playPunct, "punct", d.Categories.Punctuation, "include punctuation")
	flags.BoolVar(&playTenFinger, "ten-finger", d.TenFingerHint, "show which finger types the target")
	flags.BoolVar(&playHardcore, "hardcore", d.Hardcore, "end the session on the first mistake")
	flags.Int64Var(&playSeed, "seed", 0, "random seed (0 = time based)")
}

// resolveSettings loads the config file and applies changed flags on top.
// A broken config is logged and replaced by defaults.
func resolveSettings(cmd *cobra.Command) model.Settings {
	settings, err := config.LoadSettings(config.DefaultConfigPath())
	if err != nil {
		logger.Warn("using default settings", "err", err)
	}
	applyIntFlag(cmd, "duration", &settings.DurationSec, playDuration)
	applyIntFlag(cmd, "history", &settings.HistoryLength, playHistory)
	applyIntFlag(cmd, "future", &settings.FutureLength, playFuture)
	applyBoolFlag(cmd, "lower", &settings.Categories.Lowercase, playLower)
	applyBoolFlag(cmd, "upper", &settings.Categories.Uppercase, playUpper)
	applyBoolFlag(cmd, "digits", &settings.Categories.Digits, playDigits)
	applyBoolFlag(cmd, "punct", &settings.Categories.Punctuation, playPunct)
	applyBoolFlag(cmd, "ten-finger", &settings.TenFingerHint, playTenFinger)
	applyBoolFlag(cmd, "hardcore", &settings.Hardcore, playHardcore)

	if err := settings.Validate(); err != nil {
		logger.Warn("invalid settings replaced with defaults", "err", err)
	}
	return settings.Sanitize()
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("keydrill needs an interactive terminal")
	}
	settings := resolveSettings(cmd)

	logFile, err := openLogFile(config.DefaultLogPath())
	if err != nil {
		logger.Warn("logging disabled during the drill", "err", err)
	}
	var sink io.Writer = io.Discard
	if logFile != nil {
		sink = logFile
		defer func() {
			if cerr := logFile.Close(); cerr != nil {
				logger.Error("failed to close log file", "err", cerr)
			}
		}()
	}
	tuiLogger := log.NewWithOptions(sink, log.Options{ReportTimestamp: true, Prefix: "keydrill"})

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		// Scores are optional; the drill runs without them.
		logger.Warn("scores will not be saved", "err", err)
		st = nil
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Error("failed to close db", "err", cerr)
			}
		}()
	}

	m := tui.NewModel(tui.Options{
		Settings:     settings,
		Store:        st,
		Logger:       tuiLogger,
		Chars:        charset.NewSource(config.DefaultCharsetDir()),
		Random:       pool.NewRandom(playSeed),
		ConfigPath:   config.DefaultConfigPath(),
		TickInterval: playTick,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	created, err := config.EnsureTemplate(path)
	if err != nil {
		return err
	}
	if created {
		logger.Info("wrote config template", "path", path)
	}
	edit, err := editorCommand(os.Getenv("EDITOR"), path)
	if err != nil {
		return err
	}
	edit.Stdin = os.Stdin
	edit.Stdout = cmd.OutOrStdout()
	edit.Stderr = cmd.ErrOrStderr()
	if err := edit.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// editorCommand builds the command opening path in editor, which may carry
// arguments. An empty editor means vi.
func editorCommand(editor, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	bin, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("editor %q not found: %w", fields[0], err)
	}
	return exec.Command(bin, append(fields[1:], path)...), nil
}

func newCharsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charset",
		Short: "Print the characters a drill would sample from",
		Args:  cobra.NoArgs,
		RunE:  runCharsetCmd,
	}
	addSettingsFlags(cmd.Flags())
	return cmd
}

func runCharsetCmd(cmd *cobra.Command, _ []string) error {
	settings := resolveSettings(cmd)
	src := charset.NewSource(config.DefaultCharsetDir())
	p, err := pool.BuildOrDefault(src, settings.Categories, pool.NewRandom(playSeed))
	if err != nil {
		logger.Warn("character pool degraded", "err", err)
	}
	out := cmd.OutOrStdout()
	for _, cat := range model.AllCategories {
		if !settings.Categories.Enabled(cat) {
			continue
		}
		source := "builtin"
		if path := src.Path(cat); path != "" {
			if _, err := os.Stat(path); err == nil {
				source = path
			}
		}
		if _, err := fmt.Fprintf(out, "%-12s %s\n", cat, source); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprintf(out, "%d characters: %s\n", p.Len(), string(p.Runes())); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show recorded scores",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
	cmd.Flags().IntVar(&scoresDuration, "duration", 0, "only sessions of this length in seconds")
	cmd.Flags().StringVar(&scoresSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&scoresLast, "last", defaultScoresLast, "limit to last N sessions (0 = all)")
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if scoresSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", scoresSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if scoresLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, model.ScoresFilter{
		DurationSec: scoresDuration,
		Since:       sinceTime,
		Last:        scoresLast,
	})
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report); err != nil {
		return err
	}
	if err := stats.RenderScoreTable(out, report.Records); err != nil {
		return err
	}
	return stats.RenderTrend(out, report.Records, terminalWidth())
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyBoolFlag(cmd *cobra.Command, name string, target *bool, value bool) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}
