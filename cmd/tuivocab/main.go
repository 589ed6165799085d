// Package main provides the CLI entrypoint for tuivocab.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuivocab/internal/browseui"
	"github.com/verte-zerg/tuivocab/internal/config"
	"github.com/verte-zerg/tuivocab/internal/corpus"
	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/quizui"
	"github.com/verte-zerg/tuivocab/internal/session"
	"github.com/verte-zerg/tuivocab/internal/stats"
	"github.com/verte-zerg/tuivocab/internal/store"
	"github.com/verte-zerg/tuivocab/internal/tui"
)

const (
	defaultDeck         = "due"
	defaultQuizType     = "mc"
	defaultListFilter   = "all"
	defaultListLimit    = 250
	defaultForecastDays = 7
)

var (
	cardsPath string

	studyDeck string

	quizType string

	listFilter string
	listQuery  string
	listLimit  int
	listTUI    bool

	statsDays int

	resetAll   bool
	resetToday bool
	resetYes   bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuivocab",
		Short:         "TUI vocabulary trainer with spaced repetition",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadEnv()
		},
		RunE: runStudyCmd,
	}

	rootCmd.PersistentFlags().StringVar(&cardsPath, "cards", "", "path to the card file (default: $XDG_CONFIG_HOME/tuivocab/vocab.json)")
	rootCmd.Flags().StringVar(&studyDeck, "deck", defaultDeck, "deck to study: due, favs or all")

	rootCmd.AddCommand(newQuizCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newGoalCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runStudyCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "deck", &studyDeck, fileCfg.Study.Deck)
	deck, err := model.ParseMode(studyDeck)
	if err != nil {
		return fmt.Errorf("--deck: %w", err)
	}

	sess, closeFn, err := openSession(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeFn()

	program := tea.NewProgram(tui.NewModel(sess, deck), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Quiz yourself on definitions",
		Args:  cobra.NoArgs,
		RunE:  runQuizCmd,
	}
	cmd.Flags().StringVar(&quizType, "type", defaultQuizType, "quiz type: mc or typed")
	return cmd
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "type", &quizType, fileCfg.Quiz.Type)
	qt, err := model.ParseQuizType(quizType)
	if err != nil {
		return fmt.Errorf("--type: %w", err)
	}

	sess, closeFn, err := openSession(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeFn()

	program := tea.NewProgram(quizui.NewModel(sess, qt), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run quiz TUI: %w", err)
	}
	return nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Search and list cards",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runListCmd,
	}
	cmd.Flags().StringVar(&listFilter, "filter", defaultListFilter, "cards to list: all, favs or due")
	cmd.Flags().StringVar(&listQuery, "query", "", "case-insensitive text to search in word, definition and example")
	cmd.Flags().IntVar(&listLimit, "limit", defaultListLimit, "maximum number of results")
	cmd.Flags().BoolVar(&listTUI, "tui", false, "browse the results interactively")
	return cmd
}

func runListCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "limit", &listLimit, fileCfg.List.Limit)
	filter, err := model.ParseMode(listFilter)
	if err != nil {
		return fmt.Errorf("--filter: %w", err)
	}
	if listLimit <= 0 {
		return fmt.Errorf("--limit must be > 0")
	}
	query := listQuery
	if len(args) == 1 {
		query = args[0]
	}

	sess, closeFn, err := openSession(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeFn()

	cfg := model.ListConfig{Filter: filter, Query: query, Limit: listLimit}
	if !listTUI {
		return renderList(cmd.OutOrStdout(), sess, cfg)
	}
	program := tea.NewProgram(browseui.NewModel(sess, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browse TUI: %w", err)
	}
	return nil
}

func renderList(w io.Writer, sess *session.Session, cfg model.ListConfig) error {
	cards := sess.List(cfg)
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	return stats.ListTable(cards, sess.Records(), sess.Favorites(), sess.Now()).Write(w)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsDays, "days", defaultForecastDays, "number of days in the due forecast")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "days", &statsDays, fileCfg.Stats.ForecastDays)
	if statsDays < 0 {
		return fmt.Errorf("--days must be >= 0")
	}

	sess, closeFn, err := openSession(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeFn()

	cfg := model.StatsConfig{ForecastDays: statsDays}
	return renderStats(cmd.OutOrStdout(), sess, cfg, 0)
}

func renderStats(w io.Writer, sess *session.Session, cfg model.StatsConfig, barWidth int) error {
	now := sess.Now()
	summary := stats.BuildSummary(sess.Cards(), sess.Records(), sess.Favorites(), sess.Today(), now)
	if err := stats.RenderSummary(w, summary); err != nil {
		return err
	}
	if err := stats.RenderRepsTable(w, stats.RepsDistribution(sess.Cards(), sess.Records())); err != nil {
		return err
	}
	return stats.RenderForecast(w, stats.Forecast(sess.Cards(), sess.Records(), now, cfg.ForecastDays), barWidth)
}

func newGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal <cards>",
		Short: "Set the daily goal (5-200)",
		Args:  cobra.ExactArgs(1),
		RunE:  runGoalCmd,
	}
}

func runGoalCmd(cmd *cobra.Command, args []string) error {
	goal, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("invalid goal %q: %w", args[0], err)
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	sess, err := session.Load(context.Background(), st, nil, time.Now, newRand())
	if err != nil {
		return err
	}
	set, err := sess.SetGoal(context.Background(), goal)
	if err != nil {
		return err
	}
	if set != goal {
		logErrf("goal clamped to %d\n", set)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %d\n", set)
	return err
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset today's count or all progress",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetToday, "today", false, "reset today's studied count")
	cmd.Flags().BoolVar(&resetAll, "all", false, "reset all progress and favorites")
	cmd.Flags().BoolVar(&resetYes, "yes", false, "do not ask for confirmation")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if resetToday == resetAll {
		return fmt.Errorf("pass exactly one of --today or --all")
	}
	if resetAll && !resetYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Reset all progress and favorites? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			logErrln("aborted")
			return nil
		}
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	ctx := context.Background()
	sess, err := session.Load(ctx, st, nil, time.Now, newRand())
	if err != nil {
		return err
	}
	if resetAll {
		if err := sess.ResetAll(ctx); err != nil {
			return err
		}
		logErrln("Reset all progress and favorites")
		return nil
	}
	if err := sess.ResetToday(ctx); err != nil {
		return err
	}
	logErrln("Reset today's count")
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, err
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// openSession loads the corpus and opens the store. The returned func
// closes the store.
func openSession(cmd *cobra.Command, fileCfg config.FileConfig) (*session.Session, func(), error) {
	path := resolveCardsPath(cmd, fileCfg)
	cards, err := corpus.Load(path)
	if err != nil {
		return nil, nil, cardsLoadError(path, err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	ctx := context.Background()
	sess, err := session.Load(ctx, st, cards, time.Now, newRand())
	if err != nil {
		closeStore(st)
		return nil, nil, err
	}
	if goal := fileCfg.Daily.Goal; goal != nil && *goal != sess.Today().Goal {
		if _, err := sess.SetGoal(ctx, *goal); err != nil {
			closeStore(st)
			return nil, nil, err
		}
	}
	return sess, func() { closeStore(st) }, nil
}

// resolveCardsPath picks --cards, then the config file, then the default path.
func resolveCardsPath(cmd *cobra.Command, fileCfg config.FileConfig) string {
	if cmd.Flags().Changed("cards") {
		return cardsPath
	}
	if fileCfg.Study.Cards != nil && *fileCfg.Study.Cards != "" {
		return *fileCfg.Study.Cards
	}
	return config.DefaultCardsPath()
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuivocab configuration
# Uncomment a value to enable it. CLI flags override config values.

[study]
# cards = "/path/to/vocab.json"  # Card file (default $XDG_CONFIG_HOME/tuivocab/vocab.json)
# deck = %q                   # Deck to study: due, favs or all

[quiz]
# type = %q                    # Quiz type: mc or typed

[daily]
# goal = %d                      # Daily goal (%d-%d), overrides: tuivocab goal <n>

[list]
# limit = %d                    # Maximum list results

[stats]
# forecast-days = %d              # Days in the due forecast
`,
		defaultDeck,
		defaultQuizType,
		model.DefaultDailyGoal,
		model.MinDailyGoal,
		model.MaxDailyGoal,
		defaultListLimit,
		defaultForecastDays,
	)
}

func cardsLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load cards: %v", err),
		fmt.Sprintf("expected card file at: %s", path),
		"Pass --cards <file> or set TUIVOCAB_CARDS",
		`Format: {"cards": [{"word": "...", "sense": 1, "pos": "...", "definition": "...", "example": "..."}]}`,
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
