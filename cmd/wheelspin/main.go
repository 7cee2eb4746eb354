package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"wheelspin/internal/condition"
	"wheelspin/internal/config"
	"wheelspin/internal/entry"
	"wheelspin/internal/history"
	"wheelspin/internal/pathutil"
	"wheelspin/internal/tui"
	"wheelspin/internal/wheel"
)

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

type CLI struct {
	Config      string     `help:"Path to config file" default:"./wheel.yaml" type:"path"`
	HistoryFile string     `help:"Path to the results file (default: $XDG_DATA_HOME/wheelspin/history.yaml)" type:"path" env:"WHEELSPIN_HISTORY"`
	Spin        SpinCmd    `cmd:"" default:"withargs" help:"Spin the wheel in the terminal (default)"`
	Pick        PickCmd    `cmd:"" help:"Spin without the TUI and print each winner"`
	History     HistoryCmd `cmd:"" help:"Show the tally of recorded results"`
	Version     VersionCmd `cmd:"" help:"Show version information"`
}

// WheelFlags are shared by the commands that spin.
type WheelFlags struct {
	Profile   string `help:"Profile to use (required when profiles defined in config)"`
	Target    string `help:"Land on the entry best matching this label"`
	Seed      uint64 `help:"Seed for the random source (0 picks one)"`
	NoHistory bool   `help:"Do not record results"`
}

type SpinCmd struct {
	WheelFlags `embed:""`

	ChooseTarget bool `help:"Choose the target from a list before the wheel starts"`
}

func (c *SpinCmd) Run(cli *CLI) error {
	log, closeLog := debugLogger()
	defer closeLog()

	painter := tui.NewRingPainter(40, 15)
	s, err := newSession(cli, c.WheelFlags, painter, log)
	if err != nil {
		return err
	}

	if c.ChooseTarget {
		target, err := tui.NewTargetChooser().Choose(s.wheel.DisplayEntries(), s.wheel.Target())
		if err != nil {
			return err
		}
		s.wheel.SetTargetEntry(target)
	}

	store := historyStore(cli)
	past, err := store.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	opts := []tui.Option{
		tui.WithProfile(s.profile),
		tui.WithLogger(log),
		tui.WithPastResults(past),
	}
	if !c.NoHistory {
		opts = append(opts, tui.WithRecorder(store))
	}

	model := tui.New(s.wheel, painter, s.deck, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

type PickCmd struct {
	WheelFlags `embed:""`

	Count int `help:"Number of spins" default:"1"`
}

func (c *PickCmd) Run(cli *CLI) error {
	return c.run(cli, os.Stdout)
}

func (c *PickCmd) run(cli *CLI, out io.Writer) error {
	log, closeLog := debugLogger()
	defer closeLog()

	if c.Count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", c.Count)
	}

	s, err := newSession(cli, c.WheelFlags, wheel.NopPainter{}, log)
	if err != nil {
		return err
	}

	results := make([]history.Result, 0, c.Count)
	for i := range c.Count {
		// Reloading shows a fresh window of a capped wheel each spin.
		s.load()
		landed, err := s.wheel.Spin()
		if err != nil {
			return fmt.Errorf("spin %d: %w", i+1, err)
		}
		if landed == nil {
			return errors.New("no entries to spin")
		}
		fmt.Fprintln(out, landed.Text)
		results = append(results, history.Result{Entry: landed.Text, Profile: s.profile, Time: time.Now()})
	}

	if c.NoHistory {
		return nil
	}
	if err := historyStore(cli).Append(results...); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

type HistoryCmd struct {
	Clear bool `help:"Delete all recorded results"`
	Limit int  `help:"Show at most this many entries (0 shows all)" default:"0"`
}

func (c *HistoryCmd) Run(cli *CLI) error {
	return c.run(cli, os.Stdout)
}

func (c *HistoryCmd) run(cli *CLI, out io.Writer) error {
	store := historyStore(cli)

	if c.Clear {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintf(out, "Cleared %s\n", store.Path())
		return nil
	}

	results, err := store.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "No results recorded yet")
		return nil
	}

	fmt.Fprintln(out, tui.RenderTally(history.Tally(results), c.Limit))
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(cli *CLI) error {
	fmt.Printf("wheelspin %s (commit: %s, built: %s)\n", Version, Commit, Date)
	return nil
}

// session is a configured wheel with its deck loaded.
type session struct {
	profile string
	deck    tui.Deck
	wheel   *wheel.Wheel
}

func newSession(cli *CLI, f WheelFlags, painter wheel.Painter, log *slog.Logger) (*session, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	profile, err := validateProfile(cfg.Profiles, f.Profile)
	if err != nil {
		return nil, err
	}

	detector := &condition.ClockDetector{}
	ctx := detector.Detect()
	ctx.Profile = profile

	entries, err := entry.DefaultBuilder(ctx, cfg.Variables).WithLogger(log).Build(cfg.Entries)
	if err != nil {
		return nil, fmt.Errorf("build entries: %w", err)
	}

	rng := newRand(f.Seed)
	w := wheel.New(
		entry.NewPicker(entry.WithPickerRand(rng)),
		painter,
		wheel.WithRand(rng),
		wheel.WithLogger(log),
		wheel.WithSettings(settingsFrom(cfg.Wheel)),
	)

	s := &session{
		profile: profile,
		deck: tui.Deck{
			Entries:         entries,
			MaxSlices:       cfg.Wheel.MaxSlices,
			AllowDuplicates: cfg.Wheel.Duplicates(),
		},
		wheel: w,
	}
	s.load()
	log.Debug("wheel loaded", "entries", len(entries), "display", len(w.DisplayEntries()), "profile", profile)

	if len(cfg.Sequence) > 0 {
		w.SetPredeterminedSequence(cfg.Sequence)
	}

	query := f.Target
	if query == "" {
		query = cfg.Target
	}
	if query != "" {
		target := entry.Find(w.DisplayEntries(), query)
		if target == nil {
			return nil, fmt.Errorf("no entry on the wheel matches target %q", query)
		}
		w.SetTargetEntry(target)
	}

	return s, nil
}

func (s *session) load() {
	s.wheel.SetEntries(s.deck.Entries, s.deck.MaxSlices, s.deck.AllowDuplicates)
}

func settingsFrom(w config.Wheel) wheel.Settings {
	return wheel.Settings{
		SpinTime:     w.SpinTime,
		SlowSpin:     w.SlowSpin,
		DarkMode:     w.DarkMode,
		ExactLanding: w.ExactLanding,
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func historyStore(cli *CLI) *history.FileStore {
	path := cli.HistoryFile
	if path == "" {
		path = pathutil.DataFile("wheelspin", "history.yaml")
	}
	return history.NewFileStore(path)
}

// debugLogger writes debug logs to $WHEELSPIN_DEBUG when it is set.
func debugLogger() (*slog.Logger, func()) {
	path := os.Getenv("WHEELSPIN_DEBUG")
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), func() { f.Close() }
}

func validateProfile(configured []string, flag string) (string, error) {
	if len(configured) == 0 {
		if flag != "" {
			return "", errors.New("--profile specified but no profiles defined in config")
		}
		return "", nil
	}

	if flag == "" {
		return "", fmt.Errorf("config defines profiles %v, use --profile to select one", configured)
	}

	if !slices.Contains(configured, flag) {
		return "", fmt.Errorf("invalid profile %q, must be one of: %v", flag, configured)
	}

	return flag, nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("wheelspin"),
		kong.Description("Spin a wheel of names in the terminal"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
