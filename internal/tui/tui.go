package tui

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wheelspin/internal/entry"
	"wheelspin/internal/history"
	"wheelspin/internal/wheel"
)

const (
	frameInterval = time.Second / wheel.TicksPerSecond

	// Panel dimension adjustments.
	panelPadding     = 4 // border(2) + padding(2)
	sidePanelChrome  = 5 // border(2) + title gap(1) + help(2)
	compactTallyRows = 3
)

// Deck is the entry set the wheel is loaded with before every spin.
type Deck struct {
	Entries         []*entry.Entry
	MaxSlices       int
	AllowDuplicates bool
}

// Recorder persists landed spins.
type Recorder interface {
	Append(results ...history.Result) error
}

// spinTracker collects the wheel callbacks. It lives behind a pointer so the
// callbacks registered at click time still reach the Model bubbletea holds.
type spinTracker struct {
	changes int
	landed  *entry.Entry
	done    bool
}

func (t *spinTracker) entryChanged() {
	t.changes++
}

func (t *spinTracker) spinDone(e *entry.Entry) {
	t.landed = e
	t.done = true
}

// takeChanges returns and resets the entry change count.
func (t *spinTracker) takeChanges() int {
	n := t.changes
	t.changes = 0
	return n
}

// takeLanded returns the landed entry once per finished spin.
func (t *spinTracker) takeLanded() (*entry.Entry, bool) {
	if !t.done {
		return nil, false
	}
	e := t.landed
	t.landed, t.done = nil, false
	return e, true
}

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model is the interactive wheel.
type Model struct {
	wheel   *wheel.Wheel
	painter *RingPainter
	flapper Flapper

	keys keyMap
	help help.Model

	results ResultsPanelModel
	entries *EntryListModel

	width  int
	height int
	layout Layout

	deck     Deck
	recorder Recorder
	profile  string
	now      func() time.Time
	log      *slog.Logger

	track   *spinTracker
	elapsed int
	spins   int
	winner  string
	notice  string

	showEntries bool
}

// Option configures a Model.
type Option func(*Model)

// WithRecorder saves every landed spin to r.
func WithRecorder(r Recorder) Option {
	return func(m *Model) {
		m.recorder = r
	}
}

// WithProfile tags recorded results with the active profile.
func WithProfile(profile string) Option {
	return func(m *Model) {
		m.profile = profile
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// WithClock sets the time source for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithPastResults seeds the tally with results from earlier sessions.
func WithPastResults(past []history.Result) Option {
	return func(m *Model) {
		m.results = NewResultsPanel(past)
	}
}

// New creates a Model around w, which must paint with painter. The deck is
// loaded onto the wheel right away.
func New(w *wheel.Wheel, painter *RingPainter, deck Deck, opts ...Option) Model {
	m := Model{
		wheel:   w,
		painter: painter,
		flapper: NewFlapper(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		results: NewResultsPanel(nil),
		entries: NewEntryList(),
		deck:    deck,
		now:     time.Now,
		track:   &spinTracker{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.log == nil {
		m.log = slog.New(slog.DiscardHandler)
	}

	m.loadDeck()
	m.entries.SetSize(40, 10)
	m.results.SetSize(40, 10)
	return m
}

func (m *Model) loadDeck() {
	m.wheel.SetEntries(m.deck.Entries, m.deck.MaxSlices, m.deck.AllowDuplicates)
	m.entries.SetEntries(m.deck.Entries, m.wheel.DisplayEntries())
}

func (m Model) Init() tea.Cmd {
	return nextFrame()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m = m.frame()
		return m, nextFrame()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-3)
		case tea.MouseButtonWheelDown:
			m.scroll(3)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	}

	return m, nil
}

// frame runs one wheel tick and the animations that hang off it.
func (m Model) frame() Model {
	spinning := m.wheel.IsSpinning()
	m.wheel.Tick()
	if spinning {
		m.elapsed++
	}

	if m.track.takeChanges() > 0 {
		m.flapper.Kick()
	}
	m.flapper.Tick()

	m.painter.SetPointerOffset(m.flapper.Offset())
	m.painter.SetTarget(m.wheel.Target())
	m.wheel.Draw()
	m.entries.SetState(m.wheel.EntryAtPointer(), m.wheel.Target())

	if landed, ok := m.track.takeLanded(); ok {
		m = m.finishSpin(landed)
	}
	return m
}

func (m Model) finishSpin(landed *entry.Entry) Model {
	m.spins++
	if landed == nil {
		m.notice = "The wheel has no entries to land on."
		return m
	}

	m.winner = landed.Text
	res := history.Result{Entry: landed.Text, Profile: m.profile, Time: m.now()}
	m.results.Add(res)
	m.log.Info("spin landed", "entry", landed.Text, "spin", m.spins)

	if m.recorder != nil {
		if err := m.recorder.Append(res); err != nil {
			m.log.Warn("saving result failed", "err", err)
			m.notice = fmt.Sprintf("could not save result: %v", err)
		}
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Spin):
		m.spin()

	case key.Matches(msg, m.keys.NextTarget):
		m.cycleTarget(1)

	case key.Matches(msg, m.keys.PrevTarget):
		m.cycleTarget(-1)

	case key.Matches(msg, m.keys.ClearTarget):
		m.wheel.ClearTarget()

	case key.Matches(msg, m.keys.PickTarget):
		m.pickSelected()

	case key.Matches(msg, m.keys.Entries):
		m.showEntries = !m.showEntries

	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)

	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	}
	return m, nil
}

// spin reloads the deck, which shows a fresh window of a capped wheel, and
// clicks. Ignored while the wheel is spinning.
func (m *Model) spin() {
	if m.wheel.IsSpinning() {
		return
	}
	m.loadDeck()
	m.elapsed = 0
	m.winner = ""
	m.notice = ""
	m.wheel.Click(m.track.entryChanged, m.track.spinDone)
}

// cycleTarget moves the target dir steps through the display entries.
// Without a target it starts from the first (or last) entry.
func (m *Model) cycleTarget(dir int) {
	display := m.wheel.DisplayEntries()
	if len(display) == 0 {
		return
	}

	next := 0
	if dir < 0 {
		next = len(display) - 1
	}
	if idx := slices.Index(display, m.wheel.Target()); idx >= 0 {
		next = (idx + dir + len(display)) % len(display)
	}
	m.wheel.SetTargetEntry(display[next])
}

func (m *Model) pickSelected() {
	if !m.showEntries {
		return
	}
	sel := m.entries.Selected()
	if sel == nil {
		return
	}
	if !slices.Contains(m.wheel.DisplayEntries(), sel) {
		m.notice = fmt.Sprintf("%q is not on the wheel.", sel.Text)
		return
	}
	m.notice = ""
	m.wheel.SetTargetEntry(sel)
}

func (m *Model) scroll(n int) {
	if m.showEntries {
		for range abs(n) {
			if n < 0 {
				m.entries.MoveUp()
			} else {
				m.entries.MoveDown()
			}
		}
		return
	}
	if n < 0 {
		m.results.ScrollUp(-n)
	} else {
		m.results.ScrollDown(n)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (m *Model) resize() {
	contentWidth, contentHeight := m.contentDimensions()
	m.layout = NewLayout(contentWidth, contentHeight)
	m.painter.SetSize(m.layout.RingSize())
	m.help.Width = contentWidth

	if m.layout.IsTwoColumn() {
		sideWidth := m.layout.RightWidth - panelPadding
		sideHeight := max(m.layout.Height-sidePanelChrome, 3)
		m.results.SetSize(sideWidth, sideHeight)
		m.entries.SetSize(sideWidth, sideHeight)
		return
	}
	m.results.SetSize(contentWidth, compactTallyRows)
	m.entries.SetSize(contentWidth, compactTallyRows)
}

func (m Model) contentDimensions() (width, height int) {
	width = max(m.width-4, 10)
	height = max(m.height-2, 3)
	return width, height
}

func (m Model) View() string {
	var content string
	if m.layout.IsTwoColumn() {
		content = m.renderTwoColumn()
	} else {
		content = m.renderSingleColumn()
	}

	if m.width > 0 && m.height > 0 {
		return appContainerStyle.Render(content)
	}
	return content
}

func (m Model) renderSingleColumn() string {
	width, _ := m.contentDimensions()

	var s strings.Builder
	s.WriteString(titleStyle.Render("WHEELSPIN"))
	s.WriteString("\n")
	s.WriteString(m.renderWheelColumn(width))

	if m.spins > 0 {
		s.WriteString("\n\n")
		s.WriteString(RenderTally(m.results.Tally(), compactTallyRows))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m Model) renderTwoColumn() string {
	layout := m.layout

	left := Panel{
		Title:       "WHEELSPIN",
		Content:     m.renderWheelColumn(layout.LeftWidth - panelPadding),
		Width:       layout.LeftWidth,
		Height:      layout.Height - 3,
		BorderColor: FocusedBorderColor,
		Focused:     true,
	}

	right := Panel{
		Title:       m.sidePanelTitle(),
		Width:       layout.RightWidth,
		Height:      layout.Height - 3,
		BorderColor: UnfocusedBorderColor,
		Focused:     true,
	}
	if m.showEntries {
		right.Content = m.entries.View()
		if t := m.wheel.Target(); t != nil {
			right.Footer = targetMarker + " " + t.Text
		}
	} else {
		right.Content = m.results.View()
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, RenderPanel(left), RenderPanel(right))
	return panels + "\n" + helpStyle.Render(m.help.View(m.keys))
}

func (m Model) sidePanelTitle() string {
	if m.showEntries {
		return fmt.Sprintf("Entries • %d on wheel", len(m.wheel.DisplayEntries()))
	}

	title := "Results"
	if n := len(m.results.Results()); n > 0 {
		title = fmt.Sprintf("Results • %s", spinCount(n))
	}
	if m.results.TotalLineCount() > m.results.Height() {
		title = fmt.Sprintf("%s (%d%%)", title, int(m.results.ScrollPercent()*100))
	}
	if !m.results.AtBottom() {
		title += " ▼"
	}
	return title
}

// renderWheelColumn stacks the ring, the progress line and whichever of the
// winner banner or the notice applies.
func (m Model) renderWheelColumn(width int) string {
	var s strings.Builder

	s.WriteString(m.painter.View())
	s.WriteString("\n\n")
	s.WriteString(RenderProgress(m.progress(), max(width-2, 20)))

	switch {
	case m.notice != "":
		s.WriteString("\n")
		s.WriteString(RenderNotice("Notice", m.notice, width))
	case m.winner != "" && !m.wheel.IsSpinning():
		s.WriteString("\n")
		s.WriteString(RenderWinner(m.winner, m.spins, width))
	}
	return s.String()
}

func (m Model) progress() SpinProgress {
	return SpinProgress{
		Phase:   m.wheel.Phase(),
		Elapsed: m.elapsed,
		Total:   m.wheel.StateTimeLengths().Total(),
		Spins:   m.spins,
	}
}

// Winner returns the label of the last landed entry, or "".
func (m Model) Winner() string {
	return m.winner
}

// Spins returns how many spins finished this session.
func (m Model) Spins() int {
	return m.spins
}

// Results returns this session's results.
func (m Model) Results() []history.Result {
	return m.results.Results()
}
