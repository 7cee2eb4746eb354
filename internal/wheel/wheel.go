// Package wheel drives the spin of a wheel of entries: a tick-driven state
// machine for angular speed, the mapping from angle to the entry under the
// pointer, and the landing logic that steers a spin toward a target.
//
// A Wheel is not safe for concurrent use. The caller owns the animation loop
// and calls Tick at TicksPerSecond.
package wheel

import (
	"log/slog"
	"math/rand/v2"
	"slices"

	"wheelspin/internal/entry"
)

// TicksPerSecond is the cadence phase durations are expressed in.
const TicksPerSecond = 60

// Rotation is the wheel's angular state. Angle stays in [0, 2π) and Speed,
// in radians per tick, is never negative.
type Rotation struct {
	Angle float64
	Speed float64
}

// Advance moves the angle forward by one tick of speed, wrapping at 2π.
func (r *Rotation) Advance() {
	r.Angle = normalizeAngle(r.Angle + r.Speed)
}

// Settings is the part of the wheel configuration the engine and the
// painter care about.
type Settings struct {
	// SpinTime is the length of a spin in seconds.
	SpinTime float64
	SlowSpin bool
	DarkMode bool

	// ExactLanding shifts the landing teleport back by the distance the
	// deceleration will cover, so a targeted spin stops inside the target
	// sector instead of wherever the extra revolutions leave it.
	ExactLanding bool
}

// DefaultSettings returns a ten second, normal speed spin.
func DefaultSettings() Settings {
	return Settings{SpinTime: 10}
}

// Timing holds the phase lengths in ticks.
type Timing struct {
	Accelerating float64
	Decelerating float64
}

// Total returns the spin length in ticks.
func (t Timing) Total() float64 {
	return t.Accelerating + t.Decelerating
}

// TimingFor splits a spin of spinTime seconds into its two phases.
// Acceleration takes a third of the spin, capped at one second.
func TimingFor(spinTime float64) Timing {
	ticks := spinTime * TicksPerSecond
	accel := min(maxAccelerationTicks, ticks/3)
	return Timing{
		Accelerating: accel,
		Decelerating: ticks - accel,
	}
}

// EntryProvider owns the entries and decides which of them are displayed.
type EntryProvider interface {
	SetEntries(enabled []*entry.Entry, maxSlices int, allowDuplicates bool)
	DisplayEntries() []*entry.Entry
	AllEntries() []*entry.Entry
	// Tick receives the index under the pointer and reports whether the
	// provider's visual state changed.
	Tick(pointerIndex int) bool
	SetRandomPosition()
}

// Painter renders the wheel.
type Painter interface {
	// Refresh marks the cached rendering as stale.
	Refresh()
	Draw(angle float64, display, all []*entry.Entry, settings Settings)
}

// EntryChangedFunc is called whenever a different entry moves under the pointer.
type EntryChangedFunc func()

// SpinDoneFunc is called once per spin with the entry the wheel landed on.
// The entry is nil when the wheel has no entries.
type SpinDoneFunc func(*entry.Entry)

// Wheel is the spin controller.
type Wheel struct {
	rot   Rotation
	phase phase

	provider EntryProvider
	painter  Painter

	settings   Settings
	configured bool

	onEntryChanged EntryChangedFunc
	onSpinDone     SpinDoneFunc

	target     *entry.Entry
	fromSeq    bool
	spinTarget *entry.Entry

	sequence []int
	cursor   int

	lastIndex int

	rng *rand.Rand
	log *slog.Logger
}

// Option configures a Wheel.
type Option func(*Wheel)

// WithRand sets the random source for landing angles.
func WithRand(r *rand.Rand) Option {
	return func(w *Wheel) {
		w.rng = r
	}
}

// WithLogger sets the logger for phase transitions and ignored requests.
func WithLogger(l *slog.Logger) Option {
	return func(w *Wheel) {
		w.log = l
	}
}

// WithSettings configures the wheel up front, as Configure would.
func WithSettings(s Settings) Option {
	return func(w *Wheel) {
		w.settings = s
		w.configured = true
	}
}

// New creates a wheel in the idle demo phase.
func New(provider EntryProvider, painter Painter, opts ...Option) *Wheel {
	w := &Wheel{
		provider:  provider,
		painter:   painter,
		settings:  DefaultSettings(),
		lastIndex: -1,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if w.log == nil {
		w.log = slog.New(slog.DiscardHandler)
	}
	w.enter(&idleDemo{})
	return w
}

func (w *Wheel) state() *spinState {
	return &spinState{
		rot:    &w.rot,
		timing: w.StateTimeLengths(),
		slow:   w.settings.SlowSpin,
		land:   w.land,
		done:   w.spinIsDone,
	}
}

func (w *Wheel) enter(next phase) {
	from := "none"
	if w.phase != nil {
		from = w.phase.kind().String()
	}
	w.phase = next
	w.log.Debug("phase transition", "from", from, "to", next.kind().String(),
		"angle", w.rot.Angle, "speed", w.rot.Speed)
	next.enter(w.state())
}

// SetEntries hands the enabled entries to the provider. Ignored mid-spin.
func (w *Wheel) SetEntries(entries []*entry.Entry, maxSlices int, allowDuplicates bool) {
	if w.IsSpinning() {
		w.log.Debug("set entries ignored while spinning")
		return
	}
	w.provider.SetEntries(entry.FilterEnabled(entries), maxSlices, allowDuplicates)
	w.painter.Refresh()
}

// Configure replaces the settings. Ignored mid-spin.
func (w *Wheel) Configure(s Settings) {
	if w.IsSpinning() {
		w.log.Debug("configure ignored while spinning")
		return
	}
	w.settings = s
	w.configured = true
	w.painter.Refresh()
}

// Settings returns the current settings.
func (w *Wheel) Settings() Settings {
	return w.settings
}

// Refresh asks the painter to redraw.
func (w *Wheel) Refresh() {
	w.painter.Refresh()
}

// Tick advances the wheel by one frame.
func (w *Wheel) Tick() {
	if next := w.phase.tick(w.state()); next != nil {
		w.enter(next)
	}
	w.advance()

	if w.provider.Tick(w.lastIndex) {
		w.painter.Refresh()
	}
}

func (w *Wheel) advance() {
	w.rot.Advance()

	idx := w.IndexAtPointer()
	if idx != w.lastIndex {
		w.lastIndex = idx
		if w.onEntryChanged != nil {
			w.onEntryChanged()
		}
	}
}

// Click starts a spin. It registers the callbacks, takes the next index from
// the predetermined sequence as the target, and moves the wheel to the
// target's sector. Ignored while a spin is in progress.
func (w *Wheel) Click(onEntryChanged EntryChangedFunc, onSpinDone SpinDoneFunc) {
	if w.IsSpinning() {
		w.log.Debug("click ignored while spinning", "phase", w.phase.kind().String())
		return
	}

	w.onEntryChanged = onEntryChanged
	w.onSpinDone = onSpinDone

	if w.cursor < len(w.sequence) {
		idx := w.sequence[w.cursor]
		w.cursor++
		if w.SetTargetIndex(idx) {
			w.fromSeq = true
		}
	} else if w.fromSeq {
		w.target = nil
		w.fromSeq = false
	}

	w.spinTarget = w.target
	if w.spinTarget != nil {
		w.setRandomPosition()
	}

	if next := w.phase.click(w.state()); next != nil {
		w.enter(next)
	}
}

// spinIsDone reports the landing entry. The post-spin phase calls it once.
func (w *Wheel) spinIsDone() {
	landed := w.EntryAtPointer()
	w.log.Debug("spin done", "entry", landed, "angle", w.rot.Angle)
	if w.onSpinDone != nil {
		w.onSpinDone(landed)
	}
}

// IsSpinning reports whether the wheel is accelerating or decelerating.
func (w *Wheel) IsSpinning() bool {
	return w.phase.isSpinning()
}

// Phase returns the active phase.
func (w *Wheel) Phase() Phase {
	return w.phase.kind()
}

// Angle returns the current rotation in radians.
func (w *Wheel) Angle() float64 {
	return w.rot.Angle
}

// Speed returns the current speed in radians per tick.
func (w *Wheel) Speed() float64 {
	return w.rot.Speed
}

// SetTargetEntry makes the next spin land on e. A nil entry clears the target.
func (w *Wheel) SetTargetEntry(e *entry.Entry) {
	w.target = e
	w.fromSeq = false
}

// SetTargetIndex targets the display entry at index. Out of range indices
// are ignored; the return value reports whether the target changed.
func (w *Wheel) SetTargetIndex(index int) bool {
	display := w.provider.DisplayEntries()
	if index < 0 || index >= len(display) {
		w.log.Debug("target index out of range", "index", index, "entries", len(display))
		return false
	}
	w.SetTargetEntry(display[index])
	return true
}

// ClearTarget removes the target. A spin in progress keeps its landing.
func (w *Wheel) ClearTarget() {
	w.SetTargetEntry(nil)
}

// Target returns the target for the next spin, or nil.
func (w *Wheel) Target() *entry.Entry {
	return w.target
}

// SetPredeterminedSequence sets display indices to target, one per spin,
// starting from the first.
func (w *Wheel) SetPredeterminedSequence(sequence []int) {
	w.sequence = slices.Clone(sequence)
	w.cursor = 0
}

// SequenceRemaining returns how many sequence indices are still unused.
func (w *Wheel) SequenceRemaining() int {
	return len(w.sequence) - w.cursor
}

// DisplayEntries returns the entries currently laid out on the wheel.
func (w *Wheel) DisplayEntries() []*entry.Entry {
	return w.provider.DisplayEntries()
}

// IndexAtPointer returns the display index under the pointer, or -1.
func (w *Wheel) IndexAtPointer() int {
	return IndexAtPointer(w.provider.DisplayEntries(), w.rot.Angle)
}

// EntryAtPointer returns the display entry under the pointer, or nil.
func (w *Wheel) EntryAtPointer() *entry.Entry {
	display := w.provider.DisplayEntries()
	idx := IndexAtPointer(display, w.rot.Angle)
	if idx < 0 {
		return nil
	}
	return display[idx]
}

// ResetRotation puts the wheel back at angle 0.
func (w *Wheel) ResetRotation() {
	w.rot.Angle = 0
}

// StateTimeLengths returns the phase lengths for the current settings.
func (w *Wheel) StateTimeLengths() Timing {
	return TimingFor(w.settings.SpinTime)
}

// Draw paints the wheel if it has been configured and the phase wants a frame.
func (w *Wheel) Draw() {
	if !w.configured || !w.phase.drawThisFrame() {
		return
	}
	w.painter.Draw(w.rot.Angle, w.provider.DisplayEntries(), w.provider.AllEntries(), w.settings)
}
