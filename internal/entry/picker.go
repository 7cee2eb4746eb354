package entry

import (
	"math/rand/v2"
)

// DefaultMaxSlices caps the display list when the config does not.
const DefaultMaxSlices = 1000

// Picker builds the display list from the enabled entries.
// It deduplicates labels when asked to and caps the list at maxSlices.
// When the list is capped, SetRandomPosition chooses which window of
// entries the next rebuild shows.
type Picker struct {
	all     []*Entry
	display []*Entry

	maxSlices       int
	allowDuplicates bool

	offset      int
	highlighted int

	rng *rand.Rand
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithPickerRand sets the random source used for window selection.
func WithPickerRand(r *rand.Rand) PickerOption {
	return func(p *Picker) {
		p.rng = r
	}
}

// NewPicker creates an empty Picker.
func NewPicker(opts ...PickerOption) *Picker {
	p := &Picker{
		maxSlices:       DefaultMaxSlices,
		allowDuplicates: true,
		highlighted:     -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return p
}

// SetEntries replaces the entry set and rebuilds the display list.
func (p *Picker) SetEntries(entries []*Entry, maxSlices int, allowDuplicates bool) {
	p.all = entries
	if maxSlices <= 0 {
		maxSlices = DefaultMaxSlices
	}
	p.maxSlices = maxSlices
	p.allowDuplicates = allowDuplicates
	p.rebuild()
}

func (p *Picker) rebuild() {
	candidates := p.candidates()

	if len(candidates) <= p.maxSlices {
		p.offset = 0
		p.display = candidates
		p.highlighted = -1
		return
	}

	p.offset %= len(candidates)
	display := make([]*Entry, 0, p.maxSlices)
	for i := range p.maxSlices {
		display = append(display, candidates[(p.offset+i)%len(candidates)])
	}
	p.display = display
	p.highlighted = -1
}

func (p *Picker) candidates() []*Entry {
	enabled := FilterEnabled(p.all)
	if p.allowDuplicates {
		return enabled
	}

	seen := make(map[string]struct{}, len(enabled))
	unique := make([]*Entry, 0, len(enabled))
	for _, e := range enabled {
		if _, ok := seen[e.Text]; ok {
			continue
		}
		seen[e.Text] = struct{}{}
		unique = append(unique, e)
	}
	return unique
}

// DisplayEntries returns the ordered entries currently on the wheel.
func (p *Picker) DisplayEntries() []*Entry {
	return p.display
}

// AllEntries returns every configured entry, disabled ones included.
func (p *Picker) AllEntries() []*Entry {
	return p.all
}

// Tick records the entry under the pointer and reports whether the
// highlight moved, which means the wheel needs a redraw.
func (p *Picker) Tick(pointerIndex int) bool {
	if pointerIndex == p.highlighted {
		return false
	}
	p.highlighted = pointerIndex
	return true
}

// Highlighted returns the index last reported by Tick, or -1.
func (p *Picker) Highlighted() int {
	return p.highlighted
}

// SetRandomPosition picks a new window for capped lists. The display list is
// left alone until the next SetEntries so a spin in progress keeps its sectors.
func (p *Picker) SetRandomPosition() {
	n := len(p.candidates())
	if n <= p.maxSlices {
		return
	}
	p.offset = p.rng.IntN(n)
}

// Capped reports whether some enabled entries are hidden by maxSlices.
func (p *Picker) Capped() bool {
	return len(p.candidates()) > len(p.display)
}
