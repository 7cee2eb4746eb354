// Package entry defines wheel entries and the provider that turns the
// configured entries into the list shown on the wheel.
package entry

import "math"

// Entry is a single labeled slice of the wheel.
// Entries are compared by identity, so callers hold *Entry values.
type Entry struct {
	Text string

	// Enabled is nil when the config did not say; nil counts as enabled.
	Enabled *bool

	// Weight scales the sector size. Zero or negative means 1.
	Weight float64
}

// New returns an enabled entry with unit weight.
func New(text string) *Entry {
	return &Entry{Text: text, Weight: 1}
}

// IsEnabled reports whether the entry may appear on the wheel.
func (e *Entry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// SetEnabled sets the enabled flag explicitly.
func (e *Entry) SetEnabled(enabled bool) {
	e.Enabled = &enabled
}

// SectorWeight returns the weight used for sector layout. Weights that are
// not positive and finite count as 1.
func (e *Entry) SectorWeight() float64 {
	if !(e.Weight > 0) || math.IsInf(e.Weight, 0) {
		return 1
	}
	return e.Weight
}

func (e *Entry) String() string {
	return e.Text
}

// FilterEnabled returns the enabled entries in their original order.
func FilterEnabled(entries []*Entry) []*Entry {
	var enabled []*Entry
	for _, e := range entries {
		if e != nil && e.IsEnabled() {
			enabled = append(enabled, e)
		}
	}
	return enabled
}

// Labels returns the text of each entry.
func Labels(entries []*Entry) []string {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Text
	}
	return labels
}
