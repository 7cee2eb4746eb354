package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	"wheelspin/internal/entry"
)

// ErrNoEntries is returned when there is nothing to choose from.
var ErrNoEntries = errors.New("no entries to choose from")

// TargetChooser asks the user which entry the next spin should land on.
type TargetChooser struct {
	input      io.Reader
	accessible bool
}

func NewTargetChooser() *TargetChooser {
	return &TargetChooser{}
}

// WithInput reads answers from r in accessible mode, for scripted use.
func (c *TargetChooser) WithInput(r io.Reader) *TargetChooser {
	c.input = r
	c.accessible = true
	return c
}

// Choose shows the entries and returns the chosen one. The current target
// is preselected when it is in the list.
func (c *TargetChooser) Choose(entries []*entry.Entry, current *entry.Entry) (*entry.Entry, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	choice := 0
	options := make([]huh.Option[int], len(entries))
	for i, e := range entries {
		options[i] = huh.NewOption(e.Text, i)
		if e == current {
			choice = i
		}
	}

	sel := huh.NewSelect[int]().
		Title("Land the next spin on").
		Options(options...).
		Value(&choice)

	form := huh.NewForm(
		huh.NewGroup(sel),
	).WithTheme(huh.ThemeCatppuccin())

	if c.input != nil {
		form = form.WithInput(c.input)
	}
	if c.accessible {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("target selection cancelled: %w", err)
	}

	if choice < 0 || choice >= len(entries) {
		return nil, fmt.Errorf("target selection out of range: %d", choice)
	}
	return entries[choice], nil
}
