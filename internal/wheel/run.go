package wheel

import (
	"errors"
	"math"

	"wheelspin/internal/entry"
)

// ErrSpinning is returned by Spin when a spin is already in progress.
var ErrSpinning = errors.New("wheel is already spinning")

// spinSlack bounds Spin's loop beyond the configured phase lengths.
const spinSlack = 2 * TicksPerSecond

// Spin runs one whole spin without an animation loop and returns the entry
// it landed on, which is nil for an empty wheel. Callbacks registered by an
// earlier Click are replaced.
//
// If the spin does not stop within the phase lengths plus spinSlack, Spin
// gives up and the wheel stays mid-spin: later calls return ErrSpinning and
// SetEntries and Configure are ignored, so callers should build a new Wheel.
func (w *Wheel) Spin() (*entry.Entry, error) {
	if w.IsSpinning() {
		return nil, ErrSpinning
	}

	var landed *entry.Entry
	done := false
	w.Click(nil, func(e *entry.Entry) {
		landed = e
		done = true
	})

	limit := int(math.Ceil(w.StateTimeLengths().Total())) + spinSlack
	for range limit {
		w.Tick()
		if done {
			return landed, nil
		}
	}
	return nil, errors.New("spin did not finish")
}

// NopPainter is a Painter that renders nothing, for headless spins.
type NopPainter struct{}

func (NopPainter) Refresh()                                               {}
func (NopPainter) Draw(float64, []*entry.Entry, []*entry.Entry, Settings) {}
