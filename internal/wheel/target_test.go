package wheel

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheelspin/internal/entry"
)

func TestLandingAngle_WithinJitter(t *testing.T) {
	s := Sector{Start: 1, End: 2}
	for _, u := range []float64{0, 0.25, 0.5, 0.999} {
		a := landingAngle(s, u)
		assert.InDelta(t, s.Center(), a, 0.05*s.Width()+1e-12, "u=%v", u)
		assert.GreaterOrEqual(t, a, s.Start)
		assert.Less(t, a, s.End)
	}
}

func TestWheel_SetTarget(t *testing.T) {
	w, picker, _ := newTestWheel(t, DefaultSettings(), "a", "b", "c")
	display := picker.DisplayEntries()

	assert.Nil(t, w.Target())

	assert.True(t, w.SetTargetIndex(2))
	assert.Same(t, display[2], w.Target())

	assert.False(t, w.SetTargetIndex(3))
	assert.False(t, w.SetTargetIndex(-1))
	assert.Same(t, display[2], w.Target(), "out of range index leaves the target alone")

	w.SetTargetEntry(display[0])
	assert.Same(t, display[0], w.Target())

	w.ClearTarget()
	assert.Nil(t, w.Target())
}

func TestWheel_TargetedSpinLandsInSector(t *testing.T) {
	labels := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for idx := range labels {
		w, picker, _ := newTestWheel(t, Settings{SpinTime: 1}, labels...)
		require.True(t, w.SetTargetIndex(idx))

		w.Click(nil, nil)
		inSector(t, picker.DisplayEntries(), idx, picker.lastLanding(t))

		for w.Phase() == PhaseAccelerating {
			w.Tick()
		}
		inSector(t, picker.DisplayEntries(), idx, picker.lastLanding(t))
	}
}

func TestWheel_TargetedSpinWeighted(t *testing.T) {
	w, picker, _ := newTestWheel(t, Settings{SpinTime: 1}, "tiny", "huge", "mid")
	display := picker.DisplayEntries()
	display[0].Weight = 0.2
	display[1].Weight = 5
	w.SetTargetEntry(display[0])

	spinToEnd(t, w)

	inSector(t, display, 0, picker.lastLanding(t))
}

func TestWheel_PredeterminedSequence(t *testing.T) {
	w, picker, _ := newTestWheel(t, Settings{SpinTime: 0.5}, "a", "b", "c", "d", "e")
	display := picker.DisplayEntries()
	w.SetPredeterminedSequence([]int{2, 0})
	require.Equal(t, 2, w.SequenceRemaining())

	spinToEnd(t, w)
	inSector(t, display, 2, picker.lastLanding(t))
	assert.Equal(t, 1, w.SequenceRemaining())

	spinToEnd(t, w)
	inSector(t, display, 0, picker.lastLanding(t))
	assert.Zero(t, w.SequenceRemaining())

	w.Click(nil, nil)
	assert.Nil(t, w.Target(), "an exhausted sequence leaves no target behind")
	assert.Nil(t, w.spinTarget)
}

func TestWheel_SequenceCopiesInput(t *testing.T) {
	w, picker, _ := newTestWheel(t, Settings{SpinTime: 0.5}, "a", "b", "c")
	seq := []int{1}
	w.SetPredeterminedSequence(seq)
	seq[0] = 2

	w.Click(nil, nil)
	assert.Same(t, picker.DisplayEntries()[1], w.Target())
}

func TestWheel_SequenceOutOfRangeIsSkipped(t *testing.T) {
	w, _, _ := newTestWheel(t, Settings{SpinTime: 0.5}, "a", "b")
	w.SetPredeterminedSequence([]int{7})

	landed, _ := spinToEnd(t, w)

	assert.NotNil(t, landed)
	assert.Nil(t, w.Target())
	assert.Zero(t, w.SequenceRemaining())
}

func TestWheel_ExplicitTargetSurvivesSpins(t *testing.T) {
	w, picker, _ := newTestWheel(t, Settings{SpinTime: 0.5}, "a", "b", "c")
	target := picker.DisplayEntries()[1]
	w.SetTargetEntry(target)

	for range 3 {
		spinToEnd(t, w)
		inSector(t, picker.DisplayEntries(), 1, picker.lastLanding(t))
	}
	assert.Same(t, target, w.Target())
}

func TestWheel_TargetChangeMidSpinAppliesNextSpin(t *testing.T) {
	w, picker, _ := newTestWheel(t, Settings{SpinTime: 1}, "a", "b", "c", "d")
	display := picker.DisplayEntries()
	w.SetTargetIndex(1)

	w.Click(nil, nil)
	w.SetTargetIndex(3)
	for w.Phase() != PhasePostSpin {
		w.Tick()
	}
	inSector(t, display, 1, picker.lastLanding(t))

	spinToEnd(t, w)
	inSector(t, display, 3, picker.lastLanding(t))
}

func TestWheel_ClearTargetMidSpinKeepsLanding(t *testing.T) {
	w, picker, _ := newTestWheel(t, Settings{SpinTime: 1}, "a", "b", "c", "d")
	w.SetTargetIndex(2)

	w.Click(nil, nil)
	w.ClearTarget()
	for w.Phase() != PhasePostSpin {
		w.Tick()
	}

	inSector(t, picker.DisplayEntries(), 2, picker.lastLanding(t))
	assert.Nil(t, w.Target())
}

func TestWheel_TargetWithNaNWeightKeepsAngleInRange(t *testing.T) {
	w, _, _ := newTestWheel(t, Settings{SpinTime: 0.5}, "a", "b")
	display := w.DisplayEntries()
	display[1].Weight = math.NaN()
	w.SetTargetEntry(display[1])

	w.Click(nil, nil)

	assert.False(t, math.IsNaN(w.Angle()))
	assert.GreaterOrEqual(t, w.Angle(), 0.0)
	assert.Less(t, w.Angle(), 2*math.Pi)
	assert.Equal(t, 1, w.IndexAtPointer())
}

func TestWheel_TargetMissingFromWheel(t *testing.T) {
	w, _, _ := newTestWheel(t, Settings{SpinTime: 0.5}, "a", "b")
	w.SetTargetEntry(entry.New("ghost"))

	landed, _ := spinToEnd(t, w)

	require.NotNil(t, landed)
	assert.NotEqual(t, "ghost", landed.Text)
}

func TestWheel_ExactLandingStopsOnTarget(t *testing.T) {
	labels := []string{"a", "b", "c", "d", "e", "f"}
	for _, spinTime := range []float64{0.5, 1, 4, 10} {
		for _, slow := range []bool{false, true} {
			w, picker, _ := newTestWheel(t, Settings{SpinTime: spinTime, SlowSpin: slow, ExactLanding: true}, labels...)
			display := picker.DisplayEntries()

			for _, idx := range []int{0, 3, 5} {
				w.SetTargetEntry(display[idx])
				landed, _ := spinToEnd(t, w)
				require.NotNil(t, landed)
				assert.Equal(t, labels[idx], landed.Text, "spinTime=%v slow=%v", spinTime, slow)
			}
		}
	}
}

func TestWheel_CappedProviderMovesWindow(t *testing.T) {
	labels := make([]string, 30)
	for i := range labels {
		labels[i] = string(rune('A' + i%26)) + string(rune('a'+i/26))
	}
	w, picker, _ := newTestWheel(t, Settings{SpinTime: 0.5})
	entries := labeled(labels...)

	windows := map[string]bool{}
	for range 6 {
		w.SetEntries(entries, 5, true)
		require.Len(t, picker.DisplayEntries(), 5)
		windows[picker.DisplayEntries()[0].Text] = true

		before := slices.Clone(picker.DisplayEntries())
		spinToEnd(t, w)
		assert.Equal(t, before, picker.DisplayEntries(), "display list is stable during a spin")
	}

	assert.Greater(t, len(windows), 1, "the window should move between spins")
}
