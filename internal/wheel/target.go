package wheel

import "slices"

// jitterSpread is the landing spread as a fraction of the sector width,
// i.e. up to 5% either side of the centre.
const jitterSpread = 0.1

// land resolves the landing position as the wheel leaves the accelerating
// phase.
func (w *Wheel) land() {
	if !w.setRandomPosition() || !w.settings.ExactLanding {
		return
	}
	travel := decelerationTravel(w.rot.Speed, w.StateTimeLengths().Decelerating)
	w.rot.Angle = normalizeAngle(w.rot.Angle - travel)
	w.log.Debug("compensated landing", "travel", travel, "angle", w.rot.Angle)
}

// setRandomPosition moves the wheel to its landing angle. With a target that
// is still on the wheel, that is the target's sector centre plus jitter;
// otherwise a uniformly random angle. Reports whether the target was used.
func (w *Wheel) setRandomPosition() bool {
	defer w.provider.SetRandomPosition()

	if w.spinTarget != nil {
		display := w.provider.DisplayEntries()
		if idx := slices.Index(display, w.spinTarget); idx >= 0 {
			w.rot.Angle = landingAngle(Sectors(display)[idx], w.rng.Float64())
			w.log.Debug("landing on target", "entry", w.spinTarget, "index", idx, "angle", w.rot.Angle)
			return true
		}
		w.log.Debug("target not on wheel, landing at random", "entry", w.spinTarget)
	}

	w.rot.Angle = normalizeAngle(w.rng.Float64() * fullTurn)
	return false
}

// landingAngle returns the sector centre offset by u ∈ [0, 1) mapped onto
// the jitter window.
func landingAngle(s Sector, u float64) float64 {
	return normalizeAngle(s.Center() + (u-0.5)*s.Width()*jitterSpread)
}
