package wheel

import "math"

// Phase identifies which part of the spin lifecycle the wheel is in.
type Phase int

const (
	PhaseIdleDemo Phase = iota
	PhaseAccelerating
	PhaseDecelerating
	PhasePostSpin
)

func (p Phase) String() string {
	switch p {
	case PhaseIdleDemo:
		return "idle-demo"
	case PhaseAccelerating:
		return "accelerating"
	case PhaseDecelerating:
		return "decelerating"
	case PhasePostSpin:
		return "post-spin"
	default:
		return "unknown"
	}
}

const (
	// Speeds are radians per tick.
	demoSpeed = 0.005
	stopSpeed = 0.00015

	// Accelerations are radians per tick per tick.
	normalAcceleration = 0.01
	slowAcceleration   = 0.001

	maxAccelerationTicks = 60
)

// spinState is the part of the controller a phase may read or change.
// The controller builds one per call, so phases never hold on to it.
type spinState struct {
	rot    *Rotation
	timing Timing
	slow   bool

	// land teleports the wheel to the resolved landing angle.
	land func()
	// done reports the entry under the pointer to the spin-done callback.
	done func()
}

// phase is one state of the spin lifecycle. tick and click return the
// phase to switch to, or nil to stay. enter runs once, right after the
// controller installs the phase.
type phase interface {
	kind() Phase
	enter(s *spinState)
	tick(s *spinState) phase
	click(s *spinState) phase
	isSpinning() bool
	drawThisFrame() bool
}

type idleDemo struct{}

func (*idleDemo) kind() Phase            { return PhaseIdleDemo }
func (*idleDemo) enter(s *spinState)     { s.rot.Speed = demoSpeed }
func (*idleDemo) tick(*spinState) phase  { return nil }
func (*idleDemo) click(*spinState) phase { return &accelerating{} }
func (*idleDemo) isSpinning() bool       { return false }
func (*idleDemo) drawThisFrame() bool    { return true }

type accelerating struct {
	age    int
	maxAge float64
}

func (*accelerating) kind() Phase { return PhaseAccelerating }

func (a *accelerating) enter(s *spinState) {
	a.age = 0
	a.maxAge = s.timing.Accelerating
}

func (a *accelerating) tick(s *spinState) phase {
	rate := normalAcceleration
	if s.slow {
		rate = slowAcceleration
	}
	s.rot.Speed += rate
	a.age++
	// >= here and > in decelerating keep a spin at round(spinTime*60) ticks.
	if float64(a.age) >= a.maxAge {
		s.land()
		return &decelerating{}
	}
	return nil
}

func (*accelerating) click(*spinState) phase { return nil }
func (*accelerating) isSpinning() bool       { return true }
func (*accelerating) drawThisFrame() bool    { return true }

type decelerating struct {
	age    int
	maxAge float64
	decay  float64
}

func (*decelerating) kind() Phase { return PhaseDecelerating }

// enter picks the per-tick factor that takes the entry speed down to
// stopSpeed in exactly maxAge ticks.
func (d *decelerating) enter(s *spinState) {
	d.age = 0
	d.maxAge = s.timing.Decelerating
	d.decay = decayFactor(s.rot.Speed, stopSpeed, d.maxAge)
}

func (d *decelerating) tick(s *spinState) phase {
	s.rot.Speed *= d.decay
	d.age++
	if float64(d.age) > d.maxAge {
		return &postSpin{}
	}
	return nil
}

func (*decelerating) click(*spinState) phase { return nil }
func (*decelerating) isSpinning() bool       { return true }
func (*decelerating) drawThisFrame() bool    { return true }

type postSpin struct{}

func (*postSpin) kind() Phase { return PhasePostSpin }

func (*postSpin) enter(s *spinState) {
	s.rot.Speed = 0
	s.done()
}

func (*postSpin) tick(*spinState) phase  { return nil }
func (*postSpin) click(*spinState) phase { return &accelerating{} }
func (*postSpin) isSpinning() bool       { return false }
func (*postSpin) drawThisFrame() bool    { return true }

// decayFactor returns d such that start·dⁿ = stop for n = ticks.
// Degenerate inputs stop the wheel on the first tick.
func decayFactor(start, stop, ticks float64) float64 {
	if ticks <= 0 || start <= 0 {
		return 0
	}
	return math.Exp(math.Log(stop/start) / ticks)
}

// decelerationTravel returns how far the wheel turns between leaving the
// accelerating phase at speed v and stopping. The tick that switches phases
// still advances at v; after that each tick advances at the decayed speed
// until the tick that enters post-spin, which advances nothing.
func decelerationTravel(v, ticks float64) float64 {
	d := decayFactor(v, stopSpeed, ticks)
	travel, step := v, v
	for range int(math.Floor(max(ticks, 0))) {
		step *= d
		travel += step
	}
	return travel
}
