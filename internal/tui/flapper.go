package tui

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"wheelspin/internal/util"
	"wheelspin/internal/wheel"
)

const (
	flapperFrequency = 12.0
	flapperDamping   = 0.3

	// Velocities are columns per second. Labels pass under the pointer from
	// right to left, so each peg knocks the flapper to the left.
	flapperKick   = -45.0
	flapperMaxVel = 90.0
	maxFlap       = 2
)

// Flapper is the pointer tab at the top of the wheel. Every entry change
// kicks it aside and a spring pulls it back to rest.
type Flapper struct {
	spring  harmonica.Spring
	pos     float64
	vel     float64
	settled bool
}

// NewFlapper creates a flapper at rest, stepping at the wheel's tick rate.
func NewFlapper() Flapper {
	return Flapper{
		spring:  harmonica.NewSpring(harmonica.FPS(wheel.TicksPerSecond), flapperFrequency, flapperDamping),
		settled: true,
	}
}

// Kick knocks the flapper aside.
func (f *Flapper) Kick() {
	f.vel = util.Clamp(f.vel+flapperKick, -flapperMaxVel, flapperMaxVel)
	f.settled = false
}

// Tick advances the spring one frame. Returns true while still moving.
func (f *Flapper) Tick() bool {
	if f.settled {
		return false
	}

	f.pos, f.vel = f.spring.Update(f.pos, f.vel, 0)
	if math.Abs(f.pos) < 0.01 && math.Abs(f.vel) < 0.01 {
		f.pos, f.vel = 0, 0
		f.settled = true
	}
	return !f.settled
}

// Offset returns the flapper's displacement in whole columns.
func (f Flapper) Offset() int {
	return util.Clamp(int(math.Round(f.pos)), -maxFlap, maxFlap)
}

// Settled reports whether the flapper is at rest.
func (f Flapper) Settled() bool {
	return f.settled
}
