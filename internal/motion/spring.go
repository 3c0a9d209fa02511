// Package motion drives animated scalars: a damped spring integrator and the
// segment sequencer built on top of it.
package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// DefaultEpsilon is the default settle threshold for both value and velocity.
const DefaultEpsilon = 0.001

// Scalar is a single animated value. Value and Velocity are always finite.
type Scalar struct {
	Value    float64
	Velocity float64
	Target   float64
}

// At returns a scalar resting at v.
func At(v float64) Scalar {
	return Scalar{Value: v, Target: v}
}

// Snap places the scalar on v with no motion.
func (s *Scalar) Snap(v float64) {
	if !finite(v) {
		return
	}
	s.Value = v
	s.Velocity = 0
	s.Target = v
}

// SpringConfig holds the physical constants of a spring. Values are passed per
// call and never stored on the scalar.
type SpringConfig struct {
	Damping   float64 `yaml:"damping"`
	Stiffness float64 `yaml:"stiffness"`
	Mass      float64 `yaml:"mass"`
}

// DefaultSpring matches the default spring of the animation library the demos
// were designed against: damping 10, stiffness 100, mass 1.
var DefaultSpring = SpringConfig{Damping: 10, Stiffness: 100, Mass: 1}

// Valid reports whether every constant is finite and positive.
func (c SpringConfig) Valid() bool {
	return finite(c.Damping) && finite(c.Stiffness) && finite(c.Mass) &&
		c.Damping > 0 && c.Stiffness > 0 && c.Mass > 0
}

// Ratio is the damping ratio. 1 is critical damping.
func (c SpringConfig) Ratio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// AngularFrequency is the undamped angular frequency in radians per second.
func (c SpringConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

// Tolerance decides when a spring counts as settled.
type Tolerance struct {
	Value    float64 `yaml:"value_epsilon"`
	Velocity float64 `yaml:"velocity_epsilon"`
}

// DefaultTolerance settles within DefaultEpsilon on both axes.
var DefaultTolerance = Tolerance{Value: DefaultEpsilon, Velocity: DefaultEpsilon}

// Step advances s one frame of dt seconds toward target. It accepts the scalar's
// current velocity as the initial condition, so a drag can be released into the
// spring without losing momentum. Degenerate input leaves s unchanged.
func Step(s Scalar, target float64, cfg SpringConfig, dt float64) Scalar {
	if !finite(dt) || dt <= 0 || !cfg.Valid() || !finite(target) {
		return s
	}
	spring := harmonica.NewSpring(dt, cfg.AngularFrequency(), cfg.Ratio())
	pos, vel := spring.Update(s.Value, s.Velocity, target)
	if !finite(pos) || !finite(vel) {
		return s
	}
	return Scalar{Value: pos, Velocity: vel, Target: target}
}

// Settled reports whether s is at rest on target within tol.
func Settled(s Scalar, target float64, tol Tolerance) bool {
	return math.Abs(s.Value-target) < tol.Value && math.Abs(s.Velocity) < tol.Velocity
}

// Advance steps s toward s.Target and lands it exactly on the target once it
// settles. The bool result is false when the scalar is at rest.
func Advance(s Scalar, cfg SpringConfig, tol Tolerance, dt float64) (Scalar, bool) {
	if Settled(s, s.Target, tol) {
		s.Snap(s.Target)
		return s, false
	}
	next := Step(s, s.Target, cfg, dt)
	if Settled(next, next.Target, tol) {
		next.Snap(next.Target)
		return next, false
	}
	return next, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
