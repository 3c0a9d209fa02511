// Package interaction composes a spring-driven scalar with drag input and a
// snap policy: Idle, then Dragging under the finger, then Settling on a spring
// toward the chosen rest position.
package interaction

import (
	"fmt"
	"math"

	"github.com/olivier-w/springdeck/internal/motion"
)

// Phase of a controller.
type Phase uint8

const (
	Idle Phase = iota
	Dragging
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// SessionPhase is the phase of one gesture session.
type SessionPhase uint8

const (
	SessionIdle SessionPhase = iota
	SessionActive
	SessionSettling
)

// Session records one drag from press to rest.
type Session struct {
	StartValue    float64
	StartVelocity float64
	Delta         float64
	Velocity      float64
	Phase         SessionPhase
}

// Options configure a Controller.
type Options struct {
	Min, Max  float64
	Spring    motion.SpringConfig
	Tolerance motion.Tolerance
	Policy    SnapPolicy
	// ClampSpring keeps the settling spring inside [Min, Max]; an overshoot
	// stops at the bound.
	ClampSpring bool
}

// Controller drives one scalar. It is used from a single goroutine.
type Controller struct {
	opts    Options
	s       motion.Scalar
	phase   Phase
	session *Session
}

// New returns a controller resting at initial, clamped to the range.
func New(initial float64, opts Options) *Controller {
	if opts.Tolerance == (motion.Tolerance{}) {
		opts.Tolerance = motion.DefaultTolerance
	}
	c := &Controller{opts: opts}
	c.s = motion.At(c.clamp(initial))
	return c
}

// Value is the live value.
func (c *Controller) Value() float64 { return c.s.Value }

// Velocity is the live velocity.
func (c *Controller) Velocity() float64 { return c.s.Velocity }

// Target is the value the controller is heading to.
func (c *Controller) Target() float64 { return c.s.Target }

// Phase is the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Session returns the gesture session, or nil when none is in progress.
func (c *Controller) Session() *Session { return c.session }

// SetRange updates the valid range and policy, for example after a resize.
// A controller at rest moves onto the policy's pick for its current value. A
// settling controller keeps its velocity but heads for the policy's pick for
// its clamped target, so it always comes to rest inside the range. Callers
// that know the equivalent rest position under the new range can follow up
// with AnimateTo.
func (c *Controller) SetRange(min, max float64, policy SnapPolicy) {
	c.opts.Min, c.opts.Max = min, max
	c.opts.Policy = policy
	switch c.phase {
	case Idle:
		c.s.Snap(c.pick(c.s.Value))
	case Dragging:
		v := c.clamp(c.s.Value)
		c.s.Value, c.s.Target = v, v
	case Settling:
		c.s.Value = c.clamp(c.s.Value)
		c.s.Target = c.pick(c.s.Target)
	}
}

// pick is the policy's rest position for v, inside the range.
func (c *Controller) pick(v float64) float64 {
	v = c.clamp(v)
	if c.opts.Policy != nil {
		v = c.clamp(c.opts.Policy.Snap(v, 0))
	}
	return v
}

// Snap places the controller at v with no animation.
func (c *Controller) Snap(v float64) {
	c.s.Snap(c.clamp(v))
	c.phase = Idle
	c.session = nil
}

// BeginDrag captures the live value, possibly mid-spring, as the drag baseline.
// The value itself does not move.
func (c *Controller) BeginDrag() {
	c.session = &Session{
		StartValue:    c.s.Value,
		StartVelocity: c.s.Velocity,
		Phase:         SessionActive,
	}
	c.s.Velocity = 0
	c.s.Target = c.s.Value
	c.phase = Dragging
}

// DragBy moves the value to the baseline plus delta, clamped to the range.
func (c *Controller) DragBy(delta float64) {
	if c.phase != Dragging || c.session == nil || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	c.session.Delta = delta
	v := c.clamp(c.session.StartValue + delta)
	c.s.Value = v
	c.s.Target = v
}

// Release ends the drag. The policy chooses the rest position and the release
// velocity is handed to the spring.
func (c *Controller) Release(velocity float64) {
	if c.phase != Dragging {
		return
	}
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		velocity = 0
	}
	target := c.s.Value
	if c.opts.Policy != nil {
		target = c.clamp(c.opts.Policy.Snap(c.s.Value, velocity))
	}
	if c.session != nil {
		c.session.Velocity = velocity
		c.session.Phase = SessionSettling
	}
	c.s.Velocity = velocity
	c.s.Target = target
	c.phase = Settling
}

// AnimateTo springs toward target without a drag.
func (c *Controller) AnimateTo(target, velocity float64) {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return
	}
	if !math.IsNaN(velocity) && !math.IsInf(velocity, 0) {
		c.s.Velocity = velocity
	}
	c.s.Target = c.clamp(target)
	c.phase = Settling
	c.session = nil
}

// Tick advances the spring by dt seconds and reports whether the value is
// still moving.
func (c *Controller) Tick(dt float64) bool {
	if c.phase != Settling {
		return false
	}
	var moving bool
	c.s, moving = motion.Advance(c.s, c.opts.Spring, c.opts.Tolerance, dt)
	if c.opts.ClampSpring {
		if v := c.clamp(c.s.Value); v != c.s.Value {
			c.s.Value = v
			c.s.Velocity = 0
		}
	}
	if !moving {
		c.phase = Idle
		c.session = nil
	}
	return moving
}

func (c *Controller) clamp(v float64) float64 {
	return clamp(v, c.opts.Min, c.opts.Max)
}
