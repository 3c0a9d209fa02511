package gesture

import (
	"math"
	"time"
)

// Drag recognizes pan gestures. OnStart fires once the pointer has moved more
// than MinDistance from the press point; OnUpdate then receives the translation
// from the press point for every move, in the order received; OnEnd receives
// the release velocity in cells per second.
type Drag struct {
	MinDistance float64
	// HitTest, when set, decides whether a press at (x, y) may start a drag.
	HitTest func(x, y float64) bool

	OnStart  func()
	OnUpdate func(dx, dy float64)
	OnEnd    func(vx, vy float64)

	tracker VelocityTracker

	pressed        bool
	active         bool
	startX, startY float64
}

// NewDrag returns a drag recognizer using the given velocity window.
func NewDrag(window time.Duration) *Drag {
	d := &Drag{}
	d.tracker.Window = window
	return d
}

// Active reports whether a drag has started and not yet ended.
func (d *Drag) Active() bool { return d.active }

// Handle feeds one pointer event to the recognizer.
func (d *Drag) Handle(ev Event) {
	switch ev.Type {
	case Down:
		// The previous release was lost; end that drag at rest.
		if d.active {
			d.active = false
			if d.OnEnd != nil {
				d.OnEnd(0, 0)
			}
		}
		if d.HitTest != nil && !d.HitTest(ev.X, ev.Y) {
			d.pressed = false
			return
		}
		d.pressed = true
		d.active = false
		d.startX, d.startY = ev.X, ev.Y
		d.tracker.Reset()
		d.tracker.Add(ev.X, ev.Y, ev.TimestampMs)

	case Move:
		if !d.pressed {
			return
		}
		d.tracker.Add(ev.X, ev.Y, ev.TimestampMs)
		dx, dy := ev.X-d.startX, ev.Y-d.startY
		if !d.active {
			if math.Hypot(dx, dy) <= d.MinDistance {
				return
			}
			d.active = true
			if d.OnStart != nil {
				d.OnStart()
			}
		}
		if d.OnUpdate != nil {
			d.OnUpdate(dx, dy)
		}

	case Up:
		if !d.pressed {
			return
		}
		d.pressed = false
		if !d.active {
			return
		}
		d.active = false
		d.tracker.Add(ev.X, ev.Y, ev.TimestampMs)
		vx, vy := d.tracker.Velocity()
		if d.OnEnd != nil {
			d.OnEnd(vx, vy)
		}
	}
}
