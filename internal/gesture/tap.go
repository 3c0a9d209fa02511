package gesture

import (
	"math"
	"time"
)

// Tap defaults.
const (
	DefaultTapInterval = 300 * time.Millisecond
	DefaultTapRadius   = 2.0
)

// Tap recognizes sequences of Taps presses. Each tap after the first must
// start within MaxInterval of the previous release and within Radius of the
// first tap; otherwise the sequence restarts with that tap as tap one. When
// the count reaches Taps, OnTap fires once and the count resets.
type Tap struct {
	Taps        int
	MaxInterval time.Duration
	Radius      float64
	HitTest     func(x, y float64) bool

	OnTap func(count int, x, y float64)

	pressed        bool
	downX, downY   float64
	count          int
	firstX, firstY float64
	lastUpMs       int64
}

// NewTap returns a recognizer for n-tap sequences.
func NewTap(n int, interval time.Duration, radius float64) *Tap {
	return &Tap{Taps: n, MaxInterval: interval, Radius: radius}
}

// Count returns the number of taps in the pending sequence.
func (t *Tap) Count() int { return t.count }

func (t *Tap) taps() int {
	if t.Taps < 1 {
		return 1
	}
	return t.Taps
}

func (t *Tap) interval() int64 {
	if t.MaxInterval <= 0 {
		return DefaultTapInterval.Milliseconds()
	}
	return t.MaxInterval.Milliseconds()
}

func (t *Tap) radius() float64 {
	if t.Radius <= 0 {
		return DefaultTapRadius
	}
	return t.Radius
}

// Handle feeds one pointer event to the recognizer.
func (t *Tap) Handle(ev Event) {
	switch ev.Type {
	case Down:
		if t.HitTest != nil && !t.HitTest(ev.X, ev.Y) {
			t.pressed = false
			t.count = 0
			return
		}
		if t.count > 0 {
			late := ev.TimestampMs-t.lastUpMs > t.interval()
			far := math.Hypot(ev.X-t.firstX, ev.Y-t.firstY) > t.radius()
			if late || far {
				t.count = 0
			}
		}
		t.pressed = true
		t.downX, t.downY = ev.X, ev.Y

	case Move:
		if t.pressed && math.Hypot(ev.X-t.downX, ev.Y-t.downY) > t.radius() {
			t.pressed = false
			t.count = 0
		}

	case Up:
		if !t.pressed {
			return
		}
		t.pressed = false
		if math.Hypot(ev.X-t.downX, ev.Y-t.downY) > t.radius() {
			t.count = 0
			return
		}
		if t.count == 0 {
			t.firstX, t.firstY = t.downX, t.downY
		}
		t.count++
		t.lastUpMs = ev.TimestampMs
		if t.count >= t.taps() {
			n := t.count
			t.count = 0
			if t.OnTap != nil {
				t.OnTap(n, t.firstX, t.firstY)
			}
		}
	}
}
