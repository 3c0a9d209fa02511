package gesture

import "time"

// DefaultVelocityWindow is how far back the tracker looks when estimating
// release velocity.
const DefaultVelocityWindow = 100 * time.Millisecond

const historySize = 32

type sample struct {
	x, y float64
	t    int64 // ms
}

// samples is a fixed-size ring of the most recent pointer positions.
type samples struct {
	buf [historySize]sample
	w   int // write position
	n   int // current fill level
}

func (r *samples) add(s sample) {
	r.buf[r.w] = s
	r.w = (r.w + 1) % historySize
	if r.n < historySize {
		r.n++
	}
}

func (r *samples) reset() {
	r.w = 0
	r.n = 0
}

// recent returns samples no older than window before the newest one, oldest
// first.
func (r *samples) recent(window int64) []sample {
	if r.n == 0 {
		return nil
	}
	newest := r.buf[(r.w-1+historySize)%historySize]
	out := make([]sample, 0, r.n)
	start := (r.w - r.n + historySize) % historySize
	for i := range r.n {
		s := r.buf[(start+i)%historySize]
		if newest.t-s.t <= window {
			out = append(out, s)
		}
	}
	return out
}

// VelocityTracker estimates pointer velocity from recent samples.
type VelocityTracker struct {
	Window time.Duration
	ring   samples
}

// Add records a pointer position.
func (v *VelocityTracker) Add(x, y float64, timestampMs int64) {
	v.ring.add(sample{x: x, y: y, t: timestampMs})
}

// Reset forgets all samples.
func (v *VelocityTracker) Reset() { v.ring.reset() }

// Velocity returns the least-squares slope of position over time for the
// samples inside the window, in cells per second. Fewer than two samples, or
// samples that all share one timestamp, give zero.
func (v *VelocityTracker) Velocity() (vx, vy float64) {
	window := v.Window
	if window <= 0 {
		window = DefaultVelocityWindow
	}
	pts := v.ring.recent(window.Milliseconds())
	if len(pts) < 2 {
		return 0, 0
	}

	t0 := pts[0].t
	var sumT, sumX, sumY float64
	for _, p := range pts {
		sumT += float64(p.t - t0)
		sumX += p.x
		sumY += p.y
	}
	n := float64(len(pts))
	meanT, meanX, meanY := sumT/n, sumX/n, sumY/n

	var covX, covY, varT float64
	for _, p := range pts {
		dt := float64(p.t-t0) - meanT
		covX += dt * (p.x - meanX)
		covY += dt * (p.y - meanY)
		varT += dt * dt
	}
	if varT == 0 {
		return 0, 0
	}
	// Slopes are per millisecond.
	return covX / varT * 1000, covY / varT * 1000
}
