package motion

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

type segmentKind uint8

const (
	segSpring segmentKind = iota
	segHold
	segTween
	segFall
)

// Segment is one step of a Track's animation. Segments are plain values; a
// Track keeps the running state, so the same segment list can be replayed.
type Segment struct {
	kind     segmentKind
	target   float64
	spring   SpringConfig
	duration float64 // seconds
	ease     Easing
	gravity  float64
}

// SpringTo springs toward target and finishes once settled.
func SpringTo(target float64, cfg SpringConfig) Segment {
	return Segment{kind: segSpring, target: target, spring: cfg}
}

// Hold keeps the value still for d.
func Hold(d time.Duration) Segment {
	return Segment{kind: segHold, duration: d.Seconds()}
}

// TweenTo moves to target over d along the easing curve. A nil easing is linear.
func TweenTo(target float64, d time.Duration, ease Easing) Segment {
	if ease == nil {
		ease = Linear
	}
	return Segment{kind: segTween, target: target, duration: d.Seconds(), ease: ease}
}

// FallTo accelerates the value by gravity (units/s²) until it reaches floor.
// Gravity must be positive; the fall always moves toward larger values.
func FallTo(floor, gravity float64) Segment {
	return Segment{kind: segFall, target: floor, gravity: gravity}
}

// Track is a scalar animated by a sequence of segments. Each segment starts
// from the live value, so restarting a track mid-flight never jumps.
type Track struct {
	s        Scalar
	tol      Tolerance
	segments []Segment
	index    int
	elapsed  float64
	from     float64
}

// NewTrack returns a track resting at v. tol decides when spring segments end.
func NewTrack(v float64, tol Tolerance) *Track {
	return &Track{s: At(v), tol: tol}
}

// Value returns the current value.
func (t *Track) Value() float64 { return t.s.Value }

// Scalar returns the full scalar state.
func (t *Track) Scalar() Scalar { return t.s }

// Active reports whether segments remain to be played.
func (t *Track) Active() bool { return t.index < len(t.segments) }

// Set snaps the track onto v and drops any queued segments.
func (t *Track) Set(v float64) {
	t.s.Snap(v)
	t.segments = nil
	t.index = 0
}

// Play replaces the queued segments and starts them from the live value and
// velocity.
func (t *Track) Play(segments ...Segment) {
	t.segments = append(t.segments[:0:0], segments...)
	t.index = 0
	t.begin()
}

// Tick advances the track by dt seconds and reports whether it is still active.
func (t *Track) Tick(dt float64) bool {
	if !finite(dt) || dt <= 0 {
		return t.Active()
	}
	for dt > 0 && t.Active() {
		var done bool
		dt, done = t.advance(dt)
		if !done {
			break
		}
		t.index++
		t.begin()
	}
	return t.Active()
}

func (t *Track) begin() {
	t.elapsed = 0
	t.from = t.s.Value
	if !t.Active() {
		return
	}
	seg := t.segments[t.index]
	switch seg.kind {
	case segSpring:
		t.s.Target = seg.target
	case segHold:
		t.s.Velocity = 0
	case segTween, segFall:
		t.s.Target = seg.target
	}
}

// advance runs the current segment for up to dt seconds. It returns the unused
// part of dt and whether the segment finished.
func (t *Track) advance(dt float64) (float64, bool) {
	seg := t.segments[t.index]
	switch seg.kind {
	case segSpring:
		t.s = Step(t.s, seg.target, seg.spring, dt)
		if !seg.spring.Valid() || Settled(t.s, seg.target, t.tol) {
			t.s.Snap(seg.target)
			return 0, true
		}
		return 0, false

	case segHold:
		t.elapsed += dt
		if t.elapsed < seg.duration {
			return 0, false
		}
		return t.elapsed - seg.duration, true

	case segTween:
		t.elapsed += dt
		if seg.duration <= 0 || t.elapsed >= seg.duration {
			left := t.elapsed - seg.duration
			t.s.Snap(seg.target)
			if left < 0 {
				left = 0
			}
			return left, true
		}
		prev := t.s.Value
		p := seg.ease(t.elapsed / seg.duration)
		t.s.Value = t.from + (seg.target-t.from)*p
		t.s.Velocity = (t.s.Value - prev) / dt
		return 0, false

	case segFall:
		if !finite(seg.gravity) || seg.gravity <= 0 || t.s.Value >= seg.target {
			t.s.Snap(seg.target)
			return 0, true
		}
		p := harmonica.NewProjectile(dt,
			harmonica.Point{Y: t.s.Value},
			harmonica.Vector{Y: t.s.Velocity},
			harmonica.Vector{Y: seg.gravity},
		)
		pos := p.Update()
		if !finite(pos.Y) {
			t.s.Snap(seg.target)
			return 0, true
		}
		t.s.Value = pos.Y
		t.s.Velocity = p.Velocity().Y
		if t.s.Value >= seg.target {
			t.s.Snap(seg.target)
			return 0, true
		}
		return 0, false
	}
	return dt, true
}
