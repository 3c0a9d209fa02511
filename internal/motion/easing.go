package motion

import "math"

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return clamp01(t) }

// Ease is the CSS "ease" curve, cubic-bezier(0.25, 0.1, 0.25, 1).
var Ease = CubicBezier(0.25, 0.1, 0.25, 1)

// CubicBezier returns the easing for a CSS cubic-bezier(x1, y1, x2, y2) timing
// function. x1 and x2 are clamped to [0,1] so the curve stays a function of t.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	x1 = clamp01(x1)
	x2 = clamp01(x2)

	// Polynomial coefficients for B(u) = ((a*u + b)*u + c)*u.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(u float64) float64 { return ((ax*u+bx)*u + cx) * u }
	sampleY := func(u float64) float64 { return ((ay*u+by)*u + cy) * u }
	slopeX := func(u float64) float64 { return (3*ax*u+2*bx)*u + cx }

	solve := func(x float64) float64 {
		u := x
		for range 8 {
			err := sampleX(u) - x
			if math.Abs(err) < 1e-7 {
				return u
			}
			d := slopeX(u)
			if math.Abs(d) < 1e-6 {
				break
			}
			u -= err / d
		}

		// Newton stalled; fall back to bisection.
		lo, hi := 0.0, 1.0
		u = x
		for range 40 {
			v := sampleX(u)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2
		}
		return u
	}

	return func(t float64) float64 {
		t = clamp01(t)
		if t == 0 || t == 1 {
			return t
		}
		return sampleY(solve(t))
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
