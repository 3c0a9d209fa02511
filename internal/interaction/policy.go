package interaction

import "math"

// DefaultVelocityThreshold is the release speed (cells/s) past which a flick
// closes a drawer regardless of where it is.
const DefaultVelocityThreshold = 20

// SnapPolicy picks the rest position after a drag is released.
type SnapPolicy interface {
	Snap(position, velocity float64) float64
}

// DrawerPolicy snaps a bottom drawer whose offset runs from 0 (open) to Height
// (closed). Positive velocity points toward closed. A fast enough flick wins
// over position.
type DrawerPolicy struct {
	Height            float64
	VelocityThreshold float64
}

// ShouldClose reports whether a release at position p with velocity v closes
// the drawer.
func (d DrawerPolicy) ShouldClose(p, v float64) bool {
	return v > d.VelocityThreshold || (v >= 0 && p > d.Height/2)
}

func (d DrawerPolicy) Snap(p, v float64) float64 {
	if d.ShouldClose(p, v) {
		return d.Height
	}
	return 0
}

// CarouselPolicy snaps a horizontal strip of Count items spaced Stride apart.
// The offset runs from 0 (first item) down to MaxScroll (last item). Velocity
// never changes the chosen item.
type CarouselPolicy struct {
	Stride float64
	Count  int
}

// MaxScroll is the most negative valid offset.
func (c CarouselPolicy) MaxScroll() float64 {
	if c.Count < 1 {
		return 0
	}
	return -float64(c.Count-1) * c.Stride
}

// Clamp limits an offset to [MaxScroll, 0].
func (c CarouselPolicy) Clamp(offset float64) float64 {
	return clamp(offset, c.MaxScroll(), 0)
}

// Index returns the item nearest to offset. Halves round up, as
// Math.round does.
func (c CarouselPolicy) Index(offset float64) int {
	if c.Count < 1 || c.Stride <= 0 || math.IsNaN(offset) {
		return 0
	}
	i := math.Floor(-offset/c.Stride + 0.5)
	if i < 0 {
		return 0
	}
	if i > float64(c.Count-1) {
		return c.Count - 1
	}
	return int(i)
}

// Offset returns the rest offset of item i.
func (c CarouselPolicy) Offset(i int) float64 {
	return -float64(i) * c.Stride
}

func (c CarouselPolicy) Snap(p, _ float64) float64 {
	return c.Offset(c.Index(p))
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
