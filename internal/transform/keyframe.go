// Package transform maps driven scalars to visual transforms through
// piecewise-linear keyframe tables.
package transform

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyKeyframes   = errors.New("keyframe map has no anchors")
	ErrLengthMismatch   = errors.New("keyframe inputs and outputs differ in length")
	ErrNonIncreasing    = errors.New("keyframe inputs must be strictly increasing")
	ErrNonFiniteAnchors = errors.New("keyframe anchors must be finite")
)

// KeyframeMap interpolates linearly between (input, output) anchors and clamps
// outside the input range. The zero value passes values through unchanged.
type KeyframeMap struct {
	in  []float64
	out []float64
}

// NewKeyframeMap validates and copies the anchors.
func NewKeyframeMap(inputs, outputs []float64) (KeyframeMap, error) {
	if len(inputs) == 0 {
		return KeyframeMap{}, ErrEmptyKeyframes
	}
	if len(inputs) != len(outputs) {
		return KeyframeMap{}, fmt.Errorf("%w: %d inputs, %d outputs", ErrLengthMismatch, len(inputs), len(outputs))
	}
	for i := range inputs {
		if !finite(inputs[i]) || !finite(outputs[i]) {
			return KeyframeMap{}, fmt.Errorf("%w: anchor %d", ErrNonFiniteAnchors, i)
		}
		if i > 0 && inputs[i] <= inputs[i-1] {
			return KeyframeMap{}, fmt.Errorf("%w: input %d (%v) after %v", ErrNonIncreasing, i, inputs[i], inputs[i-1])
		}
	}
	return KeyframeMap{
		in:  append([]float64(nil), inputs...),
		out: append([]float64(nil), outputs...),
	}, nil
}

// MustKeyframeMap is NewKeyframeMap for anchors known at compile time.
func MustKeyframeMap(inputs, outputs []float64) KeyframeMap {
	m, err := NewKeyframeMap(inputs, outputs)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of anchors.
func (m KeyframeMap) Len() int { return len(m.in) }

// Map evaluates the table at v.
func (m KeyframeMap) Map(v float64) float64 {
	n := len(m.in)
	if n == 0 {
		return v
	}
	if math.IsNaN(v) || v <= m.in[0] {
		return m.out[0]
	}
	if v >= m.in[n-1] {
		return m.out[n-1]
	}
	// Anchor tables are a handful of entries; a linear scan is enough.
	i := 1
	for v > m.in[i] {
		i++
	}
	lo, hi := m.in[i-1], m.in[i]
	t := (v - lo) / (hi - lo)
	return m.out[i-1] + (m.out[i]-m.out[i-1])*t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
