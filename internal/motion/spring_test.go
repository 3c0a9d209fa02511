package motion

import (
	"math"
	"testing"
)

const frame = 1.0 / 60

func TestStepIgnoresDegenerateInput(t *testing.T) {
	s := Scalar{Value: 3, Velocity: -1, Target: 3}
	cases := []struct {
		name string
		cfg  SpringConfig
		dt   float64
	}{
		{"zero dt", DefaultSpring, 0},
		{"negative dt", DefaultSpring, -frame},
		{"nan dt", DefaultSpring, math.NaN()},
		{"inf dt", DefaultSpring, math.Inf(1)},
		{"zero damping", SpringConfig{Damping: 0, Stiffness: 100, Mass: 1}, frame},
		{"negative stiffness", SpringConfig{Damping: 10, Stiffness: -1, Mass: 1}, frame},
		{"zero mass", SpringConfig{Damping: 10, Stiffness: 100, Mass: 0}, frame},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Step(s, 10, tc.cfg, tc.dt)
			if got != s {
				t.Fatalf("expected scalar unchanged, got %+v", got)
			}
		})
	}
}

func TestStepIgnoresNonFiniteTarget(t *testing.T) {
	s := At(1)
	if got := Step(s, math.NaN(), DefaultSpring, frame); got != s {
		t.Fatalf("expected scalar unchanged, got %+v", got)
	}
}

func TestCriticalAndOverDampedNeverOvershoot(t *testing.T) {
	configs := []SpringConfig{
		{Damping: 20, Stiffness: 100, Mass: 1}, // ratio 1
		{Damping: 40, Stiffness: 100, Mass: 1}, // ratio 2
		{Damping: 30, Stiffness: 200, Mass: 1}, // ratio ~1.06
	}
	for _, cfg := range configs {
		if cfg.Ratio() < 1 {
			t.Fatalf("test config %+v is under-damped", cfg)
		}
		for _, target := range []float64{1, -25, 300} {
			s := At(0)
			for range 600 {
				s = Step(s, target, cfg, frame)
				over := (s.Value - target) * math.Copysign(1, target)
				if over > DefaultEpsilon {
					t.Fatalf("cfg %+v target %v: overshoot by %v", cfg, target, over)
				}
			}
			if !Settled(s, target, DefaultTolerance) {
				t.Fatalf("cfg %+v target %v: expected settled, got %+v", cfg, target, s)
			}
		}
	}
}

func TestUnderDampedOscillatesAndDecays(t *testing.T) {
	cfg := SpringConfig{Damping: 4, Stiffness: 300, Mass: 1}
	s := At(1)
	crossings := 0
	prevSign := math.Signbit(s.Value - 1.4)
	for range 600 {
		s = Step(s, 1.4, cfg, frame)
		sign := math.Signbit(s.Value - 1.4)
		if sign != prevSign {
			crossings++
			prevSign = sign
		}
	}
	if crossings < 2 {
		t.Fatalf("expected oscillation, got %d crossings", crossings)
	}
	if math.Abs(s.Value-1.4) > 0.01 {
		t.Fatalf("expected decay toward 1.4, got %v", s.Value)
	}
}

func TestStepKeepsReleaseVelocity(t *testing.T) {
	cfg := SpringConfig{Damping: 20, Stiffness: 200, Mass: 1}
	still := Step(At(0), 0, cfg, frame)
	moving := Step(Scalar{Value: 0, Velocity: -50}, 0, cfg, frame)
	if still.Value != 0 {
		t.Fatalf("expected resting spring to stay put, got %v", still.Value)
	}
	if moving.Value >= 0 {
		t.Fatalf("expected momentum to carry value negative, got %v", moving.Value)
	}
}

func TestAdvanceSnapsOntoTarget(t *testing.T) {
	s := Scalar{Value: 0, Target: 10}
	moving := true
	for i := 0; moving && i < 1000; i++ {
		s, moving = Advance(s, SpringConfig{Damping: 20, Stiffness: 100, Mass: 1}, DefaultTolerance, frame)
	}
	if moving {
		t.Fatal("expected spring to settle")
	}
	if s.Value != 10 || s.Velocity != 0 {
		t.Fatalf("expected exact rest at 10, got %+v", s)
	}
}

func TestRatio(t *testing.T) {
	if got := (SpringConfig{Damping: 20, Stiffness: 100, Mass: 1}).Ratio(); math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected ratio 1, got %v", got)
	}
}

func TestSnapRejectsNonFinite(t *testing.T) {
	s := At(2)
	s.Snap(math.Inf(-1))
	if s.Value != 2 {
		t.Fatalf("expected value 2, got %v", s.Value)
	}
}
