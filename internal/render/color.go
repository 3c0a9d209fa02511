package render

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Profile is the colour depth the terminal understands.
type Profile uint8

const (
	ProfileNone Profile = iota
	ProfileANSI16
	ProfileANSI256
	ProfileTrueColor
)

// RGB is a 24-bit colour.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	profileOnce sync.Once
	profile     Profile
	seqCache    sync.Map
)

// DetectProfile inspects NO_COLOR, COLORTERM and TERM once per process.
func DetectProfile() Profile {
	profileOnce.Do(func() {
		if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
			profile = ProfileNone
			return
		}
		term := strings.ToLower(os.Getenv("TERM"))
		colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
		switch {
		case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
			profile = ProfileTrueColor
		case strings.Contains(term, "256color"):
			profile = ProfileANSI256
		case term == "", term == "dumb":
			profile = ProfileNone
		default:
			profile = ProfileANSI16
		}
	})
	return profile
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid colour %q", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
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

// Lerp mixes a toward b by t in [0, 1].
func Lerp(a, b RGB, t float64) RGB {
	t = clamp01(t)
	return RGB{
		R: uint8(math.Round(float64(a.R) + (float64(b.R)-float64(a.R))*t)),
		G: uint8(math.Round(float64(a.G) + (float64(b.G)-float64(a.G))*t)),
		B: uint8(math.Round(float64(a.B) + (float64(b.B)-float64(a.B))*t)),
	}
}

// Fade draws c at the given opacity over bg.
func Fade(c, bg RGB, opacity float64) RGB {
	return Lerp(bg, c, opacity)
}

// Dim darkens c toward black by amount in [0, 1].
func Dim(c RGB, amount float64) RGB {
	return Lerp(c, RGB{}, amount)
}

// Dusk maps t in [0, 1] along a night-to-sunset ramp. It shades the
// procedural photo behind the heart.
func Dusk(t float64) RGB {
	t = clamp01(t)
	switch {
	case t < 0.35:
		return Lerp(RGB{R: 18, G: 24, B: 62}, RGB{R: 64, G: 70, B: 140}, t/0.35)
	case t < 0.7:
		return Lerp(RGB{R: 64, G: 70, B: 140}, RGB{R: 214, G: 112, B: 120}, (t-0.35)/0.35)
	default:
		return Lerp(RGB{R: 214, G: 112, B: 120}, RGB{R: 255, G: 196, B: 120}, (t-0.7)/0.3)
	}
}

// ansiState emits colour sequences only when the colour changes.
type ansiState struct {
	profile Profile
	fg, bg  uint32
}

const noColor = ^uint32(0)

func newANSIState(p Profile) ansiState {
	return ansiState{profile: p, fg: noColor, bg: noColor}
}

func colorKey(c RGB) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (s *ansiState) set(sb *strings.Builder, fg, bg RGB) {
	if s.profile == ProfileNone {
		return
	}
	if k := colorKey(bg); k != s.bg {
		sb.WriteString(colorSequence(s.profile, bg, true))
		s.bg = k
	}
	if k := colorKey(fg); k != s.fg {
		sb.WriteString(colorSequence(s.profile, fg, false))
		s.fg = k
	}
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == ProfileNone || (s.fg == noColor && s.bg == noColor) {
		return
	}
	sb.WriteString("\x1b[0m")
	s.fg, s.bg = noColor, noColor
}

var ansi16 = []RGB{
	{R: 0, G: 0, B: 0},
	{R: 205, G: 49, B: 49},
	{R: 13, G: 188, B: 121},
	{R: 229, G: 229, B: 16},
	{R: 36, G: 114, B: 200},
	{R: 188, G: 63, B: 188},
	{R: 17, G: 168, B: 205},
	{R: 229, G: 229, B: 229},
}

func colorSequence(p Profile, c RGB, background bool) string {
	key := uint64(p)<<32 | uint64(colorKey(c))
	if background {
		key |= 1 << 40
	}
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	base := 38
	if background {
		base = 48
	}
	var seq string
	switch p {
	case ProfileTrueColor:
		seq = fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", base, c.R, c.G, c.B)
	case ProfileANSI256:
		r := int(c.R) * 5 / 255
		g := int(c.G) * 5 / 255
		b := int(c.B) * 5 / 255
		seq = fmt.Sprintf("\x1b[%d;5;%dm", base, 16+36*r+6*g+b)
	case ProfileANSI16:
		best := 0
		bestDist := math.MaxFloat64
		for i, q := range ansi16 {
			dr := float64(c.R) - float64(q.R)
			dg := float64(c.G) - float64(q.G)
			db := float64(c.B) - float64(q.B)
			if d := dr*dr + dg*dg + db*db; d < bestDist {
				bestDist = d
				best = i
			}
		}
		seq = fmt.Sprintf("\x1b[%dm", base-8+best)
	}

	seqCache.Store(key, seq)
	return seq
}
