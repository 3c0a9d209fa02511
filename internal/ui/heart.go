package ui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/springdeck/internal/catalog"
	"github.com/olivier-w/springdeck/internal/config"
	"github.com/olivier-w/springdeck/internal/gesture"
	"github.com/olivier-w/springdeck/internal/motion"
	"github.com/olivier-w/springdeck/internal/render"
	"github.com/olivier-w/springdeck/internal/sound"
	"github.com/olivier-w/springdeck/internal/util"
)

// heartRadius is the heart's size at scale 1 as a fraction of the shorter
// body side, in braille dots.
const heartRadius = 0.2

// heart shows a heart wherever the photo is double-tapped.
type heart struct {
	cfg     config.Heart
	title   string
	hint    string
	color   render.RGB
	cues    *sound.Cues
	tap     *gesture.Tap
	scale   *motion.Track
	opacity *motion.Track
	x, y    float64
	likes   int
	width   int
	height  int
}

func newHeart(e env) *heart {
	h := &heart{
		cfg:     e.cfg.Heart,
		title:   e.title(catalog.Heart),
		hint:    e.cat.Heart.Hint,
		color:   catalog.Color(e.cat.Heart.Color),
		cues:    e.cues,
		tap:     gesture.NewTap(e.cfg.Heart.Taps, e.cfg.Gesture.TapInterval, e.cfg.Gesture.TapRadius),
		scale:   motion.NewTrack(0, e.cfg.Sequence),
		opacity: motion.NewTrack(0, e.cfg.Sequence),
	}
	h.tap.HitTest = func(x, y float64) bool {
		return x >= 0 && y >= 0 && x < float64(h.width) && y < float64(h.height)
	}
	h.tap.OnTap = func(_ int, x, y float64) { h.like(x, y) }
	return h
}

// like pops the heart at (x, y). A like during an animation restarts it from
// the live values.
func (h *heart) like(x, y float64) {
	h.x, h.y = x, y
	h.likes++
	h.scale.Play(
		motion.SpringTo(1, h.cfg.Spring),
		motion.Hold(h.cfg.Hold),
		motion.SpringTo(0, h.cfg.Spring),
	)
	h.opacity.Play(
		motion.SpringTo(1, h.cfg.FadeSpring),
		motion.Hold(h.cfg.Hold),
		motion.SpringTo(0, h.cfg.FadeSpring),
	)
	h.cues.Play(sound.Tap)
}

func (h *heart) ID() string    { return catalog.Heart }
func (h *heart) Title() string { return h.title }

func (h *heart) SetSize(width, height int) { h.width, h.height = width, height }

func (h *heart) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case " ", "enter":
		h.like(float64(h.width)/2, float64(h.height)/2)
	}
	return nil
}

func (h *heart) HandlePointer(ev gesture.Event) tea.Cmd {
	h.tap.Handle(ev)
	return nil
}

func (h *heart) Tick(dt float64) {
	h.scale.Tick(dt)
	h.opacity.Tick(dt)
}

func (h *heart) Animating() bool { return h.scale.Active() || h.opacity.Active() }

// photo is the procedural backdrop: a dusk sky over two ridges.
func photo(x, y, w, h int) render.RGB {
	fx := float64(x) / math.Max(1, float64(w))
	fy := float64(y) / math.Max(1, float64(h))
	ridge := 0.62 + 0.08*math.Sin(fx*7) + 0.04*math.Sin(fx*17+1)
	near := 0.78 + 0.06*math.Sin(fx*5+2)
	switch {
	case fy > near:
		return render.Dim(render.RGB{R: 30, G: 44, B: 52}, fy-near)
	case fy > ridge:
		return render.RGB{R: 52, G: 58, B: 92}
	default:
		return render.Dusk(1 - fy/ridge)
	}
}

func (h *heart) View() string {
	g := render.NewGrid(h.width, h.height, surface)
	for y := range h.height {
		for x := range h.width {
			g.SetBG(x, y, photo(x, y, h.width, h.height))
		}
	}
	if h.hint != "" && h.height > 1 {
		g.TextCenter(h.width/2, h.height-1, h.hint, render.Fade(white, surface, 0.7))
	}

	scale, opacity := h.scale.Value(), h.opacity.Value()
	if scale > 0 && opacity > 0.01 {
		c := render.NewCanvas(h.width, h.height)
		side := math.Min(float64(c.DotWidth()), float64(c.DotHeight()))
		c.DrawHeart(h.x*2, h.y*4, side*heartRadius*scale)
		under := photo(int(h.x), int(h.y), h.width, h.height)
		c.Blit(g, 0, 0, render.Fade(h.color, under, opacity))
	}
	return g.String()
}

func (h *heart) Keys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("double-click/space", "like")),
	}
}

func (h *heart) Debug() string {
	s := h.scale.Scalar()
	return fmt.Sprintf("scale %s v%s  opacity %s  taps %d/%d  likes %d  %s",
		util.FormatSigned(s.Value), util.FormatSigned(s.Velocity),
		util.FormatSigned(h.opacity.Value()), h.tap.Count(), h.cfg.Taps, h.likes, h.color.Hex())
}
