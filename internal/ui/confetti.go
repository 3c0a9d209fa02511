package ui

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/olivier-w/springdeck/internal/catalog"
	"github.com/olivier-w/springdeck/internal/config"
	"github.com/olivier-w/springdeck/internal/gesture"
	"github.com/olivier-w/springdeck/internal/motion"
	"github.com/olivier-w/springdeck/internal/render"
	"github.com/olivier-w/springdeck/internal/sound"
	"github.com/olivier-w/springdeck/internal/util"
)

// fadeOut is how long a piece takes to fade at the end of a burst.
const fadeOut = 200 * time.Millisecond

// piece is one confetti particle. Positions are offsets from the launch point.
type piece struct {
	originX  float64
	color    render.RGB
	x        *motion.Track
	y        *motion.Track
	scale    *motion.Track
	rotation *motion.Track
	opacity  *motion.Track
}

func (p *piece) tick(dt float64) bool {
	active := false
	for _, t := range []*motion.Track{p.x, p.y, p.scale, p.rotation, p.opacity} {
		if t.Tick(dt) {
			active = true
		}
	}
	return active
}

// confetti fires a burst of pieces from a party-popper button.
type confetti struct {
	cfg     config.Confetti
	tol     motion.Tolerance
	title   string
	button  string
	palette []render.RGB
	rng     *rand.Rand
	cues    *sound.Cues
	tap     *gesture.Tap
	pieces  []*piece
	active  bool
	bursts  int
	elapsed float64
	width   int
	height  int
}

func newConfetti(e env) *confetti {
	c := &confetti{
		cfg:     e.cfg.Confetti,
		tol:     e.cfg.Sequence,
		title:   e.title(catalog.Confetti),
		button:  e.cat.Confetti.Button,
		palette: e.cat.Palette(),
		rng:     e.rng,
		cues:    e.cues,
		tap:     e.tapRecognizer(),
	}
	c.tap.HitTest = func(x, y float64) bool { return c.buttonRect().contains(x, y) }
	c.tap.OnTap = func(int, float64, float64) { c.burst() }
	return c
}

func (c *confetti) buttonRect() rect {
	w := runewidth.StringWidth(c.button) + 6
	return rect{x: (c.width - w) / 2, y: (c.height - 3) / 2, w: w, h: 3}
}

// burst replaces any pieces in flight with a fresh set.
func (c *confetti) burst() {
	h := float64(c.height)
	dur := c.cfg.Duration
	half := dur / 2
	c.pieces = make([]*piece, c.cfg.Count)
	for i := range c.pieces {
		delay := time.Duration(c.rng.Float64() * float64(c.cfg.DelayMax))
		rot := c.rng.Float64() * 360
		drift := (c.rng.Float64() - 0.5) * float64(c.width) * 0.8
		p := &piece{
			originX:  (c.rng.Float64() - 0.5) * c.cfg.Spread,
			color:    c.palette[c.rng.IntN(len(c.palette))],
			x:        motion.NewTrack(0, c.tol),
			y:        motion.NewTrack(0, c.tol),
			scale:    motion.NewTrack(0, c.tol),
			rotation: motion.NewTrack(rot, c.tol),
			opacity:  motion.NewTrack(1, c.tol),
		}
		p.scale.Play(motion.Hold(delay), motion.SpringTo(1, c.cfg.PopSpring))
		p.y.Play(
			motion.Hold(delay),
			motion.SpringTo(-0.3*h, c.cfg.RiseSpring),
			motion.FallTo(h, c.cfg.Gravity),
		)
		p.x.Play(motion.Hold(delay), motion.TweenTo(drift, dur, motion.Ease))
		p.rotation.Play(
			motion.Hold(delay),
			motion.TweenTo(rot+180, half, motion.Ease),
			motion.TweenTo(rot+360, half, motion.Ease),
		)
		p.opacity.Play(motion.Hold(dur-fadeOut), motion.TweenTo(0, fadeOut, motion.Linear))
		c.pieces[i] = p
	}
	c.active = true
	c.bursts++
	c.elapsed = 0
	c.cues.Play(sound.Pop)
}

func (c *confetti) ID() string    { return catalog.Confetti }
func (c *confetti) Title() string { return c.title }

func (c *confetti) SetSize(width, height int) { c.width, c.height = width, height }

func (c *confetti) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case " ", "enter":
		c.burst()
	}
	return nil
}

func (c *confetti) HandlePointer(ev gesture.Event) tea.Cmd {
	c.tap.Handle(ev)
	return nil
}

func (c *confetti) Tick(dt float64) {
	if !c.active {
		return
	}
	c.elapsed += dt
	active := false
	for _, p := range c.pieces {
		if p.tick(dt) {
			active = true
		}
	}
	if !active {
		c.active = false
		c.pieces = nil
	}
}

func (c *confetti) Animating() bool { return c.active }

func (c *confetti) View() string {
	g := render.NewGrid(c.width, c.height, surface)
	b := c.buttonRect()
	g.Box(b.x, b.y, b.w, b.h, accent, accent)
	g.TextCenter(b.x+b.w/2, b.y+1, c.button, white)

	ox, oy := b.center()
	for _, p := range c.pieces {
		scale, opacity := p.scale.Value(), p.opacity.Value()
		if scale <= 0.05 || opacity <= 0.01 {
			continue
		}
		x := int(math.Round(ox + p.originX + p.x.Value()))
		y := int(math.Round(oy + p.y.Value()))
		glyph := render.ScaleGlyph(scale)
		if glyph == 0 {
			glyph = render.PieceGlyph(p.rotation.Value())
		}
		under := g.At(x, y).BG
		g.Set(x, y, glyph, render.Fade(p.color, under, opacity))
	}
	return g.String()
}

func (c *confetti) Keys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space/click", "pop")),
	}
}

func (c *confetti) Debug() string {
	live := 0
	for _, p := range c.pieces {
		if p.opacity.Value() > 0.01 {
			live++
		}
	}
	return fmt.Sprintf("bursts %d  pieces %d/%d  t %s", c.bursts, live, len(c.pieces),
		util.FormatDuration(time.Duration(c.elapsed*float64(time.Second))))
}
