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
	"github.com/olivier-w/springdeck/internal/util"
)

// Tile size at scale 1.
const (
	tileWidth  = 10
	tileHeight = 5
	tileGap    = 4
)

// scaleDemo bounces a row of icon tiles that share one scale value.
type scaleDemo struct {
	cfg    config.Scale
	title  string
	icons  []catalog.Item
	tap    *gesture.Tap
	scale  *motion.Track
	last   int
	width  int
	height int
}

func newScale(e env) *scaleDemo {
	s := &scaleDemo{
		cfg:   e.cfg.Scale,
		title: e.title(catalog.Scale),
		icons: e.cat.Scale.Icons,
		tap:   e.tapRecognizer(),
		scale: motion.NewTrack(1, e.cfg.Sequence),
		last:  -1,
	}
	s.tap.HitTest = func(x, y float64) bool { return s.tileAt(x, y) >= 0 }
	s.tap.OnTap = func(_ int, x, y float64) { s.bounce(s.tileAt(x, y)) }
	return s
}

// bounce runs the shared scale up to the peak and back to rest.
func (s *scaleDemo) bounce(tile int) {
	s.last = tile
	s.scale.Play(
		motion.SpringTo(s.cfg.Peak, s.cfg.UpSpring),
		motion.SpringTo(1, s.cfg.DownSpring),
	)
}

// tiles returns the resting hit box of every tile.
func (s *scaleDemo) tiles() []rect {
	n := len(s.icons)
	total := n*tileWidth + (n-1)*tileGap
	x := (s.width - total) / 2
	y := (s.height - tileHeight) / 2
	out := make([]rect, n)
	for i := range out {
		out[i] = rect{x: x + i*(tileWidth+tileGap), y: y, w: tileWidth, h: tileHeight}
	}
	return out
}

func (s *scaleDemo) tileAt(x, y float64) int {
	for i, r := range s.tiles() {
		if r.contains(x, y) {
			return i
		}
	}
	return -1
}

func (s *scaleDemo) ID() string    { return catalog.Scale }
func (s *scaleDemo) Title() string { return s.title }

func (s *scaleDemo) SetSize(width, height int) { s.width, s.height = width, height }

func (s *scaleDemo) HandleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	switch {
	case k == " " || k == "enter":
		s.bounce(s.last)
	case len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < len(s.icons):
		s.bounce(int(k[0] - '1'))
	}
	return nil
}

func (s *scaleDemo) HandlePointer(ev gesture.Event) tea.Cmd {
	s.tap.Handle(ev)
	return nil
}

func (s *scaleDemo) Tick(dt float64)  { s.scale.Tick(dt) }
func (s *scaleDemo) Animating() bool { return s.scale.Active() }

func (s *scaleDemo) View() string {
	g := render.NewGrid(s.width, s.height, surface)
	k := s.scale.Value()
	for i, r := range s.tiles() {
		cx, cy := r.center()
		w := int(math.Round(tileWidth * k))
		h := int(math.Round(tileHeight * k))
		if w < 2 || h < 2 {
			continue
		}
		x := int(math.Round(cx - float64(w)/2))
		y := int(math.Round(cy - float64(h)/2))
		border := edge
		if i == s.last {
			border = accent
		}
		g.Box(x, y, w, h, border, panel)

		icon := s.icons[i]
		g.TextCenter(int(cx), int(cy), icon.Glyph, catalog.Color(icon.Color))
		g.TextCenter(int(cx), r.y+r.h+1, icon.Label, muted)
	}
	return g.String()
}

func (s *scaleDemo) Keys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3/click", "bounce")),
	}
}

func (s *scaleDemo) Debug() string {
	sc := s.scale.Scalar()
	return fmt.Sprintf("scale %s v%s  tile %d", util.FormatSigned(sc.Value), util.FormatSigned(sc.Velocity), s.last+1)
}
