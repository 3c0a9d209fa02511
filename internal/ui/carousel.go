package ui

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/olivier-w/springdeck/internal/catalog"
	"github.com/olivier-w/springdeck/internal/config"
	"github.com/olivier-w/springdeck/internal/gesture"
	"github.com/olivier-w/springdeck/internal/interaction"
	"github.com/olivier-w/springdeck/internal/render"
	"github.com/olivier-w/springdeck/internal/transform"
	"github.com/olivier-w/springdeck/internal/util"
)

// carousel swipes through a strip of cards. The offset runs from 0 (first
// card centred) down to the policy's MaxScroll (last card centred).
type carousel struct {
	cfg    config.Carousel
	title  string
	cards  []catalog.Card
	ctrl   *interaction.Controller
	policy interaction.CarouselPolicy
	rigs   []transform.Rig
	drag   *gesture.Drag
	pages  paginator.Model
	cardW  int
	cardH  int
	width  int
	height int
}

func newCarousel(e env) *carousel {
	c := &carousel{
		cfg:   e.cfg.Carousel,
		title: e.title(catalog.Carousel),
		cards: e.cat.Carousel.Cards,
		drag:  e.dragRecognizer(),
	}
	c.ctrl = interaction.New(0, interaction.Options{
		Spring:      c.cfg.Spring,
		Tolerance:   e.cfg.Motion,
		ClampSpring: true,
	})

	c.pages = paginator.New()
	c.pages.Type = paginator.Dots
	c.pages.ActiveDot = activeDot
	c.pages.InactiveDot = inactiveDot
	c.pages.SetTotalPages(len(c.cards))

	c.drag.HitTest = func(x, y float64) bool {
		top := (c.height - c.cardH) / 2
		return y >= float64(top-2) && y < float64(top+c.cardH+2)
	}
	c.drag.OnStart = c.ctrl.BeginDrag
	c.drag.OnUpdate = func(dx, _ float64) { c.ctrl.DragBy(dx) }
	c.drag.OnEnd = func(vx, _ float64) {
		c.ctrl.Release(vx)
		log.Printf("carousel: released with %.1f cells/s, settling on card %d", vx, c.policy.Index(c.ctrl.Target())+1)
	}
	return c
}

func (c *carousel) ID() string    { return catalog.Carousel }
func (c *carousel) Title() string { return c.title }

// SetSize lays the strip out again and keeps the same card centred, or
// heading for the centre when it was settling.
func (c *carousel) SetSize(width, height int) {
	index := c.policy.Index(c.ctrl.Target())
	c.width, c.height = width, height

	c.cardW = int(float64(width) * 0.8)
	if c.cardW > c.cfg.MaxCardWidth {
		c.cardW = c.cfg.MaxCardWidth
	}
	if c.cardW < 8 {
		c.cardW = 8
	}
	c.cardH = height - 6
	if c.cardH > c.cardW/2+4 {
		c.cardH = c.cardW/2 + 4
	}
	if c.cardH < 5 {
		c.cardH = 5
	}

	stride := float64(c.cardW + c.cfg.Spacing)
	c.policy = interaction.CarouselPolicy{Stride: stride, Count: len(c.cards)}
	c.rigs = make([]transform.Rig, len(c.cards))
	for i := range c.rigs {
		pos := c.policy.Offset(i)
		in := []float64{pos - stride, pos, pos + stride}
		c.rigs[i] = transform.Rig{
			Scale:      transform.MustKeyframeMap(in, []float64{0.8, 1, 0.8}),
			Opacity:    transform.MustKeyframeMap(in, []float64{0.5, 1, 0.5}),
			TranslateY: transform.MustKeyframeMap(in, []float64{2, 0, 2}),
			Rotation:   transform.MustKeyframeMap(in, []float64{8, 0, -8}),
		}
	}
	c.ctrl.SetRange(c.policy.MaxScroll(), 0, c.policy)
	switch c.ctrl.Phase() {
	case interaction.Idle:
		c.ctrl.Snap(c.policy.Offset(index))
	case interaction.Settling:
		c.ctrl.AnimateTo(c.policy.Offset(index), c.ctrl.Velocity())
	}
}

// step settles on the card n places away from the one currently targeted.
func (c *carousel) step(n int) {
	i := c.policy.Index(c.ctrl.Target()) + n
	if i < 0 || i >= len(c.cards) {
		return
	}
	c.ctrl.AnimateTo(c.policy.Offset(i), c.ctrl.Velocity())
}

func (c *carousel) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		c.step(-1)
	case "right", "l":
		c.step(1)
	}
	return nil
}

func (c *carousel) HandlePointer(ev gesture.Event) tea.Cmd {
	c.drag.Handle(ev)
	return nil
}

func (c *carousel) Tick(dt float64)  { c.ctrl.Tick(dt) }
func (c *carousel) Animating() bool { return c.ctrl.Phase() == interaction.Settling }

// cardTransform evaluates card i's rig at the live offset.
func (c *carousel) cardTransform(i int) transform.Transform {
	x := c.ctrl.Value()
	t := c.rigs[i].Apply(x, transform.Identity())
	t.TranslateX = x - c.policy.Offset(i)
	return t
}

// View draws the strip above a row of pagination dots.
func (c *carousel) View() string {
	g := render.NewGrid(c.width, c.height-1, surface)

	// Nearest card last so it is drawn on top.
	order := make([]int, len(c.cards))
	for i := range order {
		order[i] = i
	}
	current := c.policy.Index(c.ctrl.Value())
	sort.SliceStable(order, func(a, b int) bool {
		return absInt(order[a]-current) > absInt(order[b]-current)
	})

	cx := float64(c.width) / 2
	cy := float64(c.height-1) / 2
	for _, i := range order {
		t := c.cardTransform(i)
		if !t.Visible() {
			continue
		}
		c.drawCard(g, c.cards[i], cx+t.TranslateX, cy+t.TranslateY, t)
	}

	c.pages.Page = c.policy.Index(c.ctrl.Target())
	dots := lipgloss.PlaceHorizontal(c.width, lipgloss.Center, c.pages.View())
	if c.height <= 1 {
		return dots
	}
	return g.String() + "\n" + dots
}

// drawCard draws a card centred on (x, y). Rotation is shown as a shear: each
// row shifts sideways in proportion to its distance from the centre row.
func (c *carousel) drawCard(g *render.Grid, card catalog.Card, x, y float64, t transform.Transform) {
	w := int(math.Round(float64(c.cardW) * t.ScaleX))
	h := int(math.Round(float64(c.cardH) * t.ScaleY))
	if w < 4 || h < 3 {
		return
	}
	left := x - float64(w)/2
	top := int(math.Round(y - float64(h)/2))
	shear := math.Tan(t.RotationDegrees*math.Pi/180) * 2

	body := render.Fade(panel, surface, t.Opacity)
	border := render.Fade(edge, surface, t.Opacity)
	art := render.Fade(catalog.Color(card.Color), surface, t.Opacity)
	text := render.Fade(ink, surface, t.Opacity)
	sub := render.Fade(muted, surface, t.Opacity)
	imageRows := h * 3 / 5

	mid := float64(h-1) / 2
	for r := range h {
		shift := int(math.Round(-(float64(r) - mid) * shear))
		x0 := int(math.Round(left)) + shift
		row := top + r
		switch r {
		case 0:
			g.FillRect(x0, row, w, 1, body)
			g.Set(x0, row, '╭', border)
			for col := x0 + 1; col < x0+w-1; col++ {
				g.Set(col, row, '─', border)
			}
			g.Set(x0+w-1, row, '╮', border)
		case h - 1:
			g.FillRect(x0, row, w, 1, body)
			g.Set(x0, row, '╰', border)
			for col := x0 + 1; col < x0+w-1; col++ {
				g.Set(col, row, '─', border)
			}
			g.Set(x0+w-1, row, '╯', border)
		default:
			fill := body
			if r < imageRows {
				fill = render.Lerp(art, render.Dim(art, 0.5), float64(r)/float64(imageRows))
			}
			g.FillRect(x0, row, w, 1, fill)
			g.Set(x0, row, '│', border)
			g.Set(x0+w-1, row, '│', border)
			inner := w - 4
			switch r {
			case imageRows:
				g.Text(x0+2, row, runewidth.Truncate(card.Title, inner, "…"), text)
			case imageRows + 1:
				g.Text(x0+2, row, runewidth.Truncate(card.Description, inner, "…"), sub)
			}
		}
	}
}

func (c *carousel) Keys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "h", "right", "l"), key.WithHelp("←/→/drag", "swipe")),
	}
}

func (c *carousel) Debug() string {
	return fmt.Sprintf("x %s v%s  target %s  card %d/%d  %s",
		util.FormatSigned(c.ctrl.Value()), util.FormatSigned(c.ctrl.Velocity()),
		util.FormatSigned(c.ctrl.Target()), c.policy.Index(c.ctrl.Target())+1, len(c.cards), c.ctrl.Phase())
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
