package ui

import (
	"fmt"
	"log"
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/olivier-w/springdeck/internal/catalog"
	"github.com/olivier-w/springdeck/internal/config"
	"github.com/olivier-w/springdeck/internal/gesture"
	"github.com/olivier-w/springdeck/internal/interaction"
	"github.com/olivier-w/springdeck/internal/render"
	"github.com/olivier-w/springdeck/internal/transform"
	"github.com/olivier-w/springdeck/internal/util"
)

// drawer is a bottom sheet. Its offset runs from 0 (open) to the sheet height
// (closed, fully below the body).
type drawer struct {
	cfg      config.Drawer
	title    string
	button   string
	items    []catalog.Item
	ctrl     *interaction.Controller
	drag     *gesture.Drag
	tap      *gesture.Tap
	backdrop transform.KeyframeMap
	chevron  transform.KeyframeMap
	sheet    float64
	sized    bool
	width    int
	height   int
}

func newDrawer(e env) *drawer {
	d := &drawer{
		cfg:    e.cfg.Drawer,
		title:  e.title(catalog.Drawer),
		button: e.cat.Drawer.Button,
		items:  e.cat.Drawer.Items,
		drag:   e.dragRecognizer(),
		tap:    e.tapRecognizer(),
	}
	d.ctrl = interaction.New(0, interaction.Options{
		Spring:      d.cfg.Spring,
		Tolerance:   e.cfg.Motion,
		ClampSpring: true,
	})

	d.drag.HitTest = func(x, y float64) bool { return y >= d.sheetTop() && y < float64(d.height) }
	d.drag.OnStart = d.ctrl.BeginDrag
	d.drag.OnUpdate = func(_, dy float64) { d.ctrl.DragBy(dy) }
	d.drag.OnEnd = func(_, vy float64) {
		d.ctrl.Release(vy)
		log.Printf("drawer: released at %.1f with %.1f cells/s, settling to %.0f", d.ctrl.Value(), vy, d.ctrl.Target())
	}

	d.tap.HitTest = func(x, y float64) bool { return d.buttonRect().contains(x, y) }
	d.tap.OnTap = func(int, float64, float64) { d.toggle() }
	return d
}

// toggle opens a closed or moving drawer and closes one resting fully open.
func (d *drawer) toggle() {
	if d.ctrl.Value() == 0 {
		d.ctrl.AnimateTo(d.sheet, 0)
		return
	}
	d.ctrl.AnimateTo(0, 0)
}

func (d *drawer) sheetTop() float64 {
	return float64(d.height) - d.sheet + d.ctrl.Value()
}

func (d *drawer) buttonRect() rect {
	w := runewidth.StringWidth(d.button) + 6
	return rect{x: (d.width - w) / 2, y: d.height / 4, w: w, h: 3}
}

func (d *drawer) ID() string    { return catalog.Drawer }
func (d *drawer) Title() string { return d.title }

// SetSize resizes the sheet. A drawer resting at or heading for closed stays
// closed at the new height; one resting at or heading for open stays open.
func (d *drawer) SetSize(width, height int) {
	closed := !d.sized || d.ctrl.Target() >= d.sheet
	d.width, d.height = width, height
	d.sheet = math.Max(3, math.Floor(float64(height)/2))
	d.ctrl.SetRange(0, d.sheet, interaction.DrawerPolicy{
		Height:            d.sheet,
		VelocityThreshold: d.cfg.VelocityThreshold,
	})
	rest := 0.0
	if closed {
		rest = d.sheet
	}
	switch d.ctrl.Phase() {
	case interaction.Idle:
		d.ctrl.Snap(rest)
	case interaction.Settling:
		d.ctrl.AnimateTo(rest, d.ctrl.Velocity())
	}
	d.sized = true
	d.backdrop = transform.MustKeyframeMap([]float64{0, d.sheet}, []float64{0.5, 0})
	d.chevron = transform.MustKeyframeMap([]float64{0, d.sheet}, []float64{180, 0})
}

func (d *drawer) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case " ", "enter":
		d.toggle()
	}
	return nil
}

func (d *drawer) HandlePointer(ev gesture.Event) tea.Cmd {
	d.drag.Handle(ev)
	if !d.drag.Active() {
		d.tap.Handle(ev)
	}
	return nil
}

func (d *drawer) Tick(dt float64)  { d.ctrl.Tick(dt) }
func (d *drawer) Animating() bool { return d.ctrl.Phase() == interaction.Settling }

func (d *drawer) View() string {
	g := render.NewGrid(d.width, d.height, surface)
	y := d.ctrl.Value()
	dim := d.backdrop.Map(y)

	b := d.buttonRect()
	g.Box(b.x, b.y, b.w, b.h, accent, accent)
	g.TextCenter(b.x+b.w/2, b.y+1, d.button, white)

	for row := range d.height {
		for col := range d.width {
			c := g.At(col, row)
			g.SetBG(col, row, render.Dim(c.BG, dim))
			g.SetFG(col, row, render.Dim(c.FG, dim))
		}
	}

	top := int(math.Round(d.sheetTop()))
	g.Box(0, top, d.width, int(d.sheet)+1, edge, panel)
	g.TextCenter(d.width/2, top+1, "────", muted)
	glyph := "▴"
	if d.chevron.Map(y) > 90 {
		glyph = "▾"
	}
	g.TextCenter(d.width/2, top+2, glyph, muted)
	for i, it := range d.items {
		row := top + 4 + i*2
		g.Text(4, row, it.Glyph, ink)
		g.Text(7, row, it.Label, ink)
	}
	return g.String()
}

func (d *drawer) Keys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
	}
}

func (d *drawer) Debug() string {
	return fmt.Sprintf("translateY %s v%s  target %s  %s  dim %.2f",
		util.FormatSigned(d.ctrl.Value()), util.FormatSigned(d.ctrl.Velocity()),
		util.FormatSigned(d.ctrl.Target()), d.ctrl.Phase(), d.backdrop.Map(d.ctrl.Value()))
}
