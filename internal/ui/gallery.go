// Package ui is the springdeck terminal front end: a gallery shell with a
// navigation stack, the demo list and one screen per demo.
package ui

import (
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/olivier-w/springdeck/internal/catalog"
	"github.com/olivier-w/springdeck/internal/config"
	"github.com/olivier-w/springdeck/internal/gesture"
	"github.com/olivier-w/springdeck/internal/nav"
	"github.com/olivier-w/springdeck/internal/sound"
)

// headerHeight is the title row plus the rule under it.
const headerHeight = 2

// maxFrameStep caps dt after a stall so springs do not jump.
const maxFrameStep = 0.1

// Option customizes a Gallery.
type Option func(*Gallery)

// WithClock replaces time.Now for pointer timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gallery) { g.now = now }
}

// WithRand seeds the confetti generator.
func WithRand(r *rand.Rand) Option {
	return func(g *Gallery) { g.env.rng = r }
}

// Gallery is the root Bubbletea model.
type Gallery struct {
	env      env
	stack    *nav.Stack[Screen]
	keys     keyMap
	help     help.Model
	now      func() time.Time
	width    int
	height   int
	debug    bool
	ticking  bool
	last     time.Time
	quitting bool
}

// New creates a gallery showing the demo list.
func New(cfg config.Config, cat *catalog.Catalog, cues *sound.Cues, opts ...Option) Gallery {
	g := Gallery{
		env:  env{cfg: cfg, cat: cat, cues: cues, rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))},
		keys: newKeyMap(),
		help: help.New(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(&g)
	}
	g.help.Styles.ShortKey = helpStyle.Bold(true)
	g.help.Styles.ShortDesc = helpStyle
	g.help.Styles.FullKey = helpStyle.Bold(true)
	g.help.Styles.FullDesc = helpStyle
	g.stack = nav.New[Screen](newMenu(g.env))
	return g
}

// Open pushes the demo with the given ID, as if it had been picked from the
// list.
func (g *Gallery) Open(id string) error {
	s, err := g.env.newScreen(id)
	if err != nil {
		return err
	}
	g.stack.Push(s)
	g.layout()
	return nil
}

// Current returns the screen on top of the stack.
func (g Gallery) Current() Screen { return g.stack.Current() }

func (g Gallery) Init() tea.Cmd {
	return tea.SetWindowTitle("springdeck")
}

func (g Gallery) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.width, g.height = msg.Width, msg.Height
		g.help.Width = msg.Width
		g.layout()
		return g, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, g.keys.Quit):
			g.quitting = true
			return g, tea.Quit
		case key.Matches(msg, g.keys.Back):
			g.back()
			return g, nil
		case key.Matches(msg, g.keys.Home):
			g.home()
			return g, nil
		case key.Matches(msg, g.keys.Help):
			g.help.ShowAll = !g.help.ShowAll
			g.layout()
			return g, nil
		case key.Matches(msg, g.keys.Debug):
			g.debug = !g.debug
			g.layout()
			return g, nil
		}
		cmd := g.stack.Current().HandleKey(msg)
		frames := g.startFrames()
		return g, tea.Batch(cmd, frames)

	case tea.MouseMsg:
		ev, ok := gesture.FromMouse(msg, g.now())
		if !ok {
			return g, nil
		}
		if ev.Type == gesture.Up && msg.Y == 0 && g.headerClick(msg.X) {
			return g, nil
		}
		cmd := g.stack.Current().HandlePointer(ev.At(0, headerHeight))
		frames := g.startFrames()
		return g, tea.Batch(cmd, frames)

	case openMsg:
		if err := g.Open(msg.id); err != nil {
			log.Printf("gallery: %v", err)
			return g, nil
		}
		log.Printf("gallery: opened %s (depth %d)", msg.id, g.stack.Depth())
		frames := g.startFrames()
		return g, frames

	case frameMsg:
		t := time.Time(msg)
		dt := t.Sub(g.last).Seconds()
		if dt < 0 {
			dt = 0
		}
		if dt > maxFrameStep {
			dt = maxFrameStep
		}
		g.last = t
		s := g.stack.Current()
		s.Tick(dt)
		if s.Animating() {
			return g, frameCmd(g.env.cfg.FPS)
		}
		g.ticking = false
		return g, nil
	}
	return g, nil
}

// startFrames begins the frame loop if the current screen has started
// animating. The loop stops by itself once everything has settled.
func (g *Gallery) startFrames() tea.Cmd {
	if g.ticking || !g.stack.Current().Animating() {
		return nil
	}
	g.ticking = true
	g.last = g.now()
	return frameCmd(g.env.cfg.FPS)
}

func (g *Gallery) back() {
	if _, ok := g.stack.Pop(); ok {
		log.Printf("gallery: back to %s", g.stack.Current().ID())
		g.layout()
	}
}

func (g *Gallery) home() {
	if g.stack.Reset() {
		log.Printf("gallery: home to %s", g.stack.Root().ID())
		g.layout()
	}
}

// headerClick handles the back (‹) and home (⊞) buttons. It reports whether
// the click hit either.
func (g *Gallery) headerClick(x int) bool {
	switch {
	case x >= g.width-4:
		g.home()
		return true
	case x <= 2 && g.stack.Depth() > 1:
		g.back()
		return true
	}
	return false
}

func (g Gallery) helpKeys() helpKeys {
	return helpKeys{global: g.keys, screen: g.stack.Current().Keys(), root: g.stack.Depth() == 1}
}

func (g Gallery) footer() string {
	lines := []string{g.help.View(g.helpKeys())}
	if g.debug {
		hud := runewidth.Truncate(g.stack.Current().Debug(), g.width, "…")
		lines = append([]string{hudStyle.Render(hud)}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (g Gallery) bodyHeight() int {
	h := g.height - headerHeight - lipgloss.Height(g.footer())
	if h < 1 {
		h = 1
	}
	return h
}

// layout resizes the current screen to the space between header and footer.
func (g *Gallery) layout() {
	if g.width <= 0 || g.height <= 0 {
		return
	}
	g.stack.Current().SetSize(g.width, g.bodyHeight())
}

func (g Gallery) header() string {
	left := g.stack.Current().Title()
	if g.stack.Depth() > 1 {
		left = "‹  " + left
	}
	home := "⊞ "
	avail := g.width - runewidth.StringWidth(home) - 1
	if avail < 0 {
		avail = 0
	}
	left = runewidth.Truncate(left, avail, "…")
	gap := g.width - runewidth.StringWidth(left) - runewidth.StringWidth(home)
	if gap < 1 {
		gap = 1
	}
	title := titleStyle.Render(left) + strings.Repeat(" ", gap) + navStyle.Render(home)
	rule := ruleStyle.Render(strings.Repeat("─", max(g.width, 0)))
	return title + "\n" + rule
}

func (g Gallery) View() string {
	if g.quitting {
		return ""
	}
	if g.width <= 0 || g.height <= 0 {
		return ""
	}
	return g.header() + "\n" + g.stack.Current().View() + "\n" + g.footer()
}
