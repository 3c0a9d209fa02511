package ui

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/springdeck/internal/catalog"
	"github.com/olivier-w/springdeck/internal/config"
	"github.com/olivier-w/springdeck/internal/sound"
)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGallery(t *testing.T) (Gallery, *sound.Cues, *testClock) {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	cues := sound.NewWithOutput(&recordingOutput{}, 1, map[string]sound.Clip{
		sound.Pop: sound.SynthPop(),
		sound.Tap: sound.SynthTap(),
	})
	clock := &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	g := New(config.Default(), cat, cues,
		WithClock(clock.now),
		WithRand(rand.New(rand.NewPCG(3, 4))))
	g, _ = update(g, tea.WindowSizeMsg{Width: 80, Height: 30})
	return g, cues, clock
}

func update(g Gallery, msg tea.Msg) (Gallery, tea.Cmd) {
	m, cmd := g.Update(msg)
	return m.(Gallery), cmd
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestGalleryStartsOnMenu(t *testing.T) {
	g, _, _ := newTestGallery(t)
	if id := g.Current().ID(); id != menuID {
		t.Fatalf("expected menu, got %q", id)
	}
	if !strings.Contains(g.View(), "アニメーションデモ") {
		t.Error("expected the catalog title in the header")
	}
}

func TestGalleryEnterOpensDemo(t *testing.T) {
	g, _, _ := newTestGallery(t)
	g, cmd := update(g, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected an open command")
	}
	g, _ = update(g, cmd())
	if id := g.Current().ID(); id != catalog.Heart {
		t.Fatalf("expected %q, got %q", catalog.Heart, id)
	}
	if g.stack.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", g.stack.Depth())
	}
	if !strings.Contains(g.View(), "‹") {
		t.Error("expected a back button in the header")
	}
}

func TestGalleryBackAndHome(t *testing.T) {
	g, _, _ := newTestGallery(t)
	if err := g.Open(catalog.Drawer); err != nil {
		t.Fatal(err)
	}
	if err := g.Open(catalog.Carousel); err != nil {
		t.Fatal(err)
	}

	g, _ = update(g, tea.KeyMsg{Type: tea.KeyEsc})
	if id := g.Current().ID(); id != catalog.Drawer {
		t.Fatalf("expected %q after back, got %q", catalog.Drawer, id)
	}

	g.Open(catalog.Scale)
	g, _ = update(g, runeKey('g'))
	if id := g.Current().ID(); id != menuID {
		t.Fatalf("expected menu after home, got %q", id)
	}

	g, _ = update(g, tea.KeyMsg{Type: tea.KeyEsc})
	if id := g.Current().ID(); id != menuID || g.stack.Depth() != 1 {
		t.Errorf("expected back at the root to stay on the menu, got %q depth %d", id, g.stack.Depth())
	}
}

func TestGalleryHeaderButtons(t *testing.T) {
	g, _, _ := newTestGallery(t)
	g.Open(catalog.Heart)
	g.Open(catalog.Scale)

	g, _ = update(g, mouse(1, 0, tea.MouseActionPress))
	g, _ = update(g, mouse(1, 0, tea.MouseActionRelease))
	if id := g.Current().ID(); id != catalog.Heart {
		t.Fatalf("expected back button to show %q, got %q", catalog.Heart, id)
	}

	g.Open(catalog.Scale)
	g, _ = update(g, mouse(79, 0, tea.MouseActionRelease))
	if g.stack.Depth() != 1 {
		t.Errorf("expected home button to reset the stack, depth %d", g.stack.Depth())
	}
}

func TestGalleryOpenUnknown(t *testing.T) {
	g, _, _ := newTestGallery(t)
	if err := g.Open("nope"); err == nil {
		t.Fatal("expected an error")
	}
	g, _ = update(g, openMsg{id: "nope"})
	if g.stack.Depth() != 1 {
		t.Errorf("expected the stack unchanged, depth %d", g.stack.Depth())
	}
}

func TestGalleryFrameLoop(t *testing.T) {
	g, cues, clock := newTestGallery(t)
	g.Open(catalog.Heart)

	g, cmd := update(g, spaceKey)
	if cmd == nil || !g.ticking {
		t.Fatal("expected the frame loop to start")
	}
	if got := cues.Played(sound.Tap); got != 1 {
		t.Errorf("expected tap cue once, got %d", got)
	}

	// A second key while ticking must not start another loop.
	if _, cmd := update(g, spaceKey); cmd != nil {
		t.Error("expected no second frame loop")
	}

	frames := 0
	for cmd != nil {
		frames++
		if frames > 1000 {
			t.Fatal("frame loop never stopped")
		}
		clock.advance(16 * time.Millisecond)
		g, cmd = update(g, frameMsg(clock.t))
	}
	if g.ticking || g.Current().Animating() {
		t.Error("expected everything to be settled")
	}
	if frames < 30 {
		t.Errorf("expected the like to run for a while, stopped after %d frames", frames)
	}
}

func TestGalleryDoubleClickInBody(t *testing.T) {
	g, cues, clock := newTestGallery(t)
	g.Open(catalog.Heart)

	for range 2 {
		g, _ = update(g, mouse(20, 10, tea.MouseActionPress))
		clock.advance(40 * time.Millisecond)
		g, _ = update(g, mouse(20, 10, tea.MouseActionRelease))
		clock.advance(60 * time.Millisecond)
	}
	h := g.Current().(*heart)
	if h.likes != 1 {
		t.Fatalf("expected 1 like, got %d", h.likes)
	}
	if h.y != 10-headerHeight {
		t.Errorf("expected body row %d, got %v", 10-headerHeight, h.y)
	}
	if cues.Played(sound.Tap) != 1 {
		t.Errorf("expected tap cue once, got %d", cues.Played(sound.Tap))
	}
	if !g.ticking {
		t.Error("expected the frame loop to be running")
	}
}

func TestGalleryViewHeight(t *testing.T) {
	g, _, _ := newTestGallery(t)
	g.Open(catalog.Drawer)
	if got := strings.Count(g.View(), "\n") + 1; got != 30 {
		t.Errorf("expected 30 lines, got %d", got)
	}

	g, _ = update(g, runeKey('d'))
	if !g.debug {
		t.Fatal("expected debug on")
	}
	view := g.View()
	if got := strings.Count(view, "\n") + 1; got != 30 {
		t.Errorf("expected 30 lines with the HUD, got %d", got)
	}
	if !strings.Contains(view, "translateY") {
		t.Error("expected the drawer's driven value in the HUD")
	}
}

func TestGalleryQuit(t *testing.T) {
	g, _, _ := newTestGallery(t)
	g, cmd := update(g, runeKey('q'))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
	if g.View() != "" {
		t.Error("expected an empty view after quitting")
	}
}
