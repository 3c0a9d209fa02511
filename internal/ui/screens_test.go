package ui

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/springdeck/internal/catalog"
	"github.com/olivier-w/springdeck/internal/config"
	"github.com/olivier-w/springdeck/internal/gesture"
	"github.com/olivier-w/springdeck/internal/sound"
)

type recordingOutput struct{ plays int }

func (r *recordingOutput) Play([]byte, float64) { r.plays++ }

func testEnv(t *testing.T) env {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	cues := sound.NewWithOutput(&recordingOutput{}, 1, map[string]sound.Clip{
		sound.Pop: sound.SynthPop(),
		sound.Tap: sound.SynthTap(),
	})
	return env{cfg: config.Default(), cat: cat, cues: cues, rng: rand.New(rand.NewPCG(1, 2))}
}

func settle(t *testing.T, s Screen) {
	t.Helper()
	for i := 0; s.Animating(); i++ {
		if i > 6000 {
			t.Fatalf("%s still animating after %d frames: %s", s.ID(), i, s.Debug())
		}
		s.Tick(1.0 / 60)
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func pointer(s Screen, typ gesture.Type, x, y float64, ms int64) {
	s.HandlePointer(gesture.Event{Type: typ, X: x, Y: y, TimestampMs: ms})
}

func click(s Screen, x, y float64, ms int64) {
	pointer(s, gesture.Down, x, y, ms)
	pointer(s, gesture.Up, x, y, ms+40)
}

func TestScreenViewsFillTheirArea(t *testing.T) {
	e := testEnv(t)
	ids := []string{catalog.Heart, catalog.Scale, catalog.Drawer, catalog.Confetti, catalog.Carousel}
	screens := []Screen{newMenu(e)}
	for _, id := range ids {
		s, err := e.newScreen(id)
		if err != nil {
			t.Fatalf("newScreen(%q): %v", id, err)
		}
		screens = append(screens, s)
	}
	for _, s := range screens {
		s.SetSize(50, 16)
		if got := strings.Count(s.View(), "\n") + 1; got != 16 {
			t.Errorf("%s: expected 16 lines, got %d", s.ID(), got)
		}
	}
}

func TestNewScreenUnknownID(t *testing.T) {
	if _, err := testEnv(t).newScreen("nope"); err == nil {
		t.Fatal("expected an error for an unknown screen")
	}
}

func TestMenuClickOpensItem(t *testing.T) {
	m := newMenu(testEnv(t))
	m.SetSize(60, 20)

	// Spacing row between the first and second item.
	if cmd := m.HandlePointer(gesture.Event{Type: gesture.Down, X: 5, Y: menuTop + 2}); cmd != nil {
		t.Fatal("expected no command on press")
	}
	if cmd := m.HandlePointer(gesture.Event{Type: gesture.Up, X: 5, Y: menuTop + 2, TimestampMs: 40}); cmd != nil {
		t.Fatal("expected no command for a click between items")
	}

	m.HandlePointer(gesture.Event{Type: gesture.Down, X: 5, Y: menuTop + 3, TimestampMs: 1000})
	cmd := m.HandlePointer(gesture.Event{Type: gesture.Up, X: 5, Y: menuTop + 3, TimestampMs: 1040})
	if cmd == nil {
		t.Fatal("expected a command for a click on an item")
	}
	msg, ok := cmd().(openMsg)
	if !ok {
		t.Fatalf("expected openMsg, got %T", cmd())
	}
	if msg.id != catalog.Scale {
		t.Errorf("expected %q, got %q", catalog.Scale, msg.id)
	}
}

func TestMenuEnterOpensSelected(t *testing.T) {
	m := newMenu(testEnv(t))
	m.SetSize(60, 20)
	m.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	m.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	cmd := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if msg := cmd().(openMsg); msg.id != catalog.Drawer {
		t.Errorf("expected %q, got %q", catalog.Drawer, msg.id)
	}
}

func TestHeartNeedsDoubleTap(t *testing.T) {
	e := testEnv(t)
	h := newHeart(e)
	h.SetSize(60, 20)

	click(h, 10, 5, 0)
	if h.likes != 0 || h.Animating() {
		t.Fatal("expected a single tap to do nothing")
	}
	click(h, 11, 5, 150)
	if h.likes != 1 {
		t.Fatalf("expected 1 like, got %d", h.likes)
	}
	if h.x != 10 || h.y != 5 {
		t.Errorf("expected heart at the first tap (10, 5), got (%v, %v)", h.x, h.y)
	}
	if got := e.cues.Played(sound.Tap); got != 1 {
		t.Errorf("expected tap cue once, got %d", got)
	}

	peak := 0.0
	for h.Animating() {
		h.Tick(1.0 / 60)
		peak = math.Max(peak, h.scale.Value())
	}
	if peak < 0.9 {
		t.Errorf("expected the heart to grow to about 1, peaked at %v", peak)
	}
	if v := h.opacity.Value(); v != 0 {
		t.Errorf("expected the heart to fade out, opacity %v", v)
	}
}

func TestHeartSlowTapsDoNotLike(t *testing.T) {
	h := newHeart(testEnv(t))
	h.SetSize(60, 20)
	click(h, 10, 5, 0)
	click(h, 10, 5, 1000)
	if h.likes != 0 {
		t.Errorf("expected no likes, got %d", h.likes)
	}
}

func TestScaleBounceReturnsToRest(t *testing.T) {
	s := newScale(testEnv(t))
	s.SetSize(80, 20)

	s.HandleKey(runeKey('2'))
	if s.last != 1 {
		t.Errorf("expected tile 1, got %d", s.last)
	}
	peak := 0.0
	for i := 0; s.Animating() && i < 6000; i++ {
		s.Tick(1.0 / 60)
		peak = math.Max(peak, s.scale.Value())
	}
	if peak < 1.2 {
		t.Errorf("expected the tile to overshoot toward 1.4, peaked at %v", peak)
	}
	if v := s.scale.Value(); v != 1 {
		t.Errorf("expected scale 1 at rest, got %v", v)
	}
}

func TestScaleClickOnTile(t *testing.T) {
	s := newScale(testEnv(t))
	s.SetSize(80, 20)
	r := s.tiles()[2]
	x, y := r.center()
	click(s, x, y, 0)
	if s.last != 2 || !s.Animating() {
		t.Errorf("expected tile 2 to bounce, last %d animating %v", s.last, s.Animating())
	}

	s = newScale(testEnv(t))
	s.SetSize(80, 20)
	click(s, 0, 0, 0)
	if s.Animating() {
		t.Error("expected a click outside the tiles to do nothing")
	}
}

func TestDrawerToggle(t *testing.T) {
	d := newDrawer(testEnv(t))
	d.SetSize(80, 20)
	if d.ctrl.Value() != 10 {
		t.Fatalf("expected drawer closed at 10, got %v", d.ctrl.Value())
	}

	d.HandleKey(spaceKey)
	if d.ctrl.Target() != 0 {
		t.Fatalf("expected target 0, got %v", d.ctrl.Target())
	}
	settle(t, d)
	if d.ctrl.Value() != 0 {
		t.Fatalf("expected drawer open, got %v", d.ctrl.Value())
	}

	d.HandleKey(spaceKey)
	if d.ctrl.Target() != 10 {
		t.Errorf("expected target 10, got %v", d.ctrl.Target())
	}
}

func TestDrawerButtonClick(t *testing.T) {
	d := newDrawer(testEnv(t))
	d.SetSize(80, 20)
	x, y := d.buttonRect().center()
	click(d, x, y, 0)
	if d.ctrl.Target() != 0 {
		t.Errorf("expected click to open the drawer, target %v", d.ctrl.Target())
	}
}

func TestDrawerFlickCloses(t *testing.T) {
	d := newDrawer(testEnv(t))
	d.SetSize(80, 20)
	d.ctrl.Snap(0)

	pointer(d, gesture.Down, 40, 11, 0)
	pointer(d, gesture.Move, 40, 12, 16)
	pointer(d, gesture.Move, 40, 14, 32)
	pointer(d, gesture.Up, 40, 14, 48)
	if d.ctrl.Target() != 10 {
		t.Errorf("expected a fast flick to close, target %v", d.ctrl.Target())
	}
}

func TestDrawerSlowShortDragReopens(t *testing.T) {
	d := newDrawer(testEnv(t))
	d.SetSize(80, 20)
	d.ctrl.Snap(0)

	pointer(d, gesture.Down, 40, 11, 0)
	pointer(d, gesture.Move, 40, 13, 500)
	pointer(d, gesture.Move, 40, 14, 1000)
	if d.ctrl.Value() != 3 {
		t.Fatalf("expected the sheet to follow the pointer to 3, got %v", d.ctrl.Value())
	}
	pointer(d, gesture.Up, 40, 14, 1600)
	if d.ctrl.Target() != 0 {
		t.Errorf("expected the drawer to spring back open, target %v", d.ctrl.Target())
	}
}

func TestCarouselStep(t *testing.T) {
	c := newCarousel(testEnv(t))
	c.SetSize(80, 24)

	c.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	if want := c.policy.Offset(1); c.ctrl.Target() != want {
		t.Fatalf("expected target %v, got %v", want, c.ctrl.Target())
	}
	settle(t, c)
	if got := c.policy.Index(c.ctrl.Value()); got != 1 {
		t.Errorf("expected card 1, got %d", got)
	}

	c.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	c.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	if c.ctrl.Target() != 0 {
		t.Errorf("expected to stop at the first card, target %v", c.ctrl.Target())
	}
}

func TestCarouselCardTransforms(t *testing.T) {
	c := newCarousel(testEnv(t))
	c.SetSize(80, 24)

	centre := c.cardTransform(0)
	if centre.ScaleX != 1 || centre.Opacity != 1 || centre.TranslateX != 0 {
		t.Errorf("expected centred card at full size, got %+v", centre)
	}
	next := c.cardTransform(1)
	if next.ScaleX != 0.8 || next.Opacity != 0.5 || next.TranslateY != 2 {
		t.Errorf("expected neighbour scaled down, got %+v", next)
	}
	if next.TranslateX != c.policy.Stride {
		t.Errorf("expected neighbour one stride right, got %v", next.TranslateX)
	}
}

func TestCarouselResizeKeepsCard(t *testing.T) {
	c := newCarousel(testEnv(t))
	c.SetSize(80, 24)
	c.step(2)
	settle(t, c)
	c.SetSize(120, 30)
	if got := c.policy.Index(c.ctrl.Value()); got != 2 {
		t.Errorf("expected card 2 after resize, got %d", got)
	}
	if c.ctrl.Value() != c.policy.Offset(2) {
		t.Errorf("expected offset %v, got %v", c.policy.Offset(2), c.ctrl.Value())
	}
}

func TestDrawerResizeWhileClosing(t *testing.T) {
	for _, height := range []int{20, 60} {
		d := newDrawer(testEnv(t))
		d.SetSize(80, 40)
		d.ctrl.Snap(0)
		d.HandleKey(spaceKey)
		for range 5 {
			d.Tick(1.0 / 60)
		}
		d.SetSize(80, height)
		settle(t, d)
		if d.ctrl.Value() != d.sheet {
			t.Errorf("height %d: expected closed at %v, got %v", height, d.sheet, d.ctrl.Value())
		}
	}
}

func TestDrawerResizeWhileOpening(t *testing.T) {
	d := newDrawer(testEnv(t))
	d.SetSize(80, 40)
	d.HandleKey(spaceKey)
	for range 5 {
		d.Tick(1.0 / 60)
	}
	d.SetSize(80, 16)
	settle(t, d)
	if d.ctrl.Value() != 0 {
		t.Errorf("expected open at 0, got %v", d.ctrl.Value())
	}
}

func TestDrawerResizeKeepsClosed(t *testing.T) {
	d := newDrawer(testEnv(t))
	d.SetSize(80, 20)
	d.SetSize(80, 40)
	if d.ctrl.Value() != 20 {
		t.Errorf("expected closed at 20 after growing, got %v", d.ctrl.Value())
	}
	if d.Animating() {
		t.Error("expected no animation after resizing a resting drawer")
	}
}

func TestDrawerResizeWhileDragging(t *testing.T) {
	d := newDrawer(testEnv(t))
	d.SetSize(80, 20)
	d.ctrl.Snap(0)

	pointer(d, gesture.Down, 40, 11, 0)
	pointer(d, gesture.Move, 40, 18, 16)
	d.SetSize(80, 10)
	if d.ctrl.Value() != 5 {
		t.Fatalf("expected the drag clamped to the new sheet at 5, got %v", d.ctrl.Value())
	}
	pointer(d, gesture.Up, 40, 18, 32)
	settle(t, d)
	if d.ctrl.Value() != 5 {
		t.Errorf("expected closed at 5, got %v", d.ctrl.Value())
	}
}

func TestCarouselResizeWhileSettling(t *testing.T) {
	c := newCarousel(testEnv(t))
	c.SetSize(80, 24)
	c.step(5)
	for range 5 {
		c.Tick(1.0 / 60)
	}
	c.SetSize(40, 24)
	settle(t, c)
	if want := c.policy.Offset(5); c.ctrl.Value() != want {
		t.Errorf("expected last card at %v, got %v", want, c.ctrl.Value())
	}
}

func TestCarouselDragSnapsToNearestCard(t *testing.T) {
	c := newCarousel(testEnv(t))
	c.SetSize(80, 24)
	y := float64(c.height) / 2
	stride := c.policy.Stride

	pointer(c, gesture.Down, 60, y, 0)
	pointer(c, gesture.Move, 60-stride*0.3, y, 400)
	pointer(c, gesture.Move, 60-stride*0.7, y, 800)
	pointer(c, gesture.Up, 60-stride*0.7, y, 1400)
	if want := c.policy.Offset(1); c.ctrl.Target() != want {
		t.Errorf("expected target %v, got %v", want, c.ctrl.Target())
	}
}

func TestConfettiBurst(t *testing.T) {
	e := testEnv(t)
	c := newConfetti(e)
	c.SetSize(80, 24)

	c.HandleKey(spaceKey)
	if len(c.pieces) != e.cfg.Confetti.Count {
		t.Fatalf("expected %d pieces, got %d", e.cfg.Confetti.Count, len(c.pieces))
	}
	if got := e.cues.Played(sound.Pop); got != 1 {
		t.Errorf("expected pop cue once, got %d", got)
	}
	c.Tick(0.5)
	rose := false
	for _, p := range c.pieces {
		if p.y.Value() < 0 {
			rose = true
		}
	}
	if !rose {
		t.Error("expected some pieces above the launch point")
	}
	settle(t, c)
	if c.pieces != nil {
		t.Errorf("expected pieces cleared, got %d", len(c.pieces))
	}
}

func TestConfettiButtonClick(t *testing.T) {
	c := newConfetti(testEnv(t))
	c.SetSize(80, 24)
	x, y := c.buttonRect().center()
	click(c, x, y, 0)
	if !c.Animating() || c.bursts != 1 {
		t.Errorf("expected a burst, animating %v bursts %d", c.Animating(), c.bursts)
	}
}
