package ui

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/springdeck/internal/catalog"
	"github.com/olivier-w/springdeck/internal/config"
	"github.com/olivier-w/springdeck/internal/gesture"
	"github.com/olivier-w/springdeck/internal/sound"
)

// Screen is one page of the gallery. Pointer events arrive in body
// coordinates: (0, 0) is the top-left cell below the header.
type Screen interface {
	ID() string
	Title() string
	SetSize(width, height int)
	HandleKey(msg tea.KeyMsg) tea.Cmd
	HandlePointer(ev gesture.Event) tea.Cmd
	// Tick advances animations by dt seconds.
	Tick(dt float64)
	Animating() bool
	// View renders exactly width×height cells.
	View() string
	Keys() []key.Binding
	// Debug describes the driven values for the HUD.
	Debug() string
}

// env is what every screen is built from.
type env struct {
	cfg  config.Config
	cat  *catalog.Catalog
	cues *sound.Cues
	rng  *rand.Rand
}

func (e env) newScreen(id string) (Screen, error) {
	switch id {
	case catalog.Heart:
		return newHeart(e), nil
	case catalog.Scale:
		return newScale(e), nil
	case catalog.Drawer:
		return newDrawer(e), nil
	case catalog.Confetti:
		return newConfetti(e), nil
	case catalog.Carousel:
		return newCarousel(e), nil
	}
	return nil, fmt.Errorf("unknown screen %q", id)
}

func (e env) title(id string) string {
	if d, ok := e.cat.Demo(id); ok {
		return d.Title
	}
	return id
}

// tapRecognizer builds a single-tap recognizer from the gesture settings.
func (e env) tapRecognizer() *gesture.Tap {
	return gesture.NewTap(1, e.cfg.Gesture.TapInterval, e.cfg.Gesture.TapRadius)
}

func (e env) dragRecognizer() *gesture.Drag {
	d := gesture.NewDrag(e.cfg.Gesture.VelocityWindow)
	d.MinDistance = e.cfg.Gesture.DragMinDistance
	return d
}

// rect is a hit region in body cells.
type rect struct{ x, y, w, h int }

func (r rect) contains(x, y float64) bool {
	return x >= float64(r.x) && x < float64(r.x+r.w) && y >= float64(r.y) && y < float64(r.y+r.h)
}

func (r rect) center() (float64, float64) {
	return float64(r.x) + float64(r.w)/2, float64(r.y) + float64(r.h)/2
}
