// Package gesture turns raw pointer events into drag and tap intents.
// Recognizers only call back; they never touch application state.
package gesture

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Type is the kind of a pointer event.
type Type uint8

const (
	Down Type = iota
	Move
	Up
)

func (t Type) String() string {
	switch t {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	}
	return "unknown"
}

// Event is one raw pointer sample in screen cells.
type Event struct {
	Type        Type
	X, Y        float64
	TimestampMs int64
}

// At returns a copy of e translated by (-dx, -dy), for handing events to a
// region whose origin is at (dx, dy).
func (e Event) At(dx, dy float64) Event {
	e.X -= dx
	e.Y -= dy
	return e
}

// FromMouse converts a Bubble Tea mouse message into a pointer event stamped
// with now. Only the left button drives the pointer; wheel and other buttons
// report false.
func FromMouse(msg tea.MouseMsg, now time.Time) (Event, bool) {
	ev := Event{X: float64(msg.X), Y: float64(msg.Y), TimestampMs: now.UnixMilli()}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return Event{}, false
		}
		ev.Type = Down
	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return Event{}, false
		}
		ev.Type = Move
	case tea.MouseActionRelease:
		// X10 reports releases without a button.
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
			return Event{}, false
		}
		ev.Type = Up
	default:
		return Event{}, false
	}
	return ev, true
}
