package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg time.Time

// openMsg asks the gallery to push the demo with this ID.
type openMsg struct{ id string }

func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func openCmd(id string) tea.Cmd {
	return func() tea.Msg { return openMsg{id: id} }
}
