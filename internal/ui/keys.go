package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Back  key.Binding
	Home  key.Binding
	Help  key.Binding
	Debug key.Binding
	Quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Home: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "home"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Debug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "debug"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpKeys joins the active screen's bindings with the global ones for the
// help footer.
type helpKeys struct {
	global keyMap
	screen []key.Binding
	root   bool
}

func (h helpKeys) ShortHelp() []key.Binding {
	out := append([]key.Binding{}, h.screen...)
	if !h.root {
		out = append(out, h.global.Back)
	}
	return append(out, h.global.Help, h.global.Quit)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	nav := []key.Binding{h.global.Home}
	if !h.root {
		nav = []key.Binding{h.global.Back, h.global.Home}
	}
	return [][]key.Binding{
		h.screen,
		nav,
		{h.global.Help, h.global.Debug, h.global.Quit},
	}
}
