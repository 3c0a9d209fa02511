package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/springdeck/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#007AFF", Dark: "#4DA3FF"})

	navStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#444444"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#AA5500", Dark: "#FFB454"})

	activeDot   = lipgloss.NewStyle().Foreground(lipgloss.Color("#007AFF")).Render("●")
	inactiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Render("●")
)

// Colours of the cell-grid screens.
var (
	surface = render.RGB{R: 22, G: 22, B: 28}
	panel   = render.RGB{R: 40, G: 40, B: 50}
	edge    = render.RGB{R: 90, G: 90, B: 106}
	ink     = render.RGB{R: 232, G: 232, B: 238}
	muted   = render.RGB{R: 140, G: 140, B: 156}
	accent  = render.RGB{R: 0, G: 122, B: 255}
	white   = render.RGB{R: 255, G: 255, B: 255}
)
