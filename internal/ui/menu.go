package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/olivier-w/springdeck/internal/catalog"
	"github.com/olivier-w/springdeck/internal/gesture"
)

const menuID = "menu"

// menuTop is the number of rows above the list: the heading and a blank line.
const menuTop = 2

type demoItem struct{ catalog.Demo }

func (i demoItem) FilterValue() string { return i.Title }

type demoDelegate struct{}

const (
	itemHeight  = 2
	itemSpacing = 1
)

func (demoDelegate) Height() int                             { return itemHeight }
func (demoDelegate) Spacing() int                            { return itemSpacing }
func (demoDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (demoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	d, ok := item.(demoItem)
	if !ok {
		return
	}
	width := m.Width() - 6
	if width < 4 {
		width = 4
	}
	title := runewidth.Truncate(d.Title, width, "…")
	desc := runewidth.Truncate(d.Description, width, "…")

	marker, ts := "  ", titleStyle
	if index == m.Index() {
		marker, ts = selectedTitleStyle.Render("▌ "), selectedTitleStyle
	}
	fmt.Fprintf(w, "%s%s %s  %s\n%s   %s",
		marker, d.Icon, ts.Render(title), helpStyle.Render("›"),
		marker, descStyle.Render(desc))
}

// menu lists the demos. Enter or a click opens one.
type menu struct {
	heading string
	list    list.Model
	tap     *gesture.Tap
	width   int
	height  int
	open    string
}

func newMenu(e env) *menu {
	items := make([]list.Item, 0, len(e.cat.Demos))
	for _, d := range e.cat.Demos {
		items = append(items, demoItem{d})
	}

	l := list.New(items, demoDelegate{}, 40, 15)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	m := &menu{heading: e.cat.Title, list: l, tap: e.tapRecognizer()}
	m.tap.OnTap = func(_ int, x, y float64) {
		if i, ok := m.itemAt(y); ok {
			m.list.Select(i)
			m.open = m.selectedID()
		}
	}
	return m
}

func (m *menu) ID() string    { return menuID }
func (m *menu) Title() string { return m.heading }

func (m *menu) SetSize(width, height int) {
	m.width, m.height = width, height
	h := height - menuTop
	if h < itemHeight {
		h = itemHeight
	}
	m.list.SetSize(width, h)
}

func (m *menu) selectedID() string {
	if d, ok := m.list.SelectedItem().(demoItem); ok {
		return d.ID
	}
	return ""
}

// itemAt maps a body row to an item index on the visible page.
func (m *menu) itemAt(y float64) (int, bool) {
	row := int(y) - menuTop
	if y < 0 || row < 0 {
		return 0, false
	}
	per := itemHeight + itemSpacing
	if row%per >= itemHeight {
		return 0, false
	}
	start := m.list.Paginator.Page * m.list.Paginator.PerPage
	i := start + row/per
	if i >= len(m.list.Items()) || row/per >= m.list.Paginator.PerPage {
		return 0, false
	}
	return i, true
}

func (m *menu) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "enter" {
		if id := m.selectedID(); id != "" {
			return openCmd(id)
		}
		return nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *menu) HandlePointer(ev gesture.Event) tea.Cmd {
	m.tap.Handle(ev)
	if m.open == "" {
		return nil
	}
	id := m.open
	m.open = ""
	return openCmd(id)
}

func (m *menu) Tick(float64)    {}
func (m *menu) Animating() bool { return false }

func (m *menu) View() string {
	heading := titleStyle.Render(runewidth.Truncate(m.heading, m.width, ""))
	body := heading + "\n\n" + m.list.View()
	return lipgloss.NewStyle().Width(m.width).Height(m.height).MaxHeight(m.height).Render(body)
}

func (m *menu) Keys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "select")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	}
}

func (m *menu) Debug() string {
	return fmt.Sprintf("selected %d/%d  page %d", m.list.Index()+1, len(m.list.Items()), m.list.Paginator.Page+1)
}
