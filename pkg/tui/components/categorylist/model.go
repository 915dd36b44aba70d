// Package categorylist renders the left-hand category pane.
package categorylist

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/tui/events"
	"tableflip.dev/shopkeep/pkg/tui/theme"
)

// Model is the category list pane. The "All" row at index 0 clears the
// product filter.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	categories []catalog.Category
	index      int

	width   int
	height  int
	focused bool

	loading bool
	loadErr error
}

// NewModel constructs an empty list in the loading state.
func NewModel() *Model {
	return &Model{
		id:      events.ComponentID("categorylist"),
		theme:   theme.Default(),
		loading: true,
	}
}

// SetSize configures the pane dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focus marks the pane active.
func (m *Model) Focus() { m.focused = true }

// Blur marks the pane inactive.
func (m *Model) Blur() { m.focused = false }

// SetCategories replaces the rows and clears the loading and error states.
// The current selection is kept when the selected category survives the
// refresh.
func (m *Model) SetCategories(categories []catalog.Category) {
	var keep string
	if c, ok := m.Selected(); ok {
		keep = c.ID
	}
	m.categories = append([]catalog.Category(nil), categories...)
	m.loading = false
	m.loadErr = nil
	m.index = 0
	if keep != "" {
		for i, c := range m.categories {
			if c.ID == keep {
				m.index = i + 1
				break
			}
		}
	}
}

// SetError puts the pane in the error state.
func (m *Model) SetError(err error) {
	m.loading = false
	m.loadErr = err
}

// Selected returns the highlighted category. The second return is false on
// the "All" row.
func (m *Model) Selected() (catalog.Category, bool) {
	if m.index <= 0 || m.index > len(m.categories) {
		return catalog.Category{}, false
	}
	return m.categories[m.index-1], true
}

// Filter returns the category name products should be narrowed to, empty for
// the "All" row.
func (m *Model) Filter() string {
	if c, ok := m.Selected(); ok {
		return c.CategoryName
	}
	return ""
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.index > 0 {
			m.index--
		}
	case "down", "j":
		if m.index < len(m.categories) {
			m.index++
		}
	case "n":
		return m, events.EditRequestCmd(m.id, events.KindCategory, catalog.Category{}, catalog.Product{})
	case "e", "enter":
		if c, ok := m.Selected(); ok {
			return m, events.EditRequestCmd(m.id, events.KindCategory, c, catalog.Product{})
		}
	case "d":
		if c, ok := m.Selected(); ok {
			return m, events.DeleteRequestCmd(m.id, events.KindCategory, c.ID, c.CategoryName)
		}
	}
	return m, nil
}

// View renders the pane.
func (m *Model) View() string {
	title := m.theme.Panel.Title.Render("Categories")

	var body string
	switch {
	case m.loading:
		body = m.theme.List.Dim.Render("loading…")
	case m.loadErr != nil:
		body = m.theme.List.Error.Render(fmt.Sprintf("error: %v", m.loadErr))
	case len(m.categories) == 0:
		body = m.theme.List.Empty.Render("no categories yet")
	default:
		rows := make([]string, 0, len(m.categories)+1)
		rows = append(rows, m.renderRow("All", m.index == 0))
		for i, c := range m.categories {
			rows = append(rows, m.renderRow(c.CategoryName, m.index == i+1))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	frame := m.theme.Panel.Frame
	if m.focused {
		frame = m.theme.Panel.FocusedFrame
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	if m.width > 0 {
		frame = frame.Width(m.width)
	}
	if m.height > 0 {
		frame = frame.Height(m.height)
	}
	return frame.Render(content)
}

func (m *Model) renderRow(label string, selected bool) string {
	if selected {
		return m.theme.List.Selected.Render("> " + label)
	}
	return m.theme.List.Row.Render("  " + label)
}
