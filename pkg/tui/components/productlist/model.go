// Package productlist renders the product rows for the active category
// filter.
package productlist

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/tui/events"
	"tableflip.dev/shopkeep/pkg/tui/theme"
)

// Model is the product list pane.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	products []catalog.Product
	filter   string
	index    int

	width   int
	height  int
	focused bool

	loading bool
	loadErr error
}

// NewModel constructs an empty list in the loading state.
func NewModel() *Model {
	return &Model{
		id:      events.ComponentID("productlist"),
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

// SetProducts replaces the rows and clears the loading and error states. The
// filter label is display-only; callers pass rows already narrowed.
func (m *Model) SetProducts(products []catalog.Product, filter string) {
	var keep string
	if p, ok := m.Selected(); ok {
		keep = p.ID
	}
	m.products = append([]catalog.Product(nil), products...)
	m.filter = filter
	m.loading = false
	m.loadErr = nil
	m.index = 0
	if keep != "" {
		for i, p := range m.products {
			if p.ID == keep {
				m.index = i
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

// Selected returns the highlighted product, false when the list is empty.
func (m *Model) Selected() (catalog.Product, bool) {
	if len(m.products) == 0 || m.index < 0 || m.index >= len(m.products) {
		return catalog.Product{}, false
	}
	return m.products[m.index], true
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
		if m.index < len(m.products)-1 {
			m.index++
		}
	case "n":
		return m, events.EditRequestCmd(m.id, events.KindProduct, catalog.Category{}, catalog.Product{})
	case "e", "enter":
		if p, ok := m.Selected(); ok {
			return m, events.EditRequestCmd(m.id, events.KindProduct, catalog.Category{}, p)
		}
	case "d":
		if p, ok := m.Selected(); ok {
			return m, events.DeleteRequestCmd(m.id, events.KindProduct, p.ID, p.ProductName)
		}
	}
	return m, nil
}

// View renders the pane.
func (m *Model) View() string {
	title := "Products"
	if m.filter != "" {
		title = fmt.Sprintf("Products · %s", m.filter)
	}
	head := m.theme.Panel.Title.Render(title)

	var body string
	switch {
	case m.loading:
		body = m.theme.List.Dim.Render("loading…")
	case m.loadErr != nil:
		body = m.theme.List.Error.Render(fmt.Sprintf("error: %v", m.loadErr))
	case len(m.products) == 0:
		body = m.theme.List.Empty.Render("no products yet")
	default:
		rows := make([]string, 0, len(m.products))
		for i, p := range m.products {
			rows = append(rows, m.renderRow(p, i == m.index))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	frame := m.theme.Panel.Frame
	if m.focused {
		frame = m.theme.Panel.FocusedFrame
	}
	content := lipgloss.JoinVertical(lipgloss.Left, head, body)
	if m.width > 0 {
		frame = frame.Width(m.width)
	}
	if m.height > 0 {
		frame = frame.Height(m.height)
	}
	return frame.Render(content)
}

func (m *Model) renderRow(p catalog.Product, selected bool) string {
	line := fmt.Sprintf("%-24s %10s %6d in stock  %s",
		truncate(p.ProductName, 24), p.PriceLabel(), p.Units,
		m.theme.List.Dim.Render(fmt.Sprintf("%d image(s)", len(p.Images))))
	if selected {
		return m.theme.List.Selected.Render("> " + line)
	}
	return m.theme.List.Row.Render("  " + line)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
