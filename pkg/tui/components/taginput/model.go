// Package taginput renders an editable tag list: committed tags as chips,
// followed by a free-text scratch input.
package taginput

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/shopkeep/pkg/tags"
	"tableflip.dev/shopkeep/pkg/tui/theme"
)

// Model wraps a tags.Editor with a text input for the scratch value.
type Model struct {
	editor *tags.Editor
	input  textinput.Model
	theme  theme.Theme

	focused bool
	errMsg  string
}

// NewModel binds the component to an existing editor. The editor is shared
// with the workflow that owns the form session.
func NewModel(editor *tags.Editor) *Model {
	in := textinput.New()
	in.Placeholder = "add tag…"
	in.Prompt = ""
	in.SetWidth(24)

	return &Model{
		editor: editor,
		input:  in,
		theme:  theme.Default(),
	}
}

// SetEditor swaps the backing editor, used when a new form session opens.
func (m *Model) SetEditor(editor *tags.Editor) {
	m.editor = editor
	m.input.SetValue("")
	m.errMsg = ""
}

// Focus gives the scratch input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// Focused reports whether the scratch input has focus.
func (m *Model) Focused() bool {
	return m.focused
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update processes Bubble Tea messages. Enter commits the scratch value as a
// tag; backspace on an empty scratch removes the most recent tag.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.focused || m.editor == nil {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.editor.SetScratch(m.input.Value())
			if !m.editor.Commit() {
				m.errMsg = "tag must not be blank"
				return m, nil
			}
			m.input.SetValue("")
			m.errMsg = ""
			return m, nil
		case "backspace":
			if m.input.Value() == "" {
				m.editor.PopLast()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.editor.SetScratch(m.input.Value())
	return m, cmd
}

// View renders committed chips followed by the scratch input.
func (m *Model) View() string {
	if m.editor == nil {
		return m.input.View()
	}

	chips := make([]string, 0, len(m.editor.Tags())+1)
	for _, t := range m.editor.Tags() {
		chips = append(chips, m.theme.Form.Chip.Render(t))
	}
	chips = append(chips, m.input.View())
	line := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(chips, " "))
	if m.errMsg != "" {
		line += "  " + m.theme.Form.Error.Render(m.errMsg)
	}
	return line
}
