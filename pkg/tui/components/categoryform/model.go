// Package categoryform renders the category editor overlay.
package categoryform

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/shopkeep/pkg/form"
	"tableflip.dev/shopkeep/pkg/tui/events"
	"tableflip.dev/shopkeep/pkg/tui/theme"
	"tableflip.dev/shopkeep/pkg/workflow"
)

// SubmittedMsg reports the outcome of an async submit.
type SubmittedMsg struct {
	Component events.ComponentID
	Err       error
}

// CancelledMsg reports the overlay was dismissed without saving.
type CancelledMsg struct {
	Component events.ComponentID
}

// Model drives a category workflow session from the TUI.
type Model struct {
	id       events.ComponentID
	theme    theme.Theme
	workflow *workflow.Category

	input textinput.Model
	width int
}

// NewModel binds the overlay to an already opened workflow session.
func NewModel(w *workflow.Category) *Model {
	in := textinput.New()
	in.Placeholder = "category name"
	in.Prompt = ""
	in.SetWidth(32)
	in.SetValue(w.Form().Values().CategoryName)

	return &Model{
		id:       events.ComponentID("categoryform"),
		theme:    theme.Default(),
		workflow: w,
		input:    in,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.input.Focus()
}

// SetSize configures the overlay width.
func (m *Model) SetSize(width, _ int) {
	m.width = width
	if width > 16 {
		m.input.SetWidth(width - 12)
	}
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.submitting() {
			return m, nil
		}
		switch key.String() {
		case "enter":
			return m, m.submitCmd()
		case "esc":
			m.workflow.Close()
			return m, func() tea.Msg { return CancelledMsg{Component: m.id} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.workflow.SetName(m.input.Value())
	return m, cmd
}

func (m *Model) submitting() bool {
	f := m.workflow.Form()
	return f != nil && f.Submitting()
}

// submitCmd runs validation and the state transition here, on the UI
// goroutine; only the gateway write runs inside the returned command. The
// outcome is applied when Finish receives the SubmittedMsg.
func (m *Model) submitCmd() tea.Cmd {
	action, err := m.workflow.BeginSubmit()
	if err != nil {
		return func() tea.Msg { return SubmittedMsg{Component: m.id, Err: err} }
	}
	id := m.id
	return func() tea.Msg {
		return SubmittedMsg{Component: id, Err: action(context.Background())}
	}
}

// Finish applies a submit outcome to the workflow.
func (m *Model) Finish(err error) {
	m.workflow.FinishSubmit(context.Background(), err)
}

// Reset clears the input after a create submit left the session open for the
// next entry.
func (m *Model) Reset() {
	m.input.SetValue("")
}

// State exposes the backing workflow state.
func (m *Model) State() workflow.State {
	return m.workflow.State()
}

// View renders the overlay.
func (m *Model) View() string {
	title := "New Category"
	if m.workflow.State() == workflow.StateEditing {
		title = "Edit Category"
	}

	lines := []string{
		m.theme.Form.Title.Render(title),
		"",
		m.theme.Form.FocusLabel.Render("Name: ") + m.input.View(),
	}
	if msg, ok := m.workflow.Form().FieldError("categoryName"); ok {
		lines = append(lines, m.theme.Form.Error.Render(msg))
	}
	if failure := m.workflow.Form().Failure(); failure != "" {
		lines = append(lines, m.theme.Form.Error.Render(failure))
	}
	hint := "Enter to save • Esc to cancel"
	if m.workflow.Form().Submitting() {
		hint = "saving…"
	}
	lines = append(lines, "", m.theme.Form.Hint.Render(hint))

	return m.theme.Form.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Invalid reports whether the last submit failed validation, so the app can
// keep the overlay up.
func Invalid(err error) bool {
	return errors.Is(err, form.ErrInvalid)
}
