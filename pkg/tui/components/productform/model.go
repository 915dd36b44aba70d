// Package productform renders the product editor overlay: text fields, the
// tag editor, and the image staging strip.
package productform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/tui/components/taginput"
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

type focusField int

const (
	fieldName focusField = iota
	fieldPrice
	fieldUnits
	fieldDescription
	fieldCategory
	fieldTags
	fieldImages
)

var fieldLabels = map[focusField]string{
	fieldName:        "Name",
	fieldPrice:       "Price",
	fieldUnits:       "Units",
	fieldDescription: "Description",
	fieldCategory:    "Category",
	fieldTags:        "Tags",
	fieldImages:      "Images",
}

// fieldKeys maps focus fields to the validation keys used for inline errors.
var fieldKeys = map[focusField]string{
	fieldName:        "productName",
	fieldPrice:       "price",
	fieldUnits:       "units",
	fieldDescription: "description",
	fieldCategory:    "category.categoryName",
	fieldTags:        "tags",
	fieldImages:      "images",
}

// Model drives a product workflow session from the TUI.
type Model struct {
	id       events.ComponentID
	theme    theme.Theme
	workflow *workflow.Product

	focus  focusField
	inputs map[focusField]*textinput.Model
	tags   *taginput.Model

	imageErr string
	priceErr string
	width    int
}

// NewModel binds the overlay to an already opened workflow session.
func NewModel(w *workflow.Product) *Model {
	m := &Model{
		id:       events.ComponentID("productform"),
		theme:    theme.Default(),
		workflow: w,
		focus:    fieldName,
		inputs:   map[focusField]*textinput.Model{},
		tags:     taginput.NewModel(w.Tags()),
	}

	for _, f := range []focusField{fieldName, fieldPrice, fieldUnits, fieldDescription, fieldCategory, fieldImages} {
		in := textinput.New()
		in.Prompt = ""
		in.SetWidth(40)
		m.inputs[f] = &in
	}
	m.inputs[fieldImages].Placeholder = "path/to/image.png"

	m.seed()
	m.applyFocus()
	return m
}

// seed copies the open session's values into the text inputs.
func (m *Model) seed() {
	v := m.workflow.Form().Values()
	m.inputs[fieldName].SetValue(v.ProductName)
	if v.Price != nil {
		m.inputs[fieldPrice].SetValue(strconv.FormatFloat(*v.Price, 'f', -1, 64))
	}
	if v.Units != 0 {
		m.inputs[fieldUnits].SetValue(strconv.Itoa(v.Units))
	}
	m.inputs[fieldDescription].SetValue(v.Description)
	m.inputs[fieldCategory].SetValue(v.Category.CategoryName)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.inputs[fieldName].Focus()
}

// SetSize configures the overlay width.
func (m *Model) SetSize(width, _ int) {
	m.width = width
	w := width - 20
	if w < 20 {
		w = 20
	}
	for _, in := range m.inputs {
		in.SetWidth(w)
	}
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.routeToFocused(msg)
	}
	if m.submitting() {
		return m, nil
	}

	switch key.String() {
	case "tab":
		m.advanceFocus(1)
		return m, m.applyFocus()
	case "shift+tab":
		m.advanceFocus(-1)
		return m, m.applyFocus()
	case "esc":
		m.workflow.Close()
		return m, func() tea.Msg { return CancelledMsg{Component: m.id} }
	case "ctrl+s":
		return m, m.submitCmd()
	case "enter":
		switch m.focus {
		case fieldTags:
			return m, m.routeToFocused(msg)
		case fieldImages:
			m.stageCurrent()
			return m, nil
		default:
			return m, m.submitCmd()
		}
	case "backspace":
		if m.focus == fieldImages && m.inputs[fieldImages].Value() == "" {
			m.removeLastImage()
			return m, nil
		}
	}

	return m, m.routeToFocused(msg)
}

func (m *Model) routeToFocused(msg tea.Msg) tea.Cmd {
	if m.focus == fieldTags {
		var cmd tea.Cmd
		m.tags, cmd = m.tags.Update(msg)
		return cmd
	}

	in := m.inputs[m.focus]
	next, cmd := in.Update(msg)
	*in = next
	m.syncField()
	return cmd
}

// syncField pushes the focused input's value into the workflow so validation
// tracks what the operator sees.
func (m *Model) syncField() {
	val := m.inputs[m.focus].Value()
	switch m.focus {
	case fieldName:
		m.workflow.SetName(val)
	case fieldPrice:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			m.workflow.SetPrice(nil)
			m.priceErr = ""
		} else if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			m.workflow.SetPrice(catalog.Float(f))
			m.priceErr = ""
		} else {
			m.workflow.SetPrice(nil)
			m.priceErr = "must be a number"
		}
	case fieldUnits:
		n, _ := strconv.Atoi(strings.TrimSpace(val))
		m.workflow.SetUnits(n)
	case fieldDescription:
		m.workflow.SetDescription(val)
	case fieldCategory:
		m.workflow.SetCategory(val)
	}
}

func (m *Model) stageCurrent() {
	path := strings.TrimSpace(m.inputs[fieldImages].Value())
	if path == "" {
		return
	}
	if err := m.workflow.StageImages(path); err != nil {
		m.imageErr = err.Error()
		return
	}
	m.imageErr = ""
	m.inputs[fieldImages].SetValue("")
}

func (m *Model) removeLastImage() {
	n := len(m.workflow.ExistingImages()) + m.workflow.Staging().Len()
	if n == 0 {
		return
	}
	if err := m.workflow.RemoveImage(n - 1); err != nil {
		m.imageErr = err.Error()
		return
	}
	m.imageErr = ""
}

func (m *Model) advanceFocus(delta int) {
	const n = int(fieldImages) + 1
	m.focus = focusField((int(m.focus) + n + delta) % n)
}

func (m *Model) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for f, in := range m.inputs {
		if f == m.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	if m.focus == fieldTags {
		cmd = m.tags.Focus()
	} else {
		m.tags.Blur()
	}
	return cmd
}

func (m *Model) submitting() bool {
	f := m.workflow.Form()
	return f != nil && f.Submitting()
}

// submitCmd runs validation and the state transition here, on the UI
// goroutine; only the upload-and-write work runs inside the returned
// command. The outcome is applied when Finish receives the SubmittedMsg.
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

// Reset clears the inputs after a create submit left the session open for the
// next entry.
func (m *Model) Reset() {
	for _, in := range m.inputs {
		in.SetValue("")
	}
	m.tags.SetEditor(m.workflow.Tags())
	m.imageErr = ""
	m.priceErr = ""
	m.focus = fieldName
	m.applyFocus()
}

// State exposes the backing workflow state.
func (m *Model) State() workflow.State {
	return m.workflow.State()
}

// View renders the overlay.
func (m *Model) View() string {
	title := "New Product"
	if m.workflow.State() == workflow.StateEditing {
		title = "Edit Product"
	}

	lines := []string{m.theme.Form.Title.Render(title), ""}
	for _, f := range []focusField{fieldName, fieldPrice, fieldUnits, fieldDescription, fieldCategory} {
		lines = append(lines, m.renderRow(f, m.inputs[f].View()))
		lines = m.appendFieldError(lines, f)
	}
	lines = append(lines, m.renderRow(fieldTags, m.tags.View()))
	lines = m.appendFieldError(lines, fieldTags)
	lines = append(lines, m.renderRow(fieldImages, m.inputs[fieldImages].View()))
	lines = append(lines, m.renderImageStrip())
	if m.imageErr != "" {
		lines = append(lines, m.theme.Form.Error.Render(m.imageErr))
	}
	lines = m.appendFieldError(lines, fieldImages)

	if failure := m.workflow.Form().Failure(); failure != "" {
		lines = append(lines, "", m.theme.Form.Error.Render(failure))
	}

	hint := "Tab between fields • Enter to save • Esc to cancel"
	if m.focus == fieldTags {
		hint = "Enter to add tag • Backspace on empty removes last"
	}
	if m.focus == fieldImages {
		hint = "Enter to stage file • Backspace on empty removes last • Ctrl+S to save"
	}
	if m.workflow.Form().Submitting() {
		hint = "saving…"
	}
	lines = append(lines, "", m.theme.Form.Hint.Render(hint))

	return m.theme.Form.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderRow(f focusField, value string) string {
	label := fmt.Sprintf("%-13s", fieldLabels[f]+":")
	style := m.theme.Form.Label
	if f == m.focus {
		style = m.theme.Form.FocusLabel
	}
	return style.Render(label) + " " + value
}

func (m *Model) appendFieldError(lines []string, f focusField) []string {
	// A local parse failure is more specific than the required-field
	// message the empty price would otherwise produce.
	if f == fieldPrice && m.priceErr != "" {
		return append(lines, "              "+m.theme.Form.Error.Render(m.priceErr))
	}
	if msg, ok := m.workflow.Form().FieldError(fieldKeys[f]); ok {
		lines = append(lines, "              "+m.theme.Form.Error.Render(msg))
	}
	return lines
}

// renderImageStrip lists kept URLs and staged files in resolution order.
func (m *Model) renderImageStrip() string {
	existing := m.workflow.ExistingImages()
	staged := m.workflow.Staging().Staged()
	if len(existing)+len(staged) == 0 {
		return "              " + m.theme.List.Empty.Render("no images")
	}

	rows := make([]string, 0, len(existing)+len(staged))
	for _, u := range existing {
		rows = append(rows, "              "+m.theme.List.Dim.Render("url  ")+truncate(u, 48))
	}
	for _, s := range staged {
		label := fmt.Sprintf("%s (%s)", s.Name, byteSize(s.Size))
		if s.Preview.Width > 0 {
			label += fmt.Sprintf(" %dx%d", s.Preview.Width, s.Preview.Height)
		}
		rows = append(rows, "              "+m.theme.List.Dim.Render("file ")+label)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func byteSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
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
