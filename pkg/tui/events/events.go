package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/shopkeep/pkg/catalog"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// CatalogLoadedMsg carries a fresh snapshot of the catalog after a fetch.
type CatalogLoadedMsg struct {
	Component  ComponentID
	Categories []catalog.Category
	Products   []catalog.Product
}

// Describe renders the load in a human-friendly format for logs.
func (m CatalogLoadedMsg) Describe() string {
	return fmt.Sprintf(`categories:%d products:%d`, len(m.Categories), len(m.Products))
}

// CatalogErrMsg reports a failed catalog fetch.
type CatalogErrMsg struct {
	Component ComponentID
	Err       error
}

// Describe renders the error for logs.
func (m CatalogErrMsg) Describe() string {
	return fmt.Sprintf(`err:%q`, m.Err)
}

// RefreshRequestMsg asks the app to re-fetch the catalog. Emitted after every
// successful mutation; the reloaded list is authoritative.
type RefreshRequestMsg struct {
	Component ComponentID
}

// Describe renders the request for logs.
func (m RefreshRequestMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// CategorySelectMsg is emitted when the user activates a category row.
type CategorySelectMsg struct {
	Component ComponentID
	Category  catalog.Category
}

// Describe renders the selection for logs.
func (m CategorySelectMsg) Describe() string {
	return fmt.Sprintf(`name:%q`, m.Category.CategoryName)
}

// EditRequestKind names the entity an edit or delete request targets.
type EditRequestKind string

const (
	KindCategory EditRequestKind = "category"
	KindProduct  EditRequestKind = "product"
)

// EditRequestMsg asks the root model to open an editor overlay. A zero ID
// means create.
type EditRequestMsg struct {
	Component ComponentID
	Kind      EditRequestKind
	Category  catalog.Category
	Product   catalog.Product
}

// Describe renders the edit request for logs.
func (m EditRequestMsg) Describe() string {
	switch m.Kind {
	case KindProduct:
		return fmt.Sprintf(`kind:%q id:%q`, m.Kind, m.Product.ID)
	default:
		return fmt.Sprintf(`kind:%q id:%q`, m.Kind, m.Category.ID)
	}
}

// EditRequestCmd wraps EditRequestMsg into a tea.Cmd.
func EditRequestCmd(component ComponentID, kind EditRequestKind, c catalog.Category, p catalog.Product) tea.Cmd {
	return func() tea.Msg {
		return EditRequestMsg{Component: component, Kind: kind, Category: c, Product: p}
	}
}

// DeleteRequestMsg asks the root model to confirm and delete an entity.
type DeleteRequestMsg struct {
	Component ComponentID
	Kind      EditRequestKind
	ID        string
	Label     string
}

// Describe renders the delete request for logs.
func (m DeleteRequestMsg) Describe() string {
	return fmt.Sprintf(`kind:%q id:%q`, m.Kind, m.ID)
}

// DeleteRequestCmd wraps DeleteRequestMsg into a tea.Cmd.
func DeleteRequestCmd(component ComponentID, kind EditRequestKind, id, label string) tea.Cmd {
	return func() tea.Msg {
		return DeleteRequestMsg{Component: component, Kind: kind, ID: id, Label: label}
	}
}

// StatusMsg carries a transient line for the footer.
type StatusMsg struct {
	Component ComponentID
	Text      string
	IsError   bool
}

// Describe renders the status line for logs.
func (m StatusMsg) Describe() string {
	return fmt.Sprintf(`text:%q error:%t`, m.Text, m.IsError)
}

// StatusCmd wraps StatusMsg into a tea.Cmd.
func StatusCmd(component ComponentID, text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Component: component, Text: text, IsError: isError}
	}
}

// FocusMsg indicates a component just gained focus.
type FocusMsg struct {
	Component ComponentID
}

// BlurMsg indicates a component just lost focus.
type BlurMsg struct {
	Component ComponentID
}

// FocusCmd wraps a FocusMsg in a tea.Cmd helper.
func FocusCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FocusMsg{Component: component}
	}
}

// BlurCmd wraps a BlurMsg in a tea.Cmd helper.
func BlurCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return BlurMsg{Component: component}
	}
}
