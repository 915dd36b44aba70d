// Package app hosts the Bubble Tea program for the shopkeep TUI.
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/staging"
	cachepkg "tableflip.dev/shopkeep/pkg/tui/cache"
	"tableflip.dev/shopkeep/pkg/tui/components/categoryform"
	"tableflip.dev/shopkeep/pkg/tui/components/categorylist"
	"tableflip.dev/shopkeep/pkg/tui/components/productform"
	"tableflip.dev/shopkeep/pkg/tui/components/productlist"
	"tableflip.dev/shopkeep/pkg/tui/events"
	"tableflip.dev/shopkeep/pkg/tui/theme"
	"tableflip.dev/shopkeep/pkg/workflow"
)

type pane int

const (
	paneCategories pane = iota
	paneProducts
)

type confirmState struct {
	active bool
	kind   events.EditRequestKind
	id     string
	label  string
}

// Model is the root TUI model.
type Model struct {
	gw       gateway.Gateway
	uploader staging.Uploader
	cache    *cachepkg.Cache
	theme    theme.Theme

	categories *categorylist.Model
	products   *productlist.Model

	categoryOverlay *categoryform.Model
	productOverlay  *productform.Model

	focus   pane
	confirm confirmState

	status    string
	statusErr bool

	width  int
	height int
}

// New constructs the root model.
func New(gw gateway.Gateway, uploader staging.Uploader) *Model {
	m := &Model{
		gw:         gw,
		uploader:   uploader,
		cache:      cachepkg.New("cache"),
		theme:      theme.Default(),
		categories: categorylist.NewModel(),
		products:   productlist.NewModel(),
		focus:      paneProducts,
	}
	m.categories.Blur()
	m.products.Focus()
	return m
}

// Run launches the TUI against the provided gateway and uploader.
func Run(gw gateway.Gateway, uploader staging.Uploader) error {
	p := tea.NewProgram(New(gw, uploader), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalog(), m.waitForEvent())
}

// loadCatalog fetches both lists and delivers them in one message.
func (m *Model) loadCatalog() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx := context.Background()
		cats, err := gw.Categories(ctx)
		if err != nil {
			return events.CatalogErrMsg{Component: "app", Err: err}
		}
		prods, err := gw.Products(ctx)
		if err != nil {
			return events.CatalogErrMsg{Component: "app", Err: err}
		}
		return events.CatalogLoadedMsg{Component: "app", Categories: cats, Products: prods}
	}
}

// waitForEvent blocks on the cache channel; re-armed after every receive.
func (m *Model) waitForEvent() tea.Cmd {
	ch := m.cache.Events()
	return func() tea.Msg {
		return <-ch
	}
}

// refreshHook is handed to workflows; it fires after successful mutations.
func (m *Model) refreshHook() func(context.Context) {
	c := m.cache
	return func(context.Context) {
		c.RequestRefresh()
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case events.CatalogLoadedMsg:
		m.cache.SetCatalog(msg.Categories, msg.Products)
		m.categories.SetCategories(msg.Categories)
		m.products.SetProducts(m.cache.ProductsIn(m.categories.Filter()), m.categories.Filter())
		return m, nil

	case events.CatalogErrMsg:
		m.categories.SetError(msg.Err)
		m.products.SetError(msg.Err)
		m.setStatus(fmt.Sprintf("load failed: %v", msg.Err), true)
		return m, nil

	case events.RefreshRequestMsg:
		return m, tea.Batch(m.loadCatalog(), m.waitForEvent())

	case events.EditRequestMsg:
		return m, m.openOverlay(msg)

	case events.DeleteRequestMsg:
		m.confirm = confirmState{active: true, kind: msg.Kind, id: msg.ID, label: msg.Label}
		return m, nil

	case events.StatusMsg:
		m.setStatus(msg.Text, msg.IsError)
		return m, nil

	case categoryform.SubmittedMsg:
		return m, m.handleCategorySubmitted(msg)

	case productform.SubmittedMsg:
		return m, m.handleProductSubmitted(msg)

	case categoryform.CancelledMsg:
		m.categoryOverlay = nil
		return m, nil

	case productform.CancelledMsg:
		m.productOverlay = nil
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)
	}

	return m, m.routeToOverlay(msg)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.confirm.active {
		return m.handleConfirmKey(msg)
	}

	if m.categoryOverlay != nil || m.productOverlay != nil {
		return m, m.routeToOverlay(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.loadCatalog()
	case "tab", "left", "right", "h", "l":
		m.toggleFocus()
		return m, nil
	}

	return m, m.routeToPane(msg)
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		c := m.confirm
		m.confirm = confirmState{}
		return m, m.deleteCmd(c)
	case "n", "esc":
		m.confirm = confirmState{}
	}
	return m, nil
}

func (m *Model) deleteCmd(c confirmState) tea.Cmd {
	gw := m.gw
	hook := m.refreshHook()
	return func() tea.Msg {
		always := workflow.Confirm(func(string) bool { return true })
		var err error
		if c.kind == events.KindProduct {
			err = workflow.NewProduct(gw, nil, hook).Delete(context.Background(), c.id, always)
		} else {
			err = workflow.NewCategory(gw, hook).Delete(context.Background(), c.id, always)
		}
		if err != nil {
			return events.StatusMsg{Component: "app", Text: fmt.Sprintf("delete failed: %v", err), IsError: true}
		}
		return events.StatusMsg{Component: "app", Text: fmt.Sprintf("deleted %s", c.label)}
	}
}

func (m *Model) openOverlay(msg events.EditRequestMsg) tea.Cmd {
	switch msg.Kind {
	case events.KindProduct:
		w := workflow.NewProduct(m.gw, m.uploader, m.refreshHook())
		if msg.Product.ID != "" {
			w.OpenEdit(msg.Product)
		} else {
			w.OpenCreate()
			if f := m.categories.Filter(); f != "" {
				w.SetCategory(f)
			}
		}
		m.productOverlay = productform.NewModel(w)
		m.productOverlay.SetSize(m.overlayWidth(), m.height)
		return m.productOverlay.Init()
	default:
		w := workflow.NewCategory(m.gw, m.refreshHook())
		if msg.Category.ID != "" {
			w.OpenEdit(msg.Category)
		} else {
			w.OpenCreate()
		}
		m.categoryOverlay = categoryform.NewModel(w)
		m.categoryOverlay.SetSize(m.overlayWidth(), m.height)
		return m.categoryOverlay.Init()
	}
}

func (m *Model) handleCategorySubmitted(msg categoryform.SubmittedMsg) tea.Cmd {
	if m.categoryOverlay != nil {
		m.categoryOverlay.Finish(msg.Err)
	}
	if msg.Err != nil {
		if !categoryform.Invalid(msg.Err) {
			m.setStatus(fmt.Sprintf("save failed: %v", msg.Err), true)
		}
		return nil
	}
	if m.categoryOverlay == nil {
		return nil
	}
	m.setStatus("category saved", false)
	if !m.overlayStillOpen(true) {
		m.categoryOverlay = nil
		return nil
	}
	m.categoryOverlay.Reset()
	return nil
}

func (m *Model) handleProductSubmitted(msg productform.SubmittedMsg) tea.Cmd {
	if m.productOverlay != nil {
		m.productOverlay.Finish(msg.Err)
	}
	if msg.Err != nil {
		if !categoryform.Invalid(msg.Err) {
			m.setStatus(fmt.Sprintf("save failed: %v", msg.Err), true)
		}
		return nil
	}
	if m.productOverlay == nil {
		return nil
	}
	m.setStatus("product saved", false)
	if !m.overlayStillOpen(false) {
		m.productOverlay = nil
		return nil
	}
	m.productOverlay.Reset()
	return nil
}

// overlayStillOpen reports whether the workflow kept its session after a
// successful submit (create keeps editing, edit closes).
func (m *Model) overlayStillOpen(category bool) bool {
	if category {
		return m.categoryOverlay != nil && m.categoryOverlay.State() != workflow.StateClosed
	}
	return m.productOverlay != nil && m.productOverlay.State() != workflow.StateClosed
}

func (m *Model) routeToOverlay(msg tea.Msg) tea.Cmd {
	if m.categoryOverlay != nil {
		var cmd tea.Cmd
		m.categoryOverlay, cmd = m.categoryOverlay.Update(msg)
		return cmd
	}
	if m.productOverlay != nil {
		var cmd tea.Cmd
		m.productOverlay, cmd = m.productOverlay.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) routeToPane(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == paneCategories {
		prev := m.categories.Filter()
		m.categories, cmd = m.categories.Update(msg)
		if f := m.categories.Filter(); f != prev {
			m.products.SetProducts(m.cache.ProductsIn(f), f)
		}
		return cmd
	}
	m.products, cmd = m.products.Update(msg)
	return cmd
}

func (m *Model) toggleFocus() {
	if m.focus == paneCategories {
		m.focus = paneProducts
		m.categories.Blur()
		m.products.Focus()
		return
	}
	m.focus = paneCategories
	m.products.Blur()
	m.categories.Focus()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	side := width / 3
	if side < 24 {
		side = 24
	}
	main := width - side - 6
	if main < 30 {
		main = 30
	}
	body := height - 4
	if body < 6 {
		body = 6
	}
	m.categories.SetSize(side, body)
	m.products.SetSize(main, body)
	if m.categoryOverlay != nil {
		m.categoryOverlay.SetSize(m.overlayWidth(), height)
	}
	if m.productOverlay != nil {
		m.productOverlay.SetSize(m.overlayWidth(), height)
	}
}

func (m *Model) overlayWidth() int {
	w := m.width - 12
	if w < 40 {
		w = 40
	}
	if w > 90 {
		w = 90
	}
	return w
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.categoryOverlay != nil {
		return m.centerOverlay(m.categoryOverlay.View())
	}
	if m.productOverlay != nil {
		return m.centerOverlay(m.productOverlay.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.categories.View(), m.products.View())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer())
}

func (m *Model) centerOverlay(view string) string {
	if m.width <= 0 || m.height <= 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
}

func (m *Model) footer() string {
	if m.confirm.active {
		kind := "category"
		if m.confirm.kind == events.KindProduct {
			kind = "product"
		}
		return m.theme.Footer.Error.Render(
			fmt.Sprintf("delete %s %q? [y/n]", kind, m.confirm.label))
	}
	help := m.theme.Footer.Help.Render(
		"tab switch pane • n new • e edit • d delete • r reload • q quit")
	if m.status == "" {
		return help
	}
	style := m.theme.Footer.Status
	if m.statusErr {
		style = m.theme.Footer.Error
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, help, "  ", style.Render(m.status))
}
