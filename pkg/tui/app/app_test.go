package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/tui/components/categoryform"
	"tableflip.dev/shopkeep/pkg/tui/events"
)

type fakeGateway struct {
	categories []catalog.Category
	products   []catalog.Product

	created   []catalog.Category
	deleted   []string
	deleteErr error
}

func (g *fakeGateway) Categories(context.Context) ([]catalog.Category, error) {
	return append([]catalog.Category(nil), g.categories...), nil
}

func (g *fakeGateway) CreateCategory(_ context.Context, c catalog.Category) error {
	g.created = append(g.created, c)
	return nil
}

func (g *fakeGateway) UpdateCategory(_ context.Context, c catalog.Category) error {
	return nil
}

func (g *fakeGateway) DeleteCategory(_ context.Context, id string) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.deleted = append(g.deleted, id)
	return nil
}

func (g *fakeGateway) Products(context.Context) ([]catalog.Product, error) {
	return append([]catalog.Product(nil), g.products...), nil
}

func (g *fakeGateway) CreateProduct(context.Context, catalog.Product) error { return nil }
func (g *fakeGateway) UpdateProduct(context.Context, catalog.Product) error { return nil }
func (g *fakeGateway) DeleteProduct(_ context.Context, id string) error {
	g.deleted = append(g.deleted, id)
	return nil
}

func loaded(gw *fakeGateway) events.CatalogLoadedMsg {
	return events.CatalogLoadedMsg{
		Component:  "test",
		Categories: gw.categories,
		Products:   gw.products,
	}
}

func newTestApp(gw *fakeGateway) *Model {
	m := New(gw, nil)
	m.resize(100, 30)
	return m
}

func TestLoadedPopulatesPanes(t *testing.T) {
	gw := &fakeGateway{
		categories: []catalog.Category{{ID: "1", CategoryName: "mugs"}},
		products: []catalog.Product{{
			ID: "p1", ProductName: "Enamel Mug",
			Price:    catalog.Float(12),
			Category: catalog.CategoryRef{CategoryName: "mugs"},
		}},
	}
	m := newTestApp(gw)

	next, _ := m.Update(loaded(gw))
	m = next.(*Model)

	view := m.View()
	if !strings.Contains(view, "mugs") || !strings.Contains(view, "Enamel Mug") {
		t.Fatalf("view missing catalog rows:\n%s", view)
	}
}

func TestRefreshRequestReloads(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestApp(gw)

	next, cmd := m.Update(events.RefreshRequestMsg{Component: "cache"})
	m = next.(*Model)
	if cmd == nil {
		t.Fatalf("refresh request produced no reload cmd")
	}
}

func TestEditRequestOpensCategoryOverlay(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestApp(gw)

	next, _ := m.Update(events.EditRequestMsg{
		Component: "test",
		Kind:      events.KindCategory,
	})
	m = next.(*Model)

	if m.categoryOverlay == nil {
		t.Fatalf("overlay not opened")
	}
	if view := m.View(); !strings.Contains(view, "New Category") {
		t.Fatalf("overlay view missing title:\n%s", view)
	}
}

func TestSubmittedEditClosesOverlay(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestApp(gw)

	next, _ := m.Update(events.EditRequestMsg{
		Component: "test",
		Kind:      events.KindCategory,
		Category:  catalog.Category{ID: "1", CategoryName: "mugs"},
	})
	m = next.(*Model)
	if m.categoryOverlay == nil {
		t.Fatalf("overlay not opened")
	}

	// Enter hands back an async submit cmd; running it performs the real
	// submit, and an edit session closes its workflow on success.
	overlay, cmd := m.categoryOverlay.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m.categoryOverlay = overlay
	if cmd == nil {
		t.Fatalf("enter produced no submit cmd")
	}
	raw := cmd()
	msg, ok := raw.(categoryform.SubmittedMsg)
	if !ok {
		t.Fatalf("submit cmd returned %T", raw)
	}
	if msg.Err != nil {
		t.Fatalf("submit failed: %v", msg.Err)
	}

	next, _ = m.Update(msg)
	m = next.(*Model)
	if m.categoryOverlay != nil {
		t.Fatalf("overlay still open after successful edit submit")
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestApp(gw)

	next, _ := m.Update(events.DeleteRequestMsg{
		Component: "test",
		Kind:      events.KindCategory,
		ID:        "1",
		Label:     "mugs",
	})
	m = next.(*Model)
	if !m.confirm.active {
		t.Fatalf("confirm state not armed")
	}
	if view := m.View(); !strings.Contains(view, `delete category "mugs"?`) {
		t.Fatalf("footer missing confirm prompt:\n%s", view)
	}

	next, cmd := m.Update(tea.KeyPressMsg{Text: "y", Code: 'y'})
	m = next.(*Model)
	if m.confirm.active {
		t.Fatalf("confirm state not cleared")
	}
	if cmd == nil {
		t.Fatalf("expected delete cmd")
	}
	if msg := cmd(); msg == nil {
		t.Fatalf("delete cmd returned nil msg")
	}
	if len(gw.deleted) != 1 || gw.deleted[0] != "1" {
		t.Fatalf("deleted = %v, want [1]", gw.deleted)
	}
}

func TestStatusMessageShownInFooter(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestApp(gw)

	next, _ := m.Update(events.StatusMsg{Component: "test", Text: "deleted mugs"})
	m = next.(*Model)

	if view := m.View(); !strings.Contains(view, "deleted mugs") {
		t.Fatalf("footer missing status:\n%s", view)
	}
}

func TestDeleteFailureReachesFooter(t *testing.T) {
	gw := &fakeGateway{deleteErr: errors.New("gateway: status 500")}
	m := newTestApp(gw)

	next, _ := m.Update(events.DeleteRequestMsg{
		Component: "test", Kind: events.KindCategory, ID: "1", Label: "mugs",
	})
	m = next.(*Model)
	next, cmd := m.Update(tea.KeyPressMsg{Text: "y", Code: 'y'})
	m = next.(*Model)
	if cmd == nil {
		t.Fatal("expected delete cmd")
	}

	next, _ = m.Update(cmd())
	m = next.(*Model)
	if view := m.View(); !strings.Contains(view, "delete failed") {
		t.Fatalf("delete failure not surfaced:\n%s", view)
	}
}

func TestDeleteDeclined(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestApp(gw)

	next, _ := m.Update(events.DeleteRequestMsg{
		Component: "test", Kind: events.KindCategory, ID: "1", Label: "mugs",
	})
	m = next.(*Model)

	next, cmd := m.Update(tea.KeyPressMsg{Text: "n", Code: 'n'})
	m = next.(*Model)
	if m.confirm.active {
		t.Fatalf("confirm state not cleared")
	}
	if cmd != nil {
		t.Fatalf("declined confirm still produced a cmd")
	}
	if len(gw.deleted) != 0 {
		t.Fatalf("declined delete reached the gateway: %v", gw.deleted)
	}
}
