package workflow

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/form"
)

type fakeGateway struct {
	categories []catalog.Category
	products   []catalog.Product

	createdCategories []catalog.Category
	updatedCategories []catalog.Category
	deletedCategories []string
	createdProducts   []catalog.Product
	updatedProducts   []catalog.Product
	deletedProducts   []string

	err error
}

func (g *fakeGateway) Categories(context.Context) ([]catalog.Category, error) {
	return g.categories, g.err
}

func (g *fakeGateway) CreateCategory(_ context.Context, c catalog.Category) error {
	if g.err != nil {
		return g.err
	}
	g.createdCategories = append(g.createdCategories, c)
	return nil
}

func (g *fakeGateway) UpdateCategory(_ context.Context, c catalog.Category) error {
	if g.err != nil {
		return g.err
	}
	g.updatedCategories = append(g.updatedCategories, c)
	return nil
}

func (g *fakeGateway) DeleteCategory(_ context.Context, id string) error {
	if g.err != nil {
		return g.err
	}
	g.deletedCategories = append(g.deletedCategories, id)
	return nil
}

func (g *fakeGateway) Products(context.Context) ([]catalog.Product, error) {
	return g.products, g.err
}

func (g *fakeGateway) CreateProduct(_ context.Context, p catalog.Product) error {
	if g.err != nil {
		return g.err
	}
	g.createdProducts = append(g.createdProducts, p)
	return nil
}

func (g *fakeGateway) UpdateProduct(_ context.Context, p catalog.Product) error {
	if g.err != nil {
		return g.err
	}
	g.updatedProducts = append(g.updatedProducts, p)
	return nil
}

func (g *fakeGateway) DeleteProduct(_ context.Context, id string) error {
	if g.err != nil {
		return g.err
	}
	g.deletedProducts = append(g.deletedProducts, id)
	return nil
}

type fakeUploader struct {
	fail  bool
	calls int
}

func (u *fakeUploader) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	u.calls++
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	if u.fail {
		return "", errors.New("upload failed: " + name)
	}
	return "https://host/" + name, nil
}

func writeTemp(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	return path
}

func TestCategoryCreate(t *testing.T) {
	gw := &fakeGateway{}
	refreshes := 0
	w := NewCategory(gw, func(context.Context) { refreshes++ })

	w.OpenCreate()
	if w.State() != StateCreating {
		t.Fatalf("state = %v", w.State())
	}
	w.SetName("  Shoes ")
	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(gw.createdCategories) != 1 {
		t.Fatalf("created = %v", gw.createdCategories)
	}
	if got := gw.createdCategories[0].CategoryName; got != "shoes" {
		t.Fatalf("categoryName = %q, want lowercased", got)
	}
	if refreshes != 1 {
		t.Fatalf("refreshes = %d, want exactly 1", refreshes)
	}
	// create flow stays open with a reset form for the next entry
	if w.State() != StateCreating {
		t.Fatalf("state after create = %v", w.State())
	}
	if got := w.Form().Values().CategoryName; got != "" {
		t.Fatalf("form not reset: %q", got)
	}
}

func TestCategoryValidationNeverReachesGateway(t *testing.T) {
	gw := &fakeGateway{}
	refreshes := 0
	w := NewCategory(gw, func(context.Context) { refreshes++ })

	w.OpenCreate()
	err := w.Submit(context.Background())
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if len(gw.createdCategories) != 0 || refreshes != 0 {
		t.Fatalf("invalid submit reached the gateway")
	}
	if msg, ok := w.Form().FieldError("categoryName"); !ok || msg == "" {
		t.Fatalf("missing inline error after submit attempt")
	}
}

func TestCategoryEditClosesOnSuccess(t *testing.T) {
	gw := &fakeGateway{}
	w := NewCategory(gw, nil)

	w.OpenEdit(catalog.Category{ID: "c1", CategoryName: "home"})
	w.SetName("garden")
	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if w.State() != StateClosed {
		t.Fatalf("state = %v, want closed", w.State())
	}
	if len(gw.updatedCategories) != 1 || gw.updatedCategories[0].ID != "c1" {
		t.Fatalf("updated = %v", gw.updatedCategories)
	}
}

func TestCategorySubmitFailureKeepsSession(t *testing.T) {
	gw := &fakeGateway{err: errors.New("gateway: status 500")}
	w := NewCategory(gw, nil)

	w.OpenEdit(catalog.Category{ID: "c1", CategoryName: "home"})
	w.SetName("garden")
	if err := w.Submit(context.Background()); err == nil {
		t.Fatalf("expected submit failure")
	}
	if w.State() != StateEditing {
		t.Fatalf("state = %v, want editing for retry", w.State())
	}
	if got := w.Form().Values().CategoryName; got != "garden" {
		t.Fatalf("values lost: %q", got)
	}
	if w.Form().Failure() == "" {
		t.Fatalf("session error not surfaced")
	}
}

func TestCategoryDelete(t *testing.T) {
	gw := &fakeGateway{}
	refreshes := 0
	w := NewCategory(gw, func(context.Context) { refreshes++ })

	err := w.Delete(context.Background(), "c1", func(string) bool { return false })
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("err = %v, want ErrDeclined", err)
	}
	if len(gw.deletedCategories) != 0 {
		t.Fatalf("declined delete reached the gateway")
	}

	if err := w.Delete(context.Background(), "c1", func(string) bool { return true }); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !reflect.DeepEqual(gw.deletedCategories, []string{"c1"}) {
		t.Fatalf("deleted = %v", gw.deletedCategories)
	}
	if refreshes != 1 {
		t.Fatalf("refreshes = %d", refreshes)
	}
}

func TestProductCreateScenario(t *testing.T) {
	gw := &fakeGateway{}
	refreshes := 0
	w := NewProduct(gw, &fakeUploader{}, func(context.Context) { refreshes++ })

	w.OpenCreate()
	w.SetName("Mug")
	w.SetPrice(catalog.Float(10))
	w.SetDescription("Ceramic")
	w.SetUnits(5)
	w.SetCategory("home")
	w.Tags().SetScratch("kitchen")
	w.Tags().Commit()
	if err := w.StageImages(writeTemp(t, "a.png")); err != nil {
		t.Fatalf("stage: %v", err)
	}

	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(gw.createdProducts) != 1 {
		t.Fatalf("created = %v", gw.createdProducts)
	}
	got := gw.createdProducts[0]
	if !reflect.DeepEqual(got.Images, []string{"https://host/a.png"}) {
		t.Fatalf("images = %v, want resolved URL only", got.Images)
	}
	if !reflect.DeepEqual(got.Tags, []string{"kitchen"}) {
		t.Fatalf("tags = %v", got.Tags)
	}
	if got.ProductName != "Mug" || got.Category.CategoryName != "home" {
		t.Fatalf("product = %+v", got)
	}
	if refreshes != 1 {
		t.Fatalf("refreshes = %d, want exactly 1", refreshes)
	}
	// create flow resets for the next product
	if w.State() != StateCreating {
		t.Fatalf("state = %v", w.State())
	}
	if w.Staging().Len() != 0 || len(w.Tags().Tags()) != 0 {
		t.Fatalf("session not reset after create")
	}
}

func TestProductUploadFailureAbortsWrite(t *testing.T) {
	gw := &fakeGateway{}
	up := &fakeUploader{fail: true}
	refreshes := 0
	w := NewProduct(gw, up, func(context.Context) { refreshes++ })

	w.OpenCreate()
	w.SetName("Mug")
	w.SetPrice(catalog.Float(10))
	w.SetDescription("Ceramic")
	w.SetUnits(5)
	w.SetCategory("home")
	w.Tags().SetScratch("kitchen")
	w.Tags().Commit()
	if err := w.StageImages(writeTemp(t, "a.png"), writeTemp(t, "b.png")); err != nil {
		t.Fatalf("stage: %v", err)
	}

	if err := w.Submit(context.Background()); err == nil {
		t.Fatalf("expected submit failure")
	}
	if len(gw.createdProducts) != 0 {
		t.Fatalf("gateway write happened despite failed upload")
	}
	if refreshes != 0 {
		t.Fatalf("refresh fired on failed submit")
	}
	if w.Staging().Len() != 2 {
		t.Fatalf("staged = %d, want 2 kept for retry", w.Staging().Len())
	}

	// retry without re-staging
	up.fail = false
	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(gw.createdProducts) != 1 {
		t.Fatalf("created = %v", gw.createdProducts)
	}
}

func TestProductEditMergesExistingAndResolved(t *testing.T) {
	gw := &fakeGateway{}
	w := NewProduct(gw, &fakeUploader{}, nil)

	w.OpenEdit(catalog.Product{
		ID:          "p1",
		ProductName: "Mug",
		Price:       catalog.Float(10),
		Description: "Ceramic",
		Units:       5,
		Images:      []string{"https://host/old.png"},
		Category:    catalog.CategoryRef{CategoryName: "home"},
		Tags:        []string{"kitchen"},
	})
	if err := w.StageImages(writeTemp(t, "new.png")); err != nil {
		t.Fatalf("stage: %v", err)
	}

	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(gw.updatedProducts) != 1 {
		t.Fatalf("updated = %v", gw.updatedProducts)
	}
	want := []string{"https://host/old.png", "https://host/new.png"}
	if got := gw.updatedProducts[0].Images; !reflect.DeepEqual(got, want) {
		t.Fatalf("images = %v, want %v", got, want)
	}
	if w.State() != StateClosed {
		t.Fatalf("edit session should close on success")
	}
}

func TestProductRemoveImage(t *testing.T) {
	w := NewProduct(&fakeGateway{}, &fakeUploader{}, nil)
	w.OpenEdit(catalog.Product{
		ID:     "p1",
		Images: []string{"https://host/a.png", "https://host/b.png"},
	})
	if err := w.StageImages(writeTemp(t, "c.png")); err != nil {
		t.Fatalf("stage: %v", err)
	}

	if err := w.RemoveImage(0); err != nil {
		t.Fatalf("remove existing: %v", err)
	}
	if got := w.ExistingImages(); !reflect.DeepEqual(got, []string{"https://host/b.png"}) {
		t.Fatalf("existing = %v", got)
	}

	if err := w.RemoveImage(1); err != nil {
		t.Fatalf("remove staged: %v", err)
	}
	if w.Staging().Len() != 0 {
		t.Fatalf("staged = %d", w.Staging().Len())
	}

	want := []string{"https://host/b.png"}
	if got := w.Form().Values().Images; !reflect.DeepEqual(got, want) {
		t.Fatalf("form images = %v, want %v", got, want)
	}
}

func TestProductMissingImageBlocksSubmit(t *testing.T) {
	gw := &fakeGateway{}
	up := &fakeUploader{}
	w := NewProduct(gw, up, nil)

	w.OpenCreate()
	w.SetName("Mug")
	w.SetPrice(catalog.Float(10))
	w.SetDescription("Ceramic")
	w.SetUnits(5)
	w.SetCategory("home")
	w.Tags().SetScratch("kitchen")
	w.Tags().Commit()

	err := w.Submit(context.Background())
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if up.calls != 0 || len(gw.createdProducts) != 0 {
		t.Fatalf("invalid product touched the network")
	}
	if msg, ok := w.Form().FieldError("images"); !ok || msg == "" {
		t.Fatalf("missing images error")
	}
}

func TestProductDelete(t *testing.T) {
	gw := &fakeGateway{}
	refreshes := 0
	w := NewProduct(gw, &fakeUploader{}, func(context.Context) { refreshes++ })

	if err := w.Delete(context.Background(), "p1", func(string) bool { return true }); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !reflect.DeepEqual(gw.deletedProducts, []string{"p1"}) {
		t.Fatalf("deleted = %v", gw.deletedProducts)
	}
	if refreshes != 1 {
		t.Fatalf("refreshes = %d", refreshes)
	}
}

func TestCategorySubmitPhases(t *testing.T) {
	gw := &fakeGateway{}
	refreshes := 0
	w := NewCategory(gw, func(context.Context) { refreshes++ })

	w.OpenCreate()
	w.SetName("shoes")

	action, err := w.BeginSubmit()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if w.State() != StateSubmitting {
		t.Fatalf("state = %v, want submitting", w.State())
	}
	if !w.Form().Submitting() {
		t.Fatalf("form not marked submitting")
	}
	if len(gw.createdCategories) != 0 {
		t.Fatalf("gateway written before the action ran")
	}

	if err := action(context.Background()); err != nil {
		t.Fatalf("action: %v", err)
	}
	if refreshes != 0 {
		t.Fatalf("refresh fired before the outcome was applied")
	}

	w.FinishSubmit(context.Background(), nil)
	if w.State() != StateCreating {
		t.Fatalf("state = %v, want creating", w.State())
	}
	if w.Form().Submitting() {
		t.Fatalf("submitting flag not cleared")
	}
	if refreshes != 1 {
		t.Fatalf("refreshes = %d, want 1", refreshes)
	}
	if len(gw.createdCategories) != 1 {
		t.Fatalf("created = %v", gw.createdCategories)
	}
}

func TestProductSubmitPhaseFailureRestoresSession(t *testing.T) {
	gw := &fakeGateway{}
	w := NewProduct(gw, &fakeUploader{}, nil)
	w.OpenEdit(catalog.Product{
		ID:          "p1",
		ProductName: "Mug",
		Price:       catalog.Float(10),
		Description: "Ceramic",
		Units:       2,
		Images:      []string{"https://host/a.png"},
		Category:    catalog.CategoryRef{CategoryName: "home"},
	})

	action, err := w.BeginSubmit()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if w.State() != StateSubmitting {
		t.Fatalf("state = %v, want submitting", w.State())
	}

	gw.err = errors.New("gateway: status 500")
	err = action(context.Background())
	if err == nil {
		t.Fatal("expected gateway failure")
	}

	w.FinishSubmit(context.Background(), err)
	if w.State() != StateEditing {
		t.Fatalf("state = %v, want editing restored", w.State())
	}
	if w.Form().Submitting() {
		t.Fatalf("submitting flag not cleared")
	}
	if w.Form().Failure() == "" {
		t.Fatal("session failure not recorded")
	}
}
