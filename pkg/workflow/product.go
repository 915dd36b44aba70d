package workflow

import (
	"context"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/form"
	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/staging"
	"tableflip.dev/shopkeep/pkg/tags"
	"tableflip.dev/shopkeep/pkg/validation"
)

// ProductFields names every field the product form can touch; the keys match
// the validation contract.
var ProductFields = []string{
	"productName",
	"price",
	"description",
	"units",
	"tags",
	"images",
	"category.categoryName",
}

// Product runs create/edit/delete for products. On top of the form it owns
// the tag editor and one image staging pipeline per session; staged files
// are resolved to hosted URLs before anything reaches the gateway.
type Product struct {
	gw        gateway.Gateway
	uploader  staging.Uploader
	onRefresh func(context.Context)

	state    State
	prev     State
	form     *form.Controller[catalog.Product]
	staging  *staging.Pipeline
	tags     *tags.Editor
	existing []string // already-hosted URLs carried into an edit session
}

func NewProduct(gw gateway.Gateway, uploader staging.Uploader, onRefresh func(context.Context)) *Product {
	return &Product{gw: gw, uploader: uploader, onRefresh: notify(onRefresh)}
}

func (w *Product) State() State {
	return w.state
}

func (w *Product) Form() *form.Controller[catalog.Product] {
	return w.form
}

// Tags exposes the session's tag editor; nil while closed.
func (w *Product) Tags() *tags.Editor {
	return w.tags
}

// Staging exposes the session's image pipeline; nil while closed.
func (w *Product) Staging() *staging.Pipeline {
	return w.staging
}

// ExistingImages lists the hosted URLs already on the entity being edited.
func (w *Product) ExistingImages() []string {
	out := make([]string, len(w.existing))
	copy(out, w.existing)
	return out
}

// OpenCreate starts a session over an empty product.
func (w *Product) OpenCreate() {
	w.openSession(form.Create, catalog.Product{})
}

// OpenEdit starts a session seeded with the product's current values. Its
// hosted image URLs and tags come along as-is; nothing is re-staged.
func (w *Product) OpenEdit(p catalog.Product) {
	w.openSession(form.Edit, p)
}

func (w *Product) openSession(mode form.Mode, seed catalog.Product) {
	w.form = form.New(mode, ProductFields,
		func() catalog.Product { return catalog.Product{} },
		validation.Product,
		w.write,
	)
	if mode == form.Edit {
		w.form.Seed(seed)
		w.existing = append([]string(nil), seed.Images...)
	} else {
		w.existing = nil
	}
	w.staging = staging.New(w.uploader)
	w.resetTagEditor(seed.Tags)
	w.syncImages()
	if mode == form.Edit {
		w.state = StateEditing
	} else {
		w.state = StateCreating
	}
}

func (w *Product) resetTagEditor(current []string) {
	w.tags = tags.NewEditor(current, func(list []string) {
		if w.form == nil {
			return
		}
		w.form.Apply(func(p *catalog.Product) { p.Tags = list })
	})
}

func (w *Product) SetName(name string) {
	w.setField("productName", func(p *catalog.Product) { p.ProductName = name })
}

func (w *Product) SetPrice(price *float64) {
	w.setField("price", func(p *catalog.Product) { p.Price = price })
}

func (w *Product) SetDescription(desc string) {
	w.setField("description", func(p *catalog.Product) { p.Description = desc })
}

func (w *Product) SetUnits(units int) {
	w.setField("units", func(p *catalog.Product) { p.Units = units })
}

func (w *Product) SetCategory(name string) {
	w.setField("category.categoryName", func(p *catalog.Product) {
		p.Category.CategoryName = name
	})
}

func (w *Product) setField(name string, mutate func(*catalog.Product)) {
	if w.form == nil {
		return
	}
	w.form.SetField(name, mutate)
}

// StageImages stages local files for upload. The form's images field tracks
// the combined set (existing URLs plus staged files) so the at-least-one
// rule validates against what the entity will actually hold.
func (w *Product) StageImages(paths ...string) error {
	if w.staging == nil {
		return ErrNotOpen
	}
	if err := w.staging.Stage(paths...); err != nil {
		return err
	}
	w.syncImages()
	return nil
}

// RemoveImage drops one entry from the combined image list: an existing
// hosted URL by its position, or a staged file (releasing its preview).
func (w *Product) RemoveImage(i int) error {
	if w.staging == nil {
		return ErrNotOpen
	}
	if i >= 0 && i < len(w.existing) {
		w.existing = append(w.existing[:i], w.existing[i+1:]...)
		w.syncImages()
		return nil
	}
	if err := w.staging.Unstage(i - len(w.existing)); err != nil {
		return err
	}
	w.syncImages()
	return nil
}

func (w *Product) syncImages() {
	if w.form == nil {
		return
	}
	combined := append(w.ExistingImages(), w.staging.Names()...)
	w.form.Apply(func(p *catalog.Product) { p.Images = combined })
}

// BeginSubmit validates the open session and flips it into the submitting
// state. The returned action resolves staged images and writes the product
// over a snapshot captured here, so a caller may run it off the owning
// goroutine and report the outcome back through FinishSubmit. A failed
// upload aborts before any gateway write; staged files stay staged for
// retry.
func (w *Product) BeginSubmit() (func(context.Context) error, error) {
	if w.form == nil || w.state == StateClosed {
		return nil, ErrNotOpen
	}
	values, err := w.form.BeginSubmit()
	if err != nil {
		return nil, err
	}
	w.prev = w.state
	w.state = StateSubmitting
	gw := w.gw
	pipeline := w.staging
	existing := w.ExistingImages()
	return func(ctx context.Context) error {
		return writeProduct(ctx, gw, pipeline, existing, values)
	}, nil
}

// FinishSubmit applies a submit outcome on the goroutine that owns the
// session.
func (w *Product) FinishSubmit(ctx context.Context, err error) {
	if w.form == nil || w.state != StateSubmitting {
		return
	}
	w.form.FinishSubmit(err)
	switch {
	case err != nil:
		w.state = w.prev
	case w.form.Closed():
		w.staging.Discard()
		w.state = StateClosed
		w.form = nil
		w.tags = nil
		w.staging = nil
		w.onRefresh(ctx)
	default:
		// create flow: the form reset already happened, start a fresh
		// staging session for the next product
		w.staging.Discard()
		w.existing = nil
		w.staging = staging.New(w.uploader)
		w.resetTagEditor(nil)
		w.syncImages()
		w.state = StateCreating
		w.onRefresh(ctx)
	}
}

// Submit validates, resolves staged images, and writes the product
// synchronously.
func (w *Product) Submit(ctx context.Context) error {
	action, err := w.BeginSubmit()
	if err != nil {
		return err
	}
	err = action(ctx)
	w.FinishSubmit(ctx, err)
	return err
}

func (w *Product) write(ctx context.Context, p catalog.Product) error {
	return writeProduct(ctx, w.gw, w.staging, w.ExistingImages(), p)
}

func writeProduct(ctx context.Context, gw gateway.Gateway, pipeline *staging.Pipeline, existing []string, p catalog.Product) error {
	urls, err := pipeline.ResolveAll(ctx)
	if err != nil {
		return err
	}
	// Only resolved URLs cross the gateway boundary; staged file names are
	// replaced wholesale, preserving existing-then-staged order.
	p.Images = append(existing, urls...)
	if p.Exists() {
		return gw.UpdateProduct(ctx, p)
	}
	return gw.CreateProduct(ctx, p)
}

// Delete bypasses the form: confirm, gateway delete, list refresh.
func (w *Product) Delete(ctx context.Context, id string, confirm Confirm) error {
	if confirm != nil && !confirm("delete product "+id) {
		return ErrDeclined
	}
	if err := w.gw.DeleteProduct(ctx, id); err != nil {
		return err
	}
	w.onRefresh(ctx)
	return nil
}

// Close abandons the session, releasing any staged previews. An in-flight
// submission is not cancelled.
func (w *Product) Close() {
	if w.staging != nil {
		w.staging.Discard()
	}
	w.form = nil
	w.tags = nil
	w.staging = nil
	w.existing = nil
	w.state = StateClosed
}
