package workflow

import (
	"context"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/form"
	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/validation"
)

// CategoryFields names every field the category form can touch.
var CategoryFields = []string{"categoryName"}

// Category runs create/edit/delete for categories.
type Category struct {
	gw        gateway.Gateway
	onRefresh func(context.Context)

	state State
	prev  State
	form  *form.Controller[catalog.Category]
}

// NewCategory builds a closed workflow. onRefresh runs once after every
// successful mutation (create, update, delete); the list view owns it.
func NewCategory(gw gateway.Gateway, onRefresh func(context.Context)) *Category {
	return &Category{gw: gw, onRefresh: notify(onRefresh)}
}

func (w *Category) State() State {
	return w.state
}

// Form exposes the active session's controller; nil while closed.
func (w *Category) Form() *form.Controller[catalog.Category] {
	return w.form
}

// OpenCreate starts a session over an empty category.
func (w *Category) OpenCreate() {
	w.form = form.New(form.Create, CategoryFields,
		func() catalog.Category { return catalog.Category{} },
		validation.Category,
		w.write,
	)
	w.state = StateCreating
}

// OpenEdit starts a session seeded with the category's current values.
func (w *Category) OpenEdit(c catalog.Category) {
	w.form = form.New(form.Edit, CategoryFields,
		func() catalog.Category { return catalog.Category{} },
		validation.Category,
		w.write,
	)
	w.form.Seed(c)
	w.state = StateEditing
}

// SetName updates the category name field.
func (w *Category) SetName(name string) {
	if w.form == nil {
		return
	}
	w.form.SetField("categoryName", func(c *catalog.Category) {
		c.CategoryName = name
	})
}

// BeginSubmit validates the open session and flips it into the submitting
// state. The returned action performs only the gateway write over a snapshot
// of the values, so a caller may run it off the owning goroutine and report
// the outcome back through FinishSubmit. Validation failures never reach the
// gateway.
func (w *Category) BeginSubmit() (func(context.Context) error, error) {
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
	return func(ctx context.Context) error {
		return writeCategory(ctx, gw, values)
	}, nil
}

// FinishSubmit applies a submit outcome on the goroutine that owns the
// session. On a successful edit the session closes; a successful create
// resets for the next entry.
func (w *Category) FinishSubmit(ctx context.Context, err error) {
	if w.form == nil || w.state != StateSubmitting {
		return
	}
	w.form.FinishSubmit(err)
	switch {
	case err != nil:
		w.state = w.prev
	case w.form.Closed():
		w.state = StateClosed
		w.form = nil
		w.onRefresh(ctx)
	default:
		w.state = StateCreating
		w.onRefresh(ctx)
	}
}

// Submit validates and writes the category synchronously.
func (w *Category) Submit(ctx context.Context) error {
	action, err := w.BeginSubmit()
	if err != nil {
		return err
	}
	err = action(ctx)
	w.FinishSubmit(ctx, err)
	return err
}

func (w *Category) write(ctx context.Context, c catalog.Category) error {
	return writeCategory(ctx, w.gw, c)
}

func writeCategory(ctx context.Context, gw gateway.Gateway, c catalog.Category) error {
	c.Normalize()
	if c.Exists() {
		return gw.UpdateCategory(ctx, c)
	}
	return gw.CreateCategory(ctx, c)
}

// Delete bypasses the form: confirm, then a direct gateway delete, then the
// same list refresh a successful submit triggers.
func (w *Category) Delete(ctx context.Context, id string, confirm Confirm) error {
	if confirm != nil && !confirm("delete category "+id) {
		return ErrDeclined
	}
	if err := w.gw.DeleteCategory(ctx, id); err != nil {
		return err
	}
	w.onRefresh(ctx)
	return nil
}

// Close abandons the session without submitting.
func (w *Category) Close() {
	w.form = nil
	w.state = StateClosed
}
