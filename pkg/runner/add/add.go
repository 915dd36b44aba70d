package add

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/form"
	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/printers"
	"tableflip.dev/shopkeep/pkg/staging"
	"tableflip.dev/shopkeep/pkg/workflow"
)

// Category creates a new category and prints the refreshed list.
type Category struct {
	Name    string
	Gateway gateway.Gateway
}

func (n *Category) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not add, no gateway")
	}

	w := workflow.NewCategory(n.Gateway, refreshCategories(n.Gateway))
	w.OpenCreate()
	w.SetName(n.Name)

	if err := w.Submit(ctx); err != nil {
		if errors.Is(err, form.ErrInvalid) {
			return fmt.Errorf("invalid category: %s", form.Describe(w.Form().Errors()))
		}
		return err
	}
	return nil
}

// Product uploads the given images, creates the product, and prints the
// refreshed list.
type Product struct {
	Name        string
	Price       float64
	Description string
	Units       int
	Category    string
	Tags        []string
	Images      []string // local file paths

	Gateway  gateway.Gateway
	Uploader staging.Uploader
}

func (n *Product) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not add, no gateway")
	}
	if n.Uploader == nil {
		return errors.New("can not add, no uploader")
	}

	w := workflow.NewProduct(n.Gateway, n.Uploader, refreshProducts(n.Gateway))
	w.OpenCreate()
	w.SetName(n.Name)
	w.SetPrice(catalog.Float(n.Price))
	w.SetDescription(n.Description)
	w.SetUnits(n.Units)
	w.SetCategory(n.Category)
	for _, t := range n.Tags {
		w.Tags().SetScratch(t)
		if !w.Tags().Commit() {
			return fmt.Errorf("invalid tag %q", t)
		}
	}
	if len(n.Images) > 0 {
		if err := w.StageImages(n.Images...); err != nil {
			return err
		}
	}

	if err := w.Submit(ctx); err != nil {
		if errors.Is(err, form.ErrInvalid) {
			return fmt.Errorf("invalid product: %s", form.Describe(w.Form().Errors()))
		}
		return err
	}
	return nil
}

func refreshCategories(gw gateway.Gateway) func(context.Context) {
	return func(ctx context.Context) {
		all, err := gw.Categories(ctx)
		if err != nil {
			return
		}
		pp := printers.PrettyPrint{}
		fmt.Println("")
		pp.TitleWithCount("Categories", len(all))
		pp.Categories(all...)
	}
}

func refreshProducts(gw gateway.Gateway) func(context.Context) {
	return func(ctx context.Context) {
		all, err := gw.Products(ctx)
		if err != nil {
			return
		}
		pp := printers.PrettyPrint{}
		fmt.Println("")
		pp.TitleWithCount("Products", len(all))
		pp.Products(all...)
	}
}
