package edit

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tableflip.dev/shopkeep/pkg/form"
	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/printers"
	"tableflip.dev/shopkeep/pkg/staging"
	"tableflip.dev/shopkeep/pkg/workflow"
)

// Category renames an existing category.
type Category struct {
	ID      string
	Name    string
	Gateway gateway.Gateway
}

func (n *Category) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not edit, no gateway")
	}

	all, err := n.Gateway.Categories(ctx)
	if err != nil {
		return err
	}
	w := workflow.NewCategory(n.Gateway, refreshCategories(n.Gateway))
	found := false
	for _, c := range all {
		if c.ID == n.ID {
			w.OpenEdit(c)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no category with id %q", n.ID)
	}

	w.SetName(n.Name)
	if err := w.Submit(ctx); err != nil {
		if errors.Is(err, form.ErrInvalid) {
			return fmt.Errorf("invalid category: %s", form.Describe(w.Form().Errors()))
		}
		return err
	}
	return nil
}

// Product applies any of the optional changes to an existing product. Nil
// fields are left as they are.
type Product struct {
	ID          string
	Name        *string
	Price       *float64
	Description *string
	Units       *int
	Category    *string
	Tags        []string // replaces the tag list when non-nil
	AddImages   []string // local file paths to upload
	DropImages  []int    // positions in the resolved image list

	Gateway  gateway.Gateway
	Uploader staging.Uploader
}

func (n *Product) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not edit, no gateway")
	}
	if n.Uploader == nil {
		return errors.New("can not edit, no uploader")
	}

	all, err := n.Gateway.Products(ctx)
	if err != nil {
		return err
	}
	w := workflow.NewProduct(n.Gateway, n.Uploader, refreshProducts(n.Gateway))
	found := false
	for _, p := range all {
		if p.ID == n.ID {
			w.OpenEdit(p)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no product with id %q", n.ID)
	}

	if n.Name != nil {
		w.SetName(*n.Name)
	}
	if n.Price != nil {
		w.SetPrice(n.Price)
	}
	if n.Description != nil {
		w.SetDescription(*n.Description)
	}
	if n.Units != nil {
		w.SetUnits(*n.Units)
	}
	if n.Category != nil {
		w.SetCategory(*n.Category)
	}
	if n.Tags != nil {
		for len(w.Tags().Tags()) > 0 {
			w.Tags().PopLast()
		}
		for _, t := range n.Tags {
			w.Tags().SetScratch(t)
			if !w.Tags().Commit() {
				return fmt.Errorf("invalid tag %q", t)
			}
		}
	}

	// Drop highest positions first so earlier removals do not shift the
	// remaining indexes.
	drops := append([]int(nil), n.DropImages...)
	sort.Sort(sort.Reverse(sort.IntSlice(drops)))
	for _, i := range drops {
		if err := w.RemoveImage(i); err != nil {
			return err
		}
	}
	if len(n.AddImages) > 0 {
		if err := w.StageImages(n.AddImages...); err != nil {
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
