package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/printers"
)

// Categories fetches and prints every category.
type Categories struct {
	ShowID  bool
	AsJSON  bool
	Gateway gateway.Gateway
}

func (n *Categories) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not get, no gateway")
	}

	all, err := n.Gateway.Categories(ctx)
	if err != nil {
		return err
	}

	if n.AsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.TitleWithCount("Categories", len(all))
	pp.Categories(all...)
	return nil
}

// Products fetches and prints products, optionally narrowed to one category
// or a single id.
type Products struct {
	ShowID   bool
	AsJSON   bool
	Category string
	ID       string
	Gateway  gateway.Gateway
}

func (n *Products) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not get, no gateway")
	}

	all, err := n.Gateway.Products(ctx)
	if err != nil {
		return err
	}

	if n.ID != "" {
		for _, p := range all {
			if p.ID == n.ID {
				if n.AsJSON {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(p)
				}
				pp := printers.PrettyPrint{ShowID: n.ShowID}
				fmt.Println("")
				pp.Product(p)
				return nil
			}
		}
		return fmt.Errorf("no product with id %q", n.ID)
	}

	if n.Category != "" {
		all = n.filtered(all)
	}

	if n.AsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	title := "Products"
	if n.Category != "" {
		title = n.Category
	}
	pp.TitleWithCount(title, len(all))
	pp.Products(all...)
	return nil
}

func (n *Products) filtered(all []catalog.Product) []catalog.Product {
	c := make([]catalog.Product, 0, len(all))
	for _, p := range all {
		if p.Category.CategoryName == n.Category {
			c = append(c, p)
		}
	}
	return c
}
