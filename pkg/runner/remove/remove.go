package remove

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/printers"
	"tableflip.dev/shopkeep/pkg/workflow"
)

// Category deletes a category by id, prompting first unless Yes is set.
type Category struct {
	ID      string
	Yes     bool
	Gateway gateway.Gateway
}

func (n *Category) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not delete, no gateway")
	}

	w := workflow.NewCategory(n.Gateway, refreshCategories(n.Gateway))
	err := w.Delete(ctx, n.ID, confirm(n.Yes))
	if errors.Is(err, workflow.ErrDeclined) {
		fmt.Println("aborted")
		return nil
	}
	return err
}

// Product deletes a product by id, prompting first unless Yes is set.
type Product struct {
	ID      string
	Yes     bool
	Gateway gateway.Gateway
}

func (n *Product) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not delete, no gateway")
	}

	w := workflow.NewProduct(n.Gateway, nil, refreshProducts(n.Gateway))
	err := w.Delete(ctx, n.ID, confirm(n.Yes))
	if errors.Is(err, workflow.ErrDeclined) {
		fmt.Println("aborted")
		return nil
	}
	return err
}

func confirm(yes bool) workflow.Confirm {
	if yes {
		return func(string) bool { return true }
	}
	return func(prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}
		line = strings.ToLower(strings.TrimSpace(line))
		return line == "y" || line == "yes"
	}
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
