package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/shopkeep/pkg/commands/options"
	"tableflip.dev/shopkeep/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get categories or products",
		Example: `
shopkeep get categories
shopkeep get products --category mugs
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addGetCategories(cmd)
	addGetProducts(cmd)

	topLevel.AddCommand(cmd)
}

func addGetCategories(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	out := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cats"},
		Short:   "List every category",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}
			s := get.Categories{
				ShowID:  io.ShowID,
				AsJSON:  out.JSON,
				Gateway: client,
			}
			return out.HandleError(s.Do(context.Background()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, out)
	topLevel.AddCommand(cmd)
}

func addGetProducts(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	co := &options.CategoryOptions{}
	out := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "products [id]",
		Aliases: []string{"product", "prods"},
		Short:   "List products, or show one by id",
		Example: `
shopkeep get products
shopkeep get products --category mugs
shopkeep get products 68a1f...
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				io.ID = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}
			s := get.Products{
				ShowID:   io.ShowID,
				AsJSON:   out.JSON,
				Category: co.Category,
				ID:       io.ID,
				Gateway:  client,
			}
			return out.HandleError(s.Do(context.Background()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddCategoryArg(cmd, co)
	options.AddOutputArg(cmd, out)
	topLevel.AddCommand(cmd)
}
