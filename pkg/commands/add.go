package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/shopkeep/pkg/commands/options"
	"tableflip.dev/shopkeep/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category or product",
		Example: `
shopkeep add category mugs
shopkeep add product --name "Enamel Mug" --price 12.50 --units 4 \
  --category mugs --tag kitchen --image ./mug.png
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAddCategory(cmd)
	addAddProduct(cmd)

	topLevel.AddCommand(cmd)
}

func addAddCategory(topLevel *cobra.Command) {
	var name string

	cmd := &cobra.Command{
		Use:     "category <name>",
		Aliases: []string{"cat"},
		Short:   "Create a category",
		Example: `
shopkeep add category mugs
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a category name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}
			s := add.Category{
				Name:    name,
				Gateway: client,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func addAddProduct(topLevel *cobra.Command) {
	po := &options.ProductOptions{}

	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"prod"},
		Short:   "Create a product, uploading its images first",
		Example: `
shopkeep add product --name "Enamel Mug" --price 12.50 --units 4 \
  --description "A mug" --category mugs --tag kitchen --image ./mug.png
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := loadClient()
			if err != nil {
				return err
			}
			s := add.Product{
				Name:        po.Name,
				Price:       po.Price,
				Description: po.Description,
				Units:       po.Units,
				Category:    po.Category,
				Tags:        po.Tags,
				Images:      po.Images,
				Gateway:     client,
				Uploader:    loadUploader(cfg),
			}
			return s.Do(context.Background())
		},
	}

	options.AddProductArgs(cmd, po)
	topLevel.AddCommand(cmd)
}
