package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/shopkeep/pkg/commands/options"
	"tableflip.dev/shopkeep/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a category or product",
		Example: `
shopkeep edit category <id> --name prints
shopkeep edit product <id> --price 15 --image ./extra.png
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEditCategory(cmd)
	addEditProduct(cmd)

	topLevel.AddCommand(cmd)
}

func addEditCategory(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var name string

	cmd := &cobra.Command{
		Use:     "category <id>",
		Aliases: []string{"cat"},
		Short:   "Rename a category",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a category id")
			}
			io.ID = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}
			s := edit.Category{
				ID:      io.ID,
				Name:    name,
				Gateway: client,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New category name.")
	topLevel.AddCommand(cmd)
}

func addEditProduct(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	po := &options.ProductOptions{}
	var dropImages []int

	cmd := &cobra.Command{
		Use:     "product <id>",
		Aliases: []string{"prod"},
		Short:   "Change fields on a product",
		Example: `
shopkeep edit product <id> --price 15
shopkeep edit product <id> --image ./extra.png --drop-image 0
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a product id")
			}
			io.ID = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := loadClient()
			if err != nil {
				return err
			}

			s := edit.Product{
				ID:         io.ID,
				AddImages:  po.Images,
				DropImages: dropImages,
				Gateway:    client,
				Uploader:   loadUploader(cfg),
			}
			// Only flags the operator passed become changes; everything else
			// keeps its current value.
			if cmd.Flags().Changed("name") {
				s.Name = &po.Name
			}
			if cmd.Flags().Changed("price") {
				s.Price = &po.Price
			}
			if cmd.Flags().Changed("description") {
				s.Description = &po.Description
			}
			if cmd.Flags().Changed("units") {
				s.Units = &po.Units
			}
			if cmd.Flags().Changed("category") {
				s.Category = &po.Category
			}
			if cmd.Flags().Changed("tag") {
				s.Tags = po.Tags
			}
			return s.Do(context.Background())
		},
	}

	options.AddProductArgs(cmd, po)
	cmd.Flags().IntSliceVar(&dropImages, "drop-image", nil,
		"Image position to remove, repeatable.")
	topLevel.AddCommand(cmd)
}
