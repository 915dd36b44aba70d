package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/shopkeep/pkg/commands/options"
	"tableflip.dev/shopkeep/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"del", "rm"},
		Short:   "Delete a category or product",
		Example: `
shopkeep delete category <id>
shopkeep delete product <id> --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDeleteCategory(cmd)
	addDeleteProduct(cmd)

	topLevel.AddCommand(cmd)
}

func addDeleteCategory(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "category <id>",
		Aliases: []string{"cat"},
		Short:   "Delete a category",
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
			s := remove.Category{
				ID:      io.ID,
				Yes:     co.Yes,
				Gateway: client,
			}
			return s.Do(context.Background())
		},
	}

	options.AddYesArg(cmd, co)
	topLevel.AddCommand(cmd)
}

func addDeleteProduct(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "product <id>",
		Aliases: []string{"prod"},
		Short:   "Delete a product",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a product id")
			}
			io.ID = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}
			s := remove.Product{
				ID:      io.ID,
				Yes:     co.Yes,
				Gateway: client,
			}
			return s.Do(context.Background())
		},
	}

	options.AddYesArg(cmd, co)
	topLevel.AddCommand(cmd)
}
