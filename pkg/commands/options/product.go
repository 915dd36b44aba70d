// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// ProductOptions captures the product fields commands accept as flags.
type ProductOptions struct {
	Name        string
	Price       float64
	Description string
	Units       int
	Category    string
	Tags        []string
	Images      []string
}

// AddProductArgs wires product field flags on the provided command.
func AddProductArgs(cmd *cobra.Command, o *ProductOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "", "Product name.")
	cmd.Flags().Float64Var(&o.Price, "price", 0, "Product price.")
	cmd.Flags().StringVar(&o.Description, "description", "", "Product description.")
	cmd.Flags().IntVar(&o.Units, "units", 0, "Units in stock.")
	cmd.Flags().StringVar(&o.Category, "category", "", "Category name.")
	cmd.Flags().StringSliceVar(&o.Tags, "tag", nil, "Product tag, repeatable.")
	cmd.Flags().StringSliceVar(&o.Images, "image", nil, "Local image file to upload, repeatable (max 5).")
}

// CategoryOptions captures the category filter flag for list commands.
type CategoryOptions struct {
	Category string
}

// AddCategoryArg wires the category filter flag.
func AddCategoryArg(cmd *cobra.Command, o *CategoryOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Narrow to one category.")
}
