// Package printers renders catalog entities for the command line.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/shopkeep/pkg/catalog"
)

type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" item")
	default:
		_, _ = c.Println(" items")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Print(" none\n\n")
}

// Categories renders one row per category.
func (pp *PrettyPrint) Categories(cats ...catalog.Category) {
	if len(cats) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold("ID"), bold("Name"), bold("Updated"))
	} else {
		tbl.AddRow(bold("Name"), bold("Updated"))
	}
	for _, c := range cats {
		if pp.ShowID {
			tbl.AddRow(c.ID, c.CategoryName, c.UpdatedAt.String())
		} else {
			tbl.AddRow(c.CategoryName, c.UpdatedAt.String())
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Products renders one row per product.
func (pp *PrettyPrint) Products(products ...catalog.Product) {
	if len(products) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	if pp.ShowID {
		tbl.AddRow(bold("ID"), bold("Name"), bold("Price"), bold("Units"), bold("Category"), bold("Tags"), bold("Images"))
	} else {
		tbl.AddRow(bold("Name"), bold("Price"), bold("Units"), bold("Category"), bold("Tags"), bold("Images"))
	}
	for _, p := range products {
		tags := strings.Join(p.Tags, ", ")
		if pp.ShowID {
			tbl.AddRow(p.ID, p.ProductName, p.PriceLabel(), p.Units, p.Category.CategoryName, tags, len(p.Images))
		} else {
			tbl.AddRow(p.ProductName, p.PriceLabel(), p.Units, p.Category.CategoryName, tags, len(p.Images))
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Product renders the full detail card for one product.
func (pp *PrettyPrint) Product(p catalog.Product) {
	pp.Title(p.ProductName)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	if pp.ShowID {
		tbl.AddRow(bold("ID"), p.ID)
	}
	tbl.AddRow(bold("Price"), p.PriceLabel())
	tbl.AddRow(bold("Units"), p.Units)
	tbl.AddRow(bold("Category"), p.Category.CategoryName)
	tbl.AddRow(bold("Tags"), strings.Join(p.Tags, ", "))
	tbl.AddRow(bold("Description"), p.Description)
	for i, img := range p.Images {
		if i == 0 {
			tbl.AddRow(bold("Images"), img)
		} else {
			tbl.AddRow("", img)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}
