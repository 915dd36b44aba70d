package catalog

import "fmt"

// CategoryRef is the category shape embedded in a product payload. The
// catalog service keys it by name, not ID.
type CategoryRef struct {
	CategoryName string `json:"categoryName" validate:"required"`
}

// Product is a catalog item. Images must hold hosted URLs by the time a
// product crosses the gateway boundary; local files never appear here.
type Product struct {
	ID          string      `json:"id,omitempty"`
	ProductName string      `json:"productName" validate:"required"`
	Price       *float64    `json:"price" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Units       int         `json:"units" validate:"gte=0"`
	Images      []string    `json:"images" validate:"min=1"`
	Category    CategoryRef `json:"category"`
	Tags        []string    `json:"tags" validate:"min=1"`
	CreatedAt   Timestamp   `json:"createdAt"`
	UpdatedAt   Timestamp   `json:"updatedAt"`
}

func (p Product) Exists() bool {
	return p.ID != ""
}

// PriceLabel renders the price for display, or a dash when unset.
func (p Product) PriceLabel() string {
	if p.Price == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *p.Price)
}

// Float returns a pointer to v, for literal price values.
func Float(v float64) *float64 {
	return &v
}
