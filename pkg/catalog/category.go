package catalog

import "strings"

// Category is a product grouping managed by the remote catalog service.
// Identity is the server-assigned ID; a category without one has not been
// created yet.
type Category struct {
	ID           string    `json:"id,omitempty"`
	CategoryName string    `json:"categoryName" validate:"required"`
	CreatedAt    Timestamp `json:"createdAt"`
	UpdatedAt    Timestamp `json:"updatedAt"`
}

func NewCategory(name string) Category {
	c := Category{CategoryName: name}
	c.Normalize()
	return c
}

// Normalize applies the persistence convention: category names are stored
// trimmed and lowercased.
func (c *Category) Normalize() {
	c.CategoryName = strings.ToLower(strings.TrimSpace(c.CategoryName))
}

func (c Category) Exists() bool {
	return c.ID != ""
}
