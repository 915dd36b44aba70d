// Package gateway is the thin HTTP client for the remote catalog service.
// Every request carries a JSON body; HTTP 200 is the only success status and
// everything else collapses into a uniform *Error.
package gateway

import (
	"context"
	"fmt"

	"tableflip.dev/shopkeep/pkg/catalog"
)

// Gateway is the CRUD surface the editing workflows depend on. The concrete
// Client implements it; tests substitute in-memory fakes.
type Gateway interface {
	Categories(ctx context.Context) ([]catalog.Category, error)
	CreateCategory(ctx context.Context, c catalog.Category) error
	UpdateCategory(ctx context.Context, c catalog.Category) error
	DeleteCategory(ctx context.Context, id string) error

	Products(ctx context.Context) ([]catalog.Product, error)
	CreateProduct(ctx context.Context, p catalog.Product) error
	UpdateProduct(ctx context.Context, p catalog.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// Error is the uniform failure for any non-200 response. No status code gets
// distinct handling; the operator sees a readable message either way.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gateway: status %d", e.Status)
}
