package repository

import (
	"context"
	"errors"

	"storefront-backend/internal/model"
)

var (
	// ErrNotFound is returned when no product matches the requested ID.
	ErrNotFound = errors.New("product not found")
)

// ProductRepository defines the persistence operations for products.
type ProductRepository interface {
	// List returns products matching the filter in backend-default order.
	List(ctx context.Context, filter Filter) ([]*model.Product, error)

	// FindByID returns the product with the given ID or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Product, error)

	// DistinctCategories returns the set of non-empty category values.
	DistinctCategories(ctx context.Context) ([]string, error)

	// Create inserts the product and assigns its generated ID.
	Create(ctx context.Context, product *model.Product) error

	// Update overwrites the editable fields of the row matching product.ID.
	// The image column is left untouched when replaceImage is false.
	// Returns ErrNotFound when no row matched.
	Update(ctx context.Context, product *model.Product, replaceImage bool) error
}

// Filter restricts a List call. Category is an exact match, Search a
// case-insensitive substring match on the product name; both are
// AND-combined when present. Limit <= 0 means no limit.
type Filter struct {
	Category string
	Search   string
	Limit    int
}
