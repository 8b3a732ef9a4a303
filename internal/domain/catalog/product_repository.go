package catalog

import (
	"context"

	"github.com/cubemart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID regardless of status
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its slug regardless of status
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindActiveBySlug finds an ACTIVE product by slug with category,
	// attributes and reviews (reviewer included, newest first) joined
	FindActiveBySlug(ctx context.Context, slug string) (*Product, error)

	// FindActive finds ACTIVE products matching the filter, with category
	// and review ratings joined for listing aggregates
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)

	// CountActive counts ACTIVE products matching the filter (ignoring pagination)
	CountActive(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySlug checks whether another product already owns the slug
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a product's scalar fields
	Save(ctx context.Context, product *Product) error

	// Update persists the product and, when replaceAttributes is set, swaps
	// the stored attribute set for product.Attributes. Both writes happen in
	// a single transaction.
	Update(ctx context.Context, product *Product, replaceAttributes bool) error

	// Delete hard-deletes a product and its dependent rows
	Delete(ctx context.Context, id uuid.UUID) error
}
