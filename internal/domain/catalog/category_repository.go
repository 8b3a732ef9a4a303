package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll lists all categories ordered by name ascending
	FindAll(ctx context.Context) ([]Category, error)

	// FindAllWithActiveProducts lists all categories ordered by name
	// ascending with their ACTIVE products preloaded
	FindAllWithActiveProducts(ctx context.Context) ([]Category, error)

	// CountActiveProducts returns the number of ACTIVE products per category
	CountActiveProducts(ctx context.Context) (map[uuid.UUID]int64, error)

	// ExistsBySlug checks whether a category with this slug already exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Save creates or updates a category. Creation re-checks slug uniqueness
	// inside the insert transaction.
	Save(ctx context.Context, category *Category) error
}
