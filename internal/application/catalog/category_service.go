package catalog

import (
	"context"

	"github.com/cubemart/backend/internal/domain/catalog"
	"github.com/cubemart/backend/internal/domain/shared"
)

// CategoryService handles category listing and creation
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns all categories ordered by name ascending, each with its
// ACTIVE-product count. When includeProducts is set, each category also
// carries a sample of its ACTIVE products.
func (s *CategoryService) List(ctx context.Context, includeProducts bool) ([]CategoryResponse, error) {
	var categories []catalog.Category
	var err error

	if includeProducts {
		categories, err = s.categoryRepo.FindAllWithActiveProducts(ctx)
	} else {
		categories, err = s.categoryRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	counts, err := s.categoryRepo.CountActiveProducts(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		c := &categories[i]
		responses[i] = ToCategoryResponse(c, counts[c.ID], includeProducts)
	}

	return responses, nil
}

// Create validates the name, derives the slug and persists the category.
// A colliding slug rejects the request rather than overwriting.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name, req.Description, req.Image)
	if err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsBySlug(ctx, category.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category, 0, false)
	return &resp, nil
}
