package catalog

import (
	"context"
	"strings"

	"github.com/cubemart/backend/internal/domain/catalog"
	"github.com/cubemart/backend/internal/domain/shared"
)

// ProductService handles product listing, detail and mutation operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// sortColumns whitelists the listing sort keys and maps them to columns
var sortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdAt": "created_at",
}

// List returns the ACTIVE products matching the query plus pagination
// metadata. Unknown sort keys fall back to createdAt descending.
func (s *ProductService) List(ctx context.Context, query ListProductsQuery) (*ProductListResult, error) {
	filter := shared.Filter{
		Search:  query.Search,
		Filters: make(map[string]interface{}),
	}

	if query.Category != "" {
		filter.Filters["category_slug"] = query.Category
	}
	if query.Featured != nil {
		filter.Filters["featured"] = *query.Featured
	}

	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = "created_at"
	}
	filter.OrderBy = column
	if strings.EqualFold(query.SortOrder, "asc") {
		filter.OrderDir = "asc"
	} else {
		filter.OrderDir = "desc"
	}

	filter.Page = query.Page
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.PageSize = query.Limit
	if filter.PageSize <= 0 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}

	products, err := s.productRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.CountActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductListItem, len(products))
	for i := range products {
		items[i] = ToProductListItem(&products[i])
	}

	return &ProductListResult{
		Products:   items,
		Pagination: shared.NewPagination(filter.Page, filter.PageSize, total),
	}, nil
}

// GetBySlug returns an ACTIVE product with joined relations and derived
// rating aggregates. Inactive or missing slugs yield shared.ErrNotFound.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := s.productRepo.FindActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ToProductDetail(product), nil
}

// Update applies a partial patch to the product with the given slug. Only
// non-nil fields are merged; attributes, when present, replace the stored
// set wholesale inside the same transaction. Renames that change the derived
// slug are rejected when the new slug already belongs to another product.
func (s *ProductService) Update(ctx context.Context, slug string, req UpdateProductRequest) (*ProductDetail, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		slugChanged, err := product.Rename(*req.Name)
		if err != nil {
			return nil, err
		}
		if slugChanged {
			taken, err := s.productRepo.ExistsBySlug(ctx, product.Slug, product.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this name already exists")
			}
		}
	}

	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil && !req.Price.IsZero() {
		if req.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
		}
		product.Price = *req.Price
	}
	if req.ComparePrice != nil {
		product.ComparePrice = req.ComparePrice
	}
	if req.SKU != nil && *req.SKU != "" {
		product.SKU = *req.SKU
	}
	if req.Inventory != nil {
		if err := product.SetInventory(*req.Inventory); err != nil {
			return nil, err
		}
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if err == shared.ErrNotFound {
				return nil, shared.NewDomainError("INVALID_INPUT", "Category not found")
			}
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Status != nil && *req.Status != "" {
		status := catalog.ProductStatus(*req.Status)
		if !status.Valid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product status")
		}
		product.Status = status
	}

	replaceAttributes := req.Attributes != nil
	if replaceAttributes {
		pairs := make([]catalog.ProductAttribute, len(*req.Attributes))
		for i, attr := range *req.Attributes {
			pairs[i] = catalog.ProductAttribute{Name: attr.Name, Value: attr.Value}
		}
		product.ReplaceAttributes(pairs)
	}

	product.Touch()
	if err := s.productRepo.Update(ctx, product, replaceAttributes); err != nil {
		return nil, err
	}

	// Re-read with category and attributes joined for the response
	updated, err := s.productRepo.FindBySlug(ctx, product.Slug)
	if err != nil {
		return nil, err
	}
	return ToProductDetail(updated), nil
}

// Delete hard-deletes the product with the given slug
func (s *ProductService) Delete(ctx context.Context, slug string) error {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, product.ID)
}
