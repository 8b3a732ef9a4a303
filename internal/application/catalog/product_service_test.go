package catalog

import (
	"context"
	"testing"

	"github.com/cubemart/backend/internal/domain/catalog"
	"github.com/cubemart/backend/internal/domain/identity"
	"github.com/cubemart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newActiveProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "a cube", decimal.NewFromFloat(29.99), uuid.New())
	require.NoError(t, err)
	return product
}

func TestProductService_List_AppliesDefaults(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	var captured shared.Filter
	productRepo.On("FindActive", ctx, mock.AnythingOfType("shared.Filter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(shared.Filter)
		}).
		Return([]catalog.Product{}, nil)
	productRepo.On("CountActive", ctx, mock.AnythingOfType("shared.Filter")).
		Return(int64(0), nil)

	result, err := service.List(ctx, ListProductsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, DefaultPageSize, captured.PageSize)
	assert.Equal(t, "created_at", captured.OrderBy)
	assert.Equal(t, "desc", captured.OrderDir)

	assert.Empty(t, result.Products)
	assert.Equal(t, int64(0), result.Pagination.Total)
	assert.Equal(t, 0, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrev)
}

func TestProductService_List_SortWhitelist(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	var captured shared.Filter
	productRepo.On("FindActive", ctx, mock.AnythingOfType("shared.Filter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(shared.Filter)
		}).
		Return([]catalog.Product{}, nil)
	productRepo.On("CountActive", ctx, mock.AnythingOfType("shared.Filter")).
		Return(int64(0), nil)

	_, err := service.List(ctx, ListProductsQuery{SortBy: "price", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "price", captured.OrderBy)
	assert.Equal(t, "asc", captured.OrderDir)

	// Unknown sort keys are not passed through to the data layer
	_, err = service.List(ctx, ListProductsQuery{SortBy: "inventory; DROP TABLE products"})
	require.NoError(t, err)
	assert.Equal(t, "created_at", captured.OrderBy)
}

func TestProductService_List_PaginationMeta(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	products := []catalog.Product{*newActiveProduct(t, "GAN 356 X")}
	productRepo.On("FindActive", ctx, mock.AnythingOfType("shared.Filter")).
		Return(products, nil)
	productRepo.On("CountActive", ctx, mock.AnythingOfType("shared.Filter")).
		Return(int64(29), nil)

	result, err := service.List(ctx, ListProductsQuery{Page: 2, Limit: 12})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}

func TestProductService_List_CategoryAndSearchFilter(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	var captured shared.Filter
	productRepo.On("FindActive", ctx, mock.AnythingOfType("shared.Filter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(shared.Filter)
		}).
		Return([]catalog.Product{}, nil)
	productRepo.On("CountActive", ctx, mock.AnythingOfType("shared.Filter")).
		Return(int64(0), nil)

	_, err := service.List(ctx, ListProductsQuery{Search: "gan", Category: "speed-cubes"})
	require.NoError(t, err)

	assert.Equal(t, "gan", captured.Search)
	assert.Equal(t, "speed-cubes", captured.Filters["category_slug"])
}

func TestProductService_GetBySlug(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	product := newActiveProduct(t, "GAN 356 X")
	user := &identity.User{Name: "Max", Avatar: "/avatars/max.png"}
	product.Reviews = []catalog.Review{
		{ID: uuid.New(), Rating: 5, Comment: "great corner cutting", User: user},
		{ID: uuid.New(), Rating: 5, User: user},
		{ID: uuid.New(), Rating: 4, User: user},
	}

	productRepo.On("FindActiveBySlug", ctx, "gan-356-x").Return(product, nil)

	detail, err := service.GetBySlug(ctx, "gan-356-x")
	require.NoError(t, err)

	assert.Equal(t, 4.7, detail.AvgRating)
	assert.Equal(t, 3, detail.ReviewCount)
	assert.Equal(t, 2, detail.Distribution[4].Count)
	assert.Equal(t, 66.7, detail.Distribution[4].Percentage)
	assert.Equal(t, "Max", detail.Reviews[0].UserName)
}

func TestProductService_GetBySlug_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	productRepo.On("FindActiveBySlug", ctx, "missing").Return(nil, shared.ErrNotFound)

	_, err := service.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_Update_PartialMerge(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	product := newActiveProduct(t, "GAN 356 X")
	originalDescription := product.Description

	productRepo.On("FindBySlug", ctx, "gan-356-x").Return(product, nil)
	productRepo.On("Update", ctx, product, false).Return(nil)

	price := decimal.NewFromFloat(34.99)
	_, err := service.Update(ctx, "gan-356-x", UpdateProductRequest{Price: &price})
	require.NoError(t, err)

	assert.True(t, product.Price.Equal(price))
	assert.Equal(t, originalDescription, product.Description)
	assert.Equal(t, "GAN 356 X", product.Name)
	productRepo.AssertExpectations(t)
}

func TestProductService_Update_RenameRegeneratesSlug(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	product := newActiveProduct(t, "GAN 356 X")

	productRepo.On("FindBySlug", ctx, "gan-356-x").Return(product, nil)
	productRepo.On("ExistsBySlug", ctx, "moyu-rs3m", product.ID).Return(false, nil)
	productRepo.On("Update", ctx, product, false).Return(nil)
	productRepo.On("FindBySlug", ctx, "moyu-rs3m").Return(product, nil)

	name := "MoYu RS3M"
	detail, err := service.Update(ctx, "gan-356-x", UpdateProductRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "moyu-rs3m", detail.Slug)
	productRepo.AssertExpectations(t)
}

func TestProductService_Update_RenameSlugCollision(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	product := newActiveProduct(t, "GAN 356 X")

	productRepo.On("FindBySlug", ctx, "gan-356-x").Return(product, nil)
	productRepo.On("ExistsBySlug", ctx, "moyu-rs3m", product.ID).Return(true, nil)

	name := "MoYu RS3M"
	_, err := service.Update(ctx, "gan-356-x", UpdateProductRequest{Name: &name})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_Update_ReplacesAttributes(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	product := newActiveProduct(t, "GAN 356 X")
	product.Attributes = []catalog.ProductAttribute{{Name: "Old", Value: "Gone"}}

	productRepo.On("FindBySlug", ctx, "gan-356-x").Return(product, nil)
	productRepo.On("Update", ctx, product, true).Return(nil)

	attrs := []AttributeInput{{Name: "Magnetic", Value: "Yes"}}
	_, err := service.Update(ctx, "gan-356-x", UpdateProductRequest{Attributes: &attrs})
	require.NoError(t, err)

	require.Len(t, product.Attributes, 1)
	assert.Equal(t, "Magnetic", product.Attributes[0].Name)
	productRepo.AssertExpectations(t)
}

func TestProductService_Update_InvalidStatus(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	product := newActiveProduct(t, "GAN 356 X")
	productRepo.On("FindBySlug", ctx, "gan-356-x").Return(product, nil)

	status := "SOLD_OUT"
	_, err := service.Update(ctx, "gan-356-x", UpdateProductRequest{Status: &status})
	assert.Error(t, err)
}

func TestProductService_Update_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	productRepo.On("FindBySlug", ctx, "missing").Return(nil, shared.ErrNotFound)

	_, err := service.Update(ctx, "missing", UpdateProductRequest{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_Delete(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	product := newActiveProduct(t, "GAN 356 X")
	productRepo.On("FindBySlug", ctx, "gan-356-x").Return(product, nil)
	productRepo.On("Delete", ctx, product.ID).Return(nil)

	require.NoError(t, service.Delete(ctx, "gan-356-x"))
	productRepo.AssertExpectations(t)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo)
	ctx := context.Background()

	productRepo.On("FindBySlug", ctx, "missing").Return(nil, shared.ErrNotFound)

	assert.ErrorIs(t, service.Delete(ctx, "missing"), shared.ErrNotFound)
}
