package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/cubemart/backend/internal/application/catalog"
	"github.com/cubemart/backend/internal/domain/catalog"
	"github.com/cubemart/backend/internal/domain/shared"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActiveBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountActive(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product, replaceAttributes bool) error {
	args := m.Called(ctx, product, replaceAttributes)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository implements catalog.CategoryRepository for testing
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllWithActiveProducts(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) CountActiveProducts(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func newTestProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "A speed cube", decimal.NewFromFloat(29.99), uuid.New())
	require.NoError(t, err)
	return product
}

func newProductTestRouter(productRepo *MockProductRepository) *gin.Engine {
	service := catalogapp.NewProductService(productRepo, new(MockCategoryRepository))
	h := NewProductHandler(service)

	router := gin.New()
	router.GET("/api/products", h.List)
	router.GET("/api/products/:slug", h.Get)
	router.PUT("/api/products/:slug", h.Update)
	router.DELETE("/api/products/:slug", h.Delete)
	return router
}

func TestProductHandler_List(t *testing.T) {
	productRepo := new(MockProductRepository)
	router := newProductTestRouter(productRepo)

	products := []catalog.Product{*newTestProduct(t, "GAN 356 X")}
	productRepo.On("FindActive", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(products, nil)
	productRepo.On("CountActive", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(29), nil)

	req := httptest.NewRequest("GET", "/api/products?page=2&limit=12", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products   []json.RawMessage `json:"products"`
		Pagination struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
			HasNext    bool  `json:"hasNext"`
			HasPrev    bool  `json:"hasPrev"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Products, 1)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 12, resp.Pagination.Limit)
	assert.Equal(t, int64(29), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)
}

func TestProductHandler_List_QueryBinding(t *testing.T) {
	productRepo := new(MockProductRepository)
	router := newProductTestRouter(productRepo)

	var captured shared.Filter
	productRepo.On("FindActive", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(shared.Filter)
		}).
		Return([]catalog.Product{}, nil)
	productRepo.On("CountActive", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

	req := httptest.NewRequest("GET", "/api/products?search=gan&category=speed-cubes&sortBy=price&sortOrder=asc&featured=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gan", captured.Search)
	assert.Equal(t, "speed-cubes", captured.Filters["category_slug"])
	assert.Equal(t, true, captured.Filters["featured"])
	assert.Equal(t, "price", captured.OrderBy)
	assert.Equal(t, "asc", captured.OrderDir)
}

func TestProductHandler_Get(t *testing.T) {
	productRepo := new(MockProductRepository)
	router := newProductTestRouter(productRepo)

	product := newTestProduct(t, "GAN 356 X")
	productRepo.On("FindActiveBySlug", mock.Anything, "gan-356-x").Return(product, nil)

	req := httptest.NewRequest("GET", "/api/products/gan-356-x", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "GAN 356 X", resp["name"])
	assert.Equal(t, "gan-356-x", resp["slug"])
	assert.Equal(t, float64(0), resp["avgRating"])
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	router := newProductTestRouter(productRepo)

	productRepo.On("FindActiveBySlug", mock.Anything, "missing").Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest("GET", "/api/products/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp["code"])
}

func TestProductHandler_Update(t *testing.T) {
	productRepo := new(MockProductRepository)
	router := newProductTestRouter(productRepo)

	product := newTestProduct(t, "GAN 356 X")
	productRepo.On("FindBySlug", mock.Anything, "gan-356-x").Return(product, nil)
	productRepo.On("Update", mock.Anything, product, false).Return(nil)

	body := bytes.NewBufferString(`{"price": 34.99}`)
	req := httptest.NewRequest("PUT", "/api/products/gan-356-x", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 34.99, resp["price"])
}

func TestProductHandler_Update_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	router := newProductTestRouter(productRepo)

	productRepo.On("FindBySlug", mock.Anything, "missing").Return(nil, shared.ErrNotFound)

	body := bytes.NewBufferString(`{"price": 34.99}`)
	req := httptest.NewRequest("PUT", "/api/products/missing", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductHandler_Update_SlugCollision(t *testing.T) {
	productRepo := new(MockProductRepository)
	router := newProductTestRouter(productRepo)

	product := newTestProduct(t, "GAN 356 X")
	productRepo.On("FindBySlug", mock.Anything, "gan-356-x").Return(product, nil)
	productRepo.On("ExistsBySlug", mock.Anything, "moyu-rs3m", product.ID).Return(true, nil)

	body := bytes.NewBufferString(`{"name": "MoYu RS3M"}`)
	req := httptest.NewRequest("PUT", "/api/products/gan-356-x", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Duplicate slugs surface as 400, same as category creation
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ALREADY_EXISTS", resp["code"])
}

func TestProductHandler_Delete(t *testing.T) {
	productRepo := new(MockProductRepository)
	router := newProductTestRouter(productRepo)

	product := newTestProduct(t, "GAN 356 X")
	productRepo.On("FindBySlug", mock.Anything, "gan-356-x").Return(product, nil)
	productRepo.On("Delete", mock.Anything, product.ID).Return(nil)

	req := httptest.NewRequest("DELETE", "/api/products/gan-356-x", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Product deleted successfully", resp["message"])
}

func TestProductHandler_Delete_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	router := newProductTestRouter(productRepo)

	productRepo.On("FindBySlug", mock.Anything, "missing").Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest("DELETE", "/api/products/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
