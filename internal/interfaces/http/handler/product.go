package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/cubemart/backend/internal/application/catalog"
	"github.com/cubemart/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product listing, detail and mutation endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// List handles GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	query := catalogapp.ListProductsQuery{
		Search:    strings.TrimSpace(c.Query("search")),
		Category:  c.Query("category"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		query.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		query.Limit = limit
	}
	if featured, err := strconv.ParseBool(c.Query("featured")); err == nil && c.Query("featured") != "" {
		query.Featured = &featured
	}

	result, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get handles GET /api/products/:slug
func (h *ProductHandler) Get(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.productService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Update handles PUT /api/products/:slug
func (h *ProductHandler) Update(c *gin.Context) {
	slug := c.Param("slug")

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), slug, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete handles DELETE /api/products/:slug
func (h *ProductHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")

	if err := h.productService.Delete(c.Request.Context(), slug); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Product deleted successfully")
}
