package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/cubemart/backend/internal/application/cart"
	infracart "github.com/cubemart/backend/internal/infrastructure/cart"
	"github.com/cubemart/backend/internal/interfaces/http/middleware"
)

func newCartTestRouter() *gin.Engine {
	service := cartapp.NewService(infracart.NewInMemoryStore())
	h := NewCartHandler(service)

	router := gin.New()
	router.Use(middleware.CartID())
	router.GET("/api/cart", h.Get)
	router.POST("/api/cart/items", h.AddItem)
	router.PUT("/api/cart/items/:id", h.UpdateItem)
	router.DELETE("/api/cart/items/:id", h.RemoveItem)
	router.DELETE("/api/cart", h.Clear)
	router.POST("/api/cart/toggle", h.Toggle)
	return router
}

func doCartRequest(t *testing.T, router *gin.Engine, method, path, cartID string, body string) (*httptest.ResponseRecorder, cartapp.CartResponse) {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cartID != "" {
		req.Header.Set(middleware.CartIDHeader, cartID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp cartapp.CartResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestCartHandler_Get_Empty(t *testing.T) {
	router := newCartTestRouter()

	w, resp := doCartRequest(t, router, "GET", "/api/cart", "cart-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Items)
	assert.False(t, resp.IsOpen)
	assert.Equal(t, 0, resp.TotalItems)
	assert.Equal(t, float64(0), resp.TotalPrice)
}

func TestCartHandler_Get_MintsCartID(t *testing.T) {
	router := newCartTestRouter()

	w, _ := doCartRequest(t, router, "GET", "/api/cart", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.CartIDHeader))
}

func TestCartHandler_AddItem(t *testing.T) {
	router := newCartTestRouter()

	body := `{"id": "p1", "name": "GAN 356 X", "price": 29.99, "image": "/img/gan.jpg"}`
	w, resp := doCartRequest(t, router, "POST", "/api/cart/items", "cart-1", body)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ProductID)
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.Equal(t, 1, resp.TotalItems)
	assert.Equal(t, 29.99, resp.TotalPrice)

	// Adding the same product again bumps the quantity instead of duplicating
	w, resp = doCartRequest(t, router, "POST", "/api/cart/items", "cart-1", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 2, resp.TotalItems)
	assert.Equal(t, 59.98, resp.TotalPrice)
}

func TestCartHandler_AddItem_MissingFields(t *testing.T) {
	router := newCartTestRouter()

	w, _ := doCartRequest(t, router, "POST", "/api/cart/items", "cart-1", `{"name": "GAN 356 X"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp["code"])
}

func TestCartHandler_UpdateItem(t *testing.T) {
	router := newCartTestRouter()

	doCartRequest(t, router, "POST", "/api/cart/items", "cart-1", `{"id": "p1", "name": "GAN 356 X", "price": 29.99}`)

	w, resp := doCartRequest(t, router, "PUT", "/api/cart/items/p1", "cart-1", `{"quantity": 5}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, 5, resp.TotalItems)
}

func TestCartHandler_UpdateItem_ZeroRemovesLine(t *testing.T) {
	router := newCartTestRouter()

	doCartRequest(t, router, "POST", "/api/cart/items", "cart-1", `{"id": "p1", "name": "GAN 356 X", "price": 29.99}`)

	w, resp := doCartRequest(t, router, "PUT", "/api/cart/items/p1", "cart-1", `{"quantity": 0}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Items)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	router := newCartTestRouter()

	doCartRequest(t, router, "POST", "/api/cart/items", "cart-1", `{"id": "p1", "name": "GAN 356 X", "price": 29.99}`)
	doCartRequest(t, router, "POST", "/api/cart/items", "cart-1", `{"id": "p2", "name": "MoYu RS3M", "price": 9.99}`)

	w, resp := doCartRequest(t, router, "DELETE", "/api/cart/items/p1", "cart-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p2", resp.Items[0].ProductID)
}

func TestCartHandler_Clear(t *testing.T) {
	router := newCartTestRouter()

	doCartRequest(t, router, "POST", "/api/cart/items", "cart-1", `{"id": "p1", "name": "GAN 356 X", "price": 29.99}`)

	w, resp := doCartRequest(t, router, "DELETE", "/api/cart", "cart-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.TotalItems)
}

func TestCartHandler_Toggle(t *testing.T) {
	router := newCartTestRouter()

	w, resp := doCartRequest(t, router, "POST", "/api/cart/toggle", "cart-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.IsOpen)

	w, resp = doCartRequest(t, router, "POST", "/api/cart/toggle", "cart-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.IsOpen)
}

func TestCartHandler_IsolatedByCartID(t *testing.T) {
	router := newCartTestRouter()

	doCartRequest(t, router, "POST", "/api/cart/items", "cart-1", `{"id": "p1", "name": "GAN 356 X", "price": 29.99}`)

	w, resp := doCartRequest(t, router, "GET", "/api/cart", "cart-2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Items)
}
