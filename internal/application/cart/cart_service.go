package cart

import (
	"context"

	"github.com/cubemart/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// AddItemRequest is the payload for adding a product to the cart. Name,
// price and image are snapshotted into the line as given.
type AddItemRequest struct {
	ProductID string          `json:"id" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Image     string          `json:"image"`
	Variant   string          `json:"variant"`
}

// UpdateQuantityRequest is the payload for setting a line's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart with its derived totals
type CartResponse struct {
	Items      []cart.Item `json:"items"`
	IsOpen     bool        `json:"isOpen"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
}

// Service runs cart operations as load-modify-save cycles against the
// backing store. Each operation returns the resulting cart state.
type Service struct {
	store cart.Store
}

// NewService creates a new cart Service
func NewService(store cart.Store) *Service {
	return &Service{store: store}
}

// Get returns the current cart state
func (s *Service) Get(ctx context.Context, cartID string) (*CartResponse, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// AddItem upserts a line by product id and persists the cart
func (s *Service) AddItem(ctx context.Context, cartID string, req AddItemRequest) (*CartResponse, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) {
		c.AddItem(cart.Item{
			ProductID: req.ProductID,
			Name:      req.Name,
			Price:     req.Price,
			Image:     req.Image,
			Variant:   req.Variant,
		})
	})
}

// RemoveItem deletes the line for the given product id
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (*CartResponse, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) {
		c.RemoveItem(productID)
	})
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (s *Service) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*CartResponse, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) {
		c.UpdateQuantity(productID, quantity)
	})
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, cartID string) (*CartResponse, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) {
		c.Clear()
	})
}

// Toggle flips the cart drawer's open flag
func (s *Service) Toggle(ctx context.Context, cartID string) (*CartResponse, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) {
		c.Toggle()
	})
}

func (s *Service) mutate(ctx context.Context, cartID string, apply func(*cart.Cart)) (*CartResponse, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	apply(c)

	if err := s.store.Save(ctx, cartID, c); err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

func toResponse(c *cart.Cart) *CartResponse {
	return &CartResponse{
		Items:      c.Items,
		IsOpen:     c.IsOpen,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice().InexactFloat64(),
	}
}
