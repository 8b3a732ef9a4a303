package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cubemart/backend/internal/domain/cart"
)

// InMemoryStore implements cart.Store using an in-memory map.
// This is suitable for single-instance deployments and testing.
// WARNING: carts do not survive restarts and are not shared across
// process instances.
type InMemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewInMemoryStore creates a new in-memory cart store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		carts: make(map[string][]byte),
	}
}

// Load returns the cart for the given id, or an empty cart when none is stored
func (s *InMemoryStore) Load(ctx context.Context, cartID string) (*cart.Cart, error) {
	s.mu.RLock()
	data, exists := s.carts[cartID]
	s.mu.RUnlock()

	if !exists {
		return cart.New(), nil
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return cart.New(), nil
	}
	return &c, nil
}

// Save persists the cart under the given id
func (s *InMemoryStore) Save(ctx context.Context, cartID string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.carts[cartID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the cart for the given id
func (s *InMemoryStore) Delete(ctx context.Context, cartID string) error {
	s.mu.Lock()
	delete(s.carts, cartID)
	s.mu.Unlock()
	return nil
}

// Ensure InMemoryStore implements cart.Store
var _ cart.Store = (*InMemoryStore)(nil)
