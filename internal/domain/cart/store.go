package cart

import "context"

// Store persists carts keyed by cart id. Implementations namespace the key
// under StorageNamespace. Loading an id that was never saved returns an
// empty cart, not an error.
type Store interface {
	// Load returns the cart for the given id
	Load(ctx context.Context, cartID string) (*Cart, error)

	// Save persists the cart under the given id
	Save(ctx context.Context, cartID string, cart *Cart) error

	// Delete removes the cart for the given id
	Delete(ctx context.Context, cartID string) error
}
