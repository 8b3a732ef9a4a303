package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByPaymentIntentID finds the order linked to a provider
	// payment-intent identifier. Returns shared.ErrNotFound when no order
	// carries the identifier.
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error
}
