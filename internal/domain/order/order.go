package order

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cubemart/backend/internal/domain/shared"
)

// PaymentStatus tracks the payment leg of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Status tracks the fulfillment leg of an order
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// Order is a customer order. It is created at checkout and from then on
// mutated only by the payment webhook reconciler, which transitions the
// payment and fulfillment status based on provider events.
type Order struct {
	shared.BaseEntity
	OrderNumber           string        `gorm:"type:varchar(30);not null;uniqueIndex"`
	StripePaymentIntentID *string       `gorm:"type:varchar(100);index"`
	PaymentStatus         PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Status                Status        `gorm:"type:varchar(20);not null;default:'PENDING'"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order with a generated order number
func NewOrder() *Order {
	return &Order{
		BaseEntity:    shared.NewBaseEntity(),
		OrderNumber:   generateOrderNumber(),
		PaymentStatus: PaymentStatusPending,
		Status:        StatusPending,
	}
}

// LinkPaymentIntent records the provider's payment-intent identifier so
// webhook events can be reconciled back to this order
func (o *Order) LinkPaymentIntent(paymentIntentID string) {
	o.StripePaymentIntentID = &paymentIntentID
	o.Touch()
}

// MarkPaid sets the order to PAID/CONFIRMED. The overwrite is unconditional
// so redelivered payment events are safe no-ops.
func (o *Order) MarkPaid() {
	o.PaymentStatus = PaymentStatusPaid
	o.Status = StatusConfirmed
	o.Touch()
}

// MarkPaymentFailed sets the order to FAILED/CANCELLED. Like MarkPaid, the
// overwrite is unconditional so redelivery is idempotent.
func (o *Order) MarkPaymentFailed() {
	o.PaymentStatus = PaymentStatusFailed
	o.Status = StatusCancelled
	o.Touch()
}

// generateOrderNumber produces a human-readable order number, e.g.
// "ORD-20260901-48213". Uniqueness is enforced by the database index.
func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), rand.Intn(100000))
}
