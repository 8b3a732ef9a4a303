package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrder(t *testing.T) {
	o := NewOrder()

	assert.True(t, strings.HasPrefix(o.OrderNumber, "ORD-"))
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, StatusPending, o.Status)
	assert.Nil(t, o.StripePaymentIntentID)
}

func TestOrder_LinkPaymentIntent(t *testing.T) {
	o := NewOrder()
	o.LinkPaymentIntent("pi_123")

	if assert.NotNil(t, o.StripePaymentIntentID) {
		assert.Equal(t, "pi_123", *o.StripePaymentIntentID)
	}
}

func TestOrder_MarkPaid_Idempotent(t *testing.T) {
	o := NewOrder()

	o.MarkPaid()
	assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
	assert.Equal(t, StatusConfirmed, o.Status)

	// Applying the same transition again leaves the same end state
	o.MarkPaid()
	assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
	assert.Equal(t, StatusConfirmed, o.Status)
}

func TestOrder_MarkPaymentFailed(t *testing.T) {
	o := NewOrder()
	o.MarkPaymentFailed()

	assert.Equal(t, PaymentStatusFailed, o.PaymentStatus)
	assert.Equal(t, StatusCancelled, o.Status)
}
