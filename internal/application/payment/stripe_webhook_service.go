package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cubemart/backend/internal/domain/order"
	"github.com/cubemart/backend/internal/domain/shared"
	"github.com/cubemart/backend/internal/infrastructure/payment"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

// StripeWebhookService reconciles order payment state from Stripe webhook
// events. Event handling is best-effort: once the signature is verified,
// handler failures are logged but never surfaced, so the provider does not
// retry events we cannot act on.
type StripeWebhookService struct {
	config    *payment.StripeConfig
	orderRepo order.Repository
	logger    *zap.Logger
}

// StripeWebhookServiceConfig contains configuration for StripeWebhookService
type StripeWebhookServiceConfig struct {
	Config    *payment.StripeConfig
	OrderRepo order.Repository
	Logger    *zap.Logger
}

// NewStripeWebhookService creates a new StripeWebhookService
func NewStripeWebhookService(cfg StripeWebhookServiceConfig) *StripeWebhookService {
	return &StripeWebhookService{
		config:    cfg.Config,
		orderRepo: cfg.OrderRepo,
		logger:    cfg.Logger,
	}
}

// WebhookResult contains the result of processing a webhook
type WebhookResult struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Processed bool   `json:"processed"`
	Message   string `json:"message,omitempty"`
}

// ProcessWebhook verifies and processes a Stripe webhook event. A signature
// verification failure is the only returned error; everything after it is
// acknowledged regardless of outcome.
func (s *StripeWebhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.config.WebhookSecret)
	if err != nil {
		s.logger.Error("Failed to verify webhook signature",
			zap.Error(err))
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	s.logger.Info("Processing Stripe webhook event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))

	result := &WebhookResult{
		EventID:   event.ID,
		EventType: string(event.Type),
		Processed: true,
	}

	switch event.Type {
	case "payment_intent.succeeded":
		err = s.handlePaymentIntentSucceeded(ctx, event)
	case "payment_intent.payment_failed":
		err = s.handlePaymentIntentFailed(ctx, event)
	case "checkout.session.completed":
		err = s.handleCheckoutSessionCompleted(ctx, event)
	default:
		s.logger.Debug("Unhandled webhook event type",
			zap.String("event_type", string(event.Type)))
		result.Message = "Event type not handled"
	}

	if err != nil {
		s.logger.Error("Failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		result.Processed = false
		result.Message = err.Error()
	}

	return result, nil
}

// handlePaymentIntentSucceeded handles payment_intent.succeeded events
func (s *StripeWebhookService) handlePaymentIntentSucceeded(ctx context.Context, event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}

	s.logger.Info("Handling payment intent succeeded",
		zap.String("payment_intent_id", intent.ID))

	return s.markPaid(ctx, intent.ID)
}

// handlePaymentIntentFailed handles payment_intent.payment_failed events
func (s *StripeWebhookService) handlePaymentIntentFailed(ctx context.Context, event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}

	s.logger.Info("Handling payment intent failed",
		zap.String("payment_intent_id", intent.ID))

	ord, err := s.findOrder(ctx, intent.ID)
	if err != nil || ord == nil {
		return err
	}

	ord.MarkPaymentFailed()

	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Warn("Order payment failed",
		zap.String("order_id", ord.ID.String()),
		zap.String("order_number", ord.OrderNumber))

	return nil
}

// handleCheckoutSessionCompleted handles checkout.session.completed events.
// The session only references the payment intent, so it is normalized to the
// intent id and applied the same way as payment_intent.succeeded.
func (s *StripeWebhookService) handleCheckoutSessionCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	intentID := ""
	if session.PaymentIntent != nil {
		intentID = session.PaymentIntent.ID
	}
	if intentID == "" {
		s.logger.Warn("Checkout session has no payment intent, skipping",
			zap.String("session_id", session.ID))
		return nil
	}

	s.logger.Info("Handling checkout session completed",
		zap.String("session_id", session.ID),
		zap.String("payment_intent_id", intentID))

	return s.markPaid(ctx, intentID)
}

// markPaid transitions the order behind the payment intent to paid and
// confirmed. The assignment is an overwrite, so replayed events settle on
// the same state.
func (s *StripeWebhookService) markPaid(ctx context.Context, paymentIntentID string) error {
	ord, err := s.findOrder(ctx, paymentIntentID)
	if err != nil || ord == nil {
		return err
	}

	ord.MarkPaid()

	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info("Order marked as paid",
		zap.String("order_id", ord.ID.String()),
		zap.String("order_number", ord.OrderNumber))

	return nil
}

// findOrder looks up the order by payment intent id. A missing order is not
// an error: the webhook may race order creation, or reference a payment
// created outside this system. Receipt is acknowledged to prevent retries.
func (s *StripeWebhookService) findOrder(ctx context.Context, paymentIntentID string) (*order.Order, error) {
	ord, err := s.orderRepo.FindByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		if err == shared.ErrNotFound {
			s.logger.Warn("Order not found for payment intent",
				zap.String("payment_intent_id", paymentIntentID))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return ord, nil
}
