package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	paymentapp "github.com/cubemart/backend/internal/application/payment"
	"github.com/cubemart/backend/internal/interfaces/http/dto"
)

// Maximum webhook payload size (64KB - Stripe webhooks are typically small)
const maxWebhookPayloadSize = 65536

// StripeWebhookHandler receives payment event deliveries from Stripe.
// The endpoint is unauthenticated; trust comes from signature verification.
type StripeWebhookHandler struct {
	BaseHandler
	webhookService *paymentapp.StripeWebhookService
	logger         *zap.Logger
}

// NewStripeWebhookHandler creates a new StripeWebhookHandler
func NewStripeWebhookHandler(webhookService *paymentapp.StripeWebhookService, logger *zap.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		webhookService: webhookService,
		logger:         logger,
	}
}

// Handle processes POST /api/webhooks/stripe. A bad signature gets a 400;
// everything after verification is acknowledged with 200 so Stripe does not
// redeliver events we have already logged as failed.
func (h *StripeWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		h.logger.Error("Failed to read webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid payload"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")

	result, err := h.webhookService.ProcessWebhook(c.Request.Context(), payload, signature)
	if err != nil {
		h.logger.Warn("Webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid signature"})
		return
	}

	if result != nil && !result.Processed {
		h.logger.Info("Webhook event acknowledged without processing",
			zap.String("event_id", result.EventID),
			zap.String("event_type", result.EventType),
			zap.String("message", result.Message),
		)
	}

	c.JSON(http.StatusOK, dto.ReceivedResponse{Received: true})
}
