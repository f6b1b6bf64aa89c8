// File: internal/donation/webhook.go
package donation

import (
	"encoding/json"
	"io"
	"net/http"

	"donation_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const razorpaySignatureHeader = "X-Razorpay-Signature"

// webhookEvent is the slice of the gateway webhook payload the app reads.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID     string `json:"id"`
				Amount int64  `json:"amount"`
				Method string `json:"method"`
				Status string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// WebhookHandler receives gateway notifications. It verifies the
// signature and checks captured payments against the donation log; it
// never writes records itself.
type WebhookHandler struct {
	service *Service
	gateway Gateway
	logger  *zap.Logger
}

// NewWebhookHandler creates a new gateway webhook handler.
func NewWebhookHandler(service *Service, gateway Gateway, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		gateway: gateway,
		logger:  logger,
	}
}

// RegisterRoutes sets up the unauthenticated webhook endpoint.
func (h *WebhookHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/webhooks/razorpay", h.handle)
}

func (h *WebhookHandler) handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Failed to read request body."))
		return
	}

	signature := c.GetHeader(razorpaySignatureHeader)
	if signature == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing gateway signature."))
		return
	}
	if !h.gateway.VerifyWebhookSignature(body, signature) {
		h.logger.Warn("Webhook signature verification failed")
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Webhook signature verification failed."))
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Malformed webhook payload."))
		return
	}

	if event.Event == "payment.captured" {
		paymentID := event.Payload.Payment.Entity.ID
		recorded, err := h.service.CheckPaymentRecorded(c.Request.Context(), paymentID)
		if err != nil {
			h.logger.Error("Failed to check donation record for captured payment",
				zap.Error(err), zap.String("payment_id", paymentID))
			common.RespondWithError(c, common.ErrInternalServer.WithDetails("Failed to process webhook."))
			return
		}
		if !recorded {
			// UPI successes redirect without persisting, so captured
			// payments can legitimately have no matching record.
			h.logger.Warn("Captured payment has no donation record",
				zap.String("payment_id", paymentID),
				zap.String("method", event.Payload.Payment.Entity.Method),
				zap.Int64("amount_minor_units", event.Payload.Payment.Entity.Amount),
			)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
