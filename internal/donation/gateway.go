// File: internal/donation/gateway.go
package donation

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"

	"donation_backend/internal/config"
)

// GatewayPayment is the slice of a gateway payment entity the app cares
// about during reconciliation.
type GatewayPayment struct {
	ID     string
	Status string
	Method string
	Amount int64 // minor units, as reported by the gateway
}

// Gateway abstracts the payment-collection gateway so the donation
// service (and tests) never touch the SDK directly.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinorUnits int, currency, receiptID string) (string, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	VerifyWebhookSignature(body []byte, signature string) bool
	FetchPayments(ctx context.Context, count int) ([]GatewayPayment, error)
}

type razorpayGateway struct {
	client        *razorpay.Client
	keySecret     string
	webhookSecret string
	logger        *zap.Logger
}

// NewRazorpayGateway creates the Razorpay-backed gateway.
func NewRazorpayGateway(cfg *config.Config, logger *zap.Logger) Gateway {
	if cfg.RazorpayKeySecret == "" {
		logger.Warn("Razorpay key secret is empty; order creation and signature checks will fail")
	}
	return &razorpayGateway{
		client:        razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		keySecret:     cfg.RazorpayKeySecret,
		webhookSecret: cfg.RazorpayWebhookSecret,
		logger:        logger,
	}
}

// CreateOrder creates a gateway order for the given minor-units amount
// and returns the order ID the checkout dialog needs.
func (g *razorpayGateway) CreateOrder(ctx context.Context, amountMinorUnits int, currency, receiptID string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinorUnits,
		"currency": currency,
		"receipt":  receiptID,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.logger.Error("Failed to create gateway order",
			zap.Error(err),
			zap.Int("amount_minor_units", amountMinorUnits),
			zap.String("receipt", receiptID),
		)
		return "", fmt.Errorf("failed to create payment order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return "", fmt.Errorf("gateway order response missing id")
	}

	g.logger.Info("Gateway order created",
		zap.String("order_id", orderID),
		zap.Int("amount_minor_units", amountMinorUnits),
		zap.String("currency", currency),
	)
	return orderID, nil
}

// VerifyPaymentSignature checks the checkout success callback signature:
// HMAC-SHA256 over "orderID|paymentID" with the key secret.
func (g *razorpayGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return verifyHMAC([]byte(orderID+"|"+paymentID), signature, g.keySecret)
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against
// an HMAC over the raw webhook body.
func (g *razorpayGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return verifyHMAC(body, signature, g.webhookSecret)
}

func verifyHMAC(payload []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// FetchPayments retrieves the most recent gateway payments for
// reconciliation.
func (g *razorpayGateway) FetchPayments(ctx context.Context, count int) ([]GatewayPayment, error) {
	resp, err := g.client.Payment.All(map[string]interface{}{
		"count": count,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gateway payments: %w", err)
	}

	items, ok := resp["items"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("gateway payment listing missing items")
	}

	payments := make([]GatewayPayment, 0, len(items))
	for _, item := range items {
		entity, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		p := GatewayPayment{}
		if id, ok := entity["id"].(string); ok {
			p.ID = id
		}
		if st, ok := entity["status"].(string); ok {
			p.Status = st
		}
		if method, ok := entity["method"].(string); ok {
			p.Method = method
		}
		if amount, ok := entity["amount"].(float64); ok {
			p.Amount = int64(amount)
		}
		payments = append(payments, p)
	}
	return payments, nil
}
