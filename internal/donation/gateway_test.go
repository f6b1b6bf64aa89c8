package donation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signHex(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRazorpayGateway_VerifyPaymentSignature(t *testing.T) {
	g := &razorpayGateway{keySecret: "test_secret"}

	orderID := "order_ABC123"
	paymentID := "pay_XYZ789"
	valid := signHex(orderID+"|"+paymentID, "test_secret")

	assert.True(t, g.VerifyPaymentSignature(orderID, paymentID, valid))
	assert.False(t, g.VerifyPaymentSignature(orderID, paymentID, "forged"))
	assert.False(t, g.VerifyPaymentSignature(orderID, "pay_OTHER", valid))
	assert.False(t, g.VerifyPaymentSignature(orderID, paymentID, ""))
}

func TestRazorpayGateway_VerifyPaymentSignature_EmptySecret(t *testing.T) {
	g := &razorpayGateway{keySecret: ""}

	// With no secret configured every signature is rejected, including
	// one computed over the empty key.
	sig := signHex("order_1|pay_1", "")
	assert.False(t, g.VerifyPaymentSignature("order_1", "pay_1", sig))
}

func TestRazorpayGateway_VerifyWebhookSignature(t *testing.T) {
	g := &razorpayGateway{webhookSecret: "hook_secret"}

	body := []byte(`{"event":"payment.captured","payload":{}}`)
	valid := signHex(string(body), "hook_secret")

	assert.True(t, g.VerifyWebhookSignature(body, valid))
	assert.False(t, g.VerifyWebhookSignature(body, signHex(string(body), "wrong_secret")))
	assert.False(t, g.VerifyWebhookSignature([]byte(`{"tampered":true}`), valid))
}
