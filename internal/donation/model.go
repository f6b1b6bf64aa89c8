// File: internal/donation/model.go
package donation

import "time"

// PaymentMode is the donor's payment-mode selection. Single-select,
// mutually exclusive.
type PaymentMode string

const (
	ModeNetbanking PaymentMode = "netbanking"
	ModeUPI        PaymentMode = "upi"
	ModeCard       PaymentMode = "card"
)

// IsValid reports whether the mode is one of the known selections.
func (m PaymentMode) IsValid() bool {
	switch m {
	case ModeNetbanking, ModeUPI, ModeCard:
		return true
	}
	return false
}

// UsesCheckoutDialog reports whether the mode is handled by the hosted
// payment-collection dialog (card/netbanking) rather than the wallet
// button (UPI).
func (m PaymentMode) UsesCheckoutDialog() bool {
	return m == ModeCard || m == ModeNetbanking
}

// Donation mirrors a document in the donations collection. Records are
// append-only; they are written once from a payment-success callback
// and never mutated.
//
// Amount is the user-entered major-units integer, NOT the minor-units
// value sent to the gateway. The two representations intentionally
// differ; see the checkout flow.
type Donation struct {
	DonorName   string    `json:"donor_name" firestore:"donorName"`
	Amount      int       `json:"amount" firestore:"amount"`
	PaymentMode string    `json:"payment_mode" firestore:"paymentMode"`
	Date        time.Time `json:"date" firestore:"date"`
	PaymentID   string    `json:"payment_id" firestore:"paymentId"`
}

// CheckoutRequest starts a donation. Amount arrives as the raw string
// the user typed so an empty field can be told apart from zero.
type CheckoutRequest struct {
	Amount      string `json:"amount"`
	PaymentMode string `json:"payment_mode"`
}

// RazorpayPrefill carries donor details into the checkout dialog.
type RazorpayPrefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RazorpayTheme styles the checkout dialog.
type RazorpayTheme struct {
	Color string `json:"color"`
}

// RazorpayOptions is the configuration the client hands to the hosted
// payment-collection dialog. Amount is in minor units (paise).
type RazorpayOptions struct {
	Key      string          `json:"key"`
	OrderID  string          `json:"order_id"`
	Amount   int             `json:"amount"`
	Currency string          `json:"currency"`
	Name     string          `json:"name"`
	Prefill  RazorpayPrefill `json:"prefill"`
	Theme    RazorpayTheme   `json:"theme"`
}

// GooglePayRequest is the payment-request descriptor for the wallet-pay
// button, in the wire shape the Google Pay API expects.
type GooglePayRequest struct {
	APIVersion            int                    `json:"apiVersion"`
	APIVersionMinor       int                    `json:"apiVersionMinor"`
	AllowedPaymentMethods []GooglePayMethod      `json:"allowedPaymentMethods"`
	MerchantInfo          GooglePayMerchantInfo  `json:"merchantInfo"`
	TransactionInfo       GooglePayTransactionInfo `json:"transactionInfo"`
	Environment           string                 `json:"environment"`
}

type GooglePayMethod struct {
	Type                      string                  `json:"type"`
	Parameters                GooglePayCardParameters `json:"parameters"`
	TokenizationSpecification GooglePayTokenization   `json:"tokenizationSpecification"`
}

type GooglePayCardParameters struct {
	AllowedAuthMethods   []string `json:"allowedAuthMethods"`
	AllowedCardNetworks  []string `json:"allowedCardNetworks"`
}

type GooglePayTokenization struct {
	Type       string            `json:"type"`
	Parameters map[string]string `json:"parameters"`
}

type GooglePayMerchantInfo struct {
	MerchantID   string `json:"merchantId"`
	MerchantName string `json:"merchantName"`
}

// GooglePayTransactionInfo carries the amount in major units, as a
// string, unlike the minor-units integer the checkout dialog gets.
type GooglePayTransactionInfo struct {
	TotalPriceStatus string `json:"totalPriceStatus"`
	TotalPrice       string `json:"totalPrice"`
	CurrencyCode     string `json:"currencyCode"`
}

// CheckoutResponse returns exactly one payment path: the dialog options
// for card/netbanking, or the wallet descriptor for UPI.
type CheckoutResponse struct {
	PaymentMode string            `json:"payment_mode"`
	Razorpay    *RazorpayOptions  `json:"razorpay,omitempty"`
	GooglePay   *GooglePayRequest `json:"google_pay,omitempty"`
}

// ConfirmRequest is the card/netbanking success callback: the gateway's
// payment reference plus the original submission.
type ConfirmRequest struct {
	OrderID     string `json:"order_id" binding:"required"`
	PaymentID   string `json:"payment_id" binding:"required"`
	Signature   string `json:"signature" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	PaymentMode string `json:"payment_mode" binding:"required,oneof=card netbanking"`
}

// UPICompleteRequest is the wallet-pay success callback.
type UPICompleteRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// RedirectState is the transient navigation state handed to the
// payment-success route.
type RedirectState struct {
	Amount      string `json:"amount"`
	PaymentMode string `json:"payment_mode"`
}

// PaymentResult tells the frontend where to navigate after a success
// callback is processed.
type PaymentResult struct {
	Redirect string        `json:"redirect"`
	State    RedirectState `json:"state"`
}
