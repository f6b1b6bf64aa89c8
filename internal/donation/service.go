// File: internal/donation/service.go
package donation

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"donation_backend/internal/common"
	"donation_backend/internal/config"
	"donation_backend/internal/shared"
)

// anonymousDonor is recorded when the signed-in user has no display name.
const anonymousDonor = "Anonymous"

// upiModeLabel is the mode string carried in the UPI success redirect.
// The wallet path reports "UPI" while the stored enum value is "upi".
const upiModeLabel = "UPI"

// Service owns the donation submission workflow: validation, gateway
// order creation, and persisting the record when a success callback
// fires.
type Service struct {
	repo    Repository
	gateway Gateway
	cfg     *config.Config
	logger  *zap.Logger
}

// NewService creates a new donation service.
func NewService(repo Repository, gateway Gateway, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
	}
}

// Checkout validates the submission and prepares the selected payment
// path. Nothing external is invoked until both the amount and a valid
// mode are present.
func (s *Service) Checkout(ctx context.Context, user shared.User, req *CheckoutRequest) (*CheckoutResponse, error) {
	if req.Amount == "" {
		return nil, common.NewValidationAPIError(map[string]string{"amount": "Please enter the amount"})
	}
	if req.PaymentMode == "" {
		return nil, common.NewValidationAPIError(map[string]string{"payment_mode": "Please select a payment mode"})
	}

	mode := PaymentMode(req.PaymentMode)
	if !mode.IsValid() {
		return nil, common.NewValidationAPIError(map[string]string{"payment_mode": "Please select a payment mode"})
	}

	amount, err := strconv.Atoi(req.Amount)
	if err != nil || amount < 1 {
		return nil, common.NewValidationAPIError(map[string]string{"amount": "Amount must be a positive number"})
	}

	if mode.UsesCheckoutDialog() {
		// The gateway receives minor units; the eventual record keeps
		// the entered major-units value.
		amountMinorUnits := amount * 100
		orderID, err := s.gateway.CreateOrder(ctx, amountMinorUnits, s.cfg.Currency, uuid.NewString())
		if err != nil {
			s.logger.Error("Checkout failed to create gateway order", zap.Error(err), zap.String("uid", user.UID))
			return nil, common.ErrServiceUnavailable.WithDetails("Could not start the payment.")
		}

		return &CheckoutResponse{
			PaymentMode: string(mode),
			Razorpay: &RazorpayOptions{
				Key:      s.cfg.RazorpayKeyID,
				OrderID:  orderID,
				Amount:   amountMinorUnits,
				Currency: s.cfg.Currency,
				Name:     s.cfg.MerchantName,
				Prefill: RazorpayPrefill{
					Name:  donorName(user),
					Email: user.Email,
				},
				Theme: RazorpayTheme{Color: s.cfg.CheckoutThemeColor},
			},
		}, nil
	}

	// UPI: the wallet button takes the amount in major units, as a string.
	return &CheckoutResponse{
		PaymentMode: string(mode),
		GooglePay: &GooglePayRequest{
			APIVersion:      2,
			APIVersionMinor: 0,
			AllowedPaymentMethods: []GooglePayMethod{
				{
					Type: "CARD",
					Parameters: GooglePayCardParameters{
						AllowedAuthMethods:  []string{"PAN_ONLY", "CRYPTOGRAM_3DS"},
						AllowedCardNetworks: []string{"MASTERCARD", "VISA"},
					},
					TokenizationSpecification: GooglePayTokenization{
						Type: "PAYMENT_GATEWAY",
						Parameters: map[string]string{
							"gateway":           s.cfg.GPayGateway,
							"gatewayMerchantId": s.cfg.GPayGatewayMerchantID,
						},
					},
				},
			},
			MerchantInfo: GooglePayMerchantInfo{
				MerchantID:   s.cfg.GPayMerchantID,
				MerchantName: s.cfg.GPayMerchantName,
			},
			TransactionInfo: GooglePayTransactionInfo{
				TotalPriceStatus: "FINAL",
				TotalPrice:       req.Amount,
				CurrencyCode:     s.cfg.Currency,
			},
			Environment: s.cfg.GPayEnvironment,
		},
	}, nil
}

// Confirm is the card/netbanking success callback. The gateway
// signature is verified, then the donation record is appended. This is
// the only point where a record is written and the only point where the
// amount is coerced to an integer for storage.
func (s *Service) Confirm(ctx context.Context, user shared.User, req *ConfirmRequest) (*PaymentResult, error) {
	if !s.gateway.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature) {
		s.logger.Warn("Payment confirmation rejected: bad signature",
			zap.String("uid", user.UID),
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
		)
		return nil, common.ErrUnauthorized.WithDetails("Payment signature verification failed.")
	}

	amount, err := strconv.ParseInt(req.Amount, 10, 64)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("Amount must be a base-10 integer.")
	}

	// Stored in entered (major) units, not the minor-units value the
	// gateway was charged with.
	record := &Donation{
		DonorName:   donorName(user),
		Amount:      int(amount),
		PaymentMode: req.PaymentMode,
		Date:        time.Now(),
		PaymentID:   req.PaymentID,
	}

	docID, err := s.repo.Add(ctx, record)
	if err != nil {
		s.logger.Error("Failed to persist donation record", zap.Error(err), zap.String("payment_id", req.PaymentID))
		return nil, common.ErrInternalServer.WithDetails("Could not record the donation.")
	}

	s.logger.Info("Donation recorded",
		zap.String("doc_id", docID),
		zap.String("payment_id", req.PaymentID),
		zap.Int("amount", record.Amount),
		zap.String("payment_mode", record.PaymentMode),
	)

	return &PaymentResult{
		Redirect: common.RoutePaymentSuccess,
		State: RedirectState{
			Amount:      req.Amount,
			PaymentMode: req.PaymentMode,
		},
	}, nil
}

// CompleteUPI is the wallet-pay success callback. It only produces the
// success redirect; no donation record is written on this path. The
// reconciliation job and webhook surface the resulting gap.
func (s *Service) CompleteUPI(ctx context.Context, user shared.User, req *UPICompleteRequest) (*PaymentResult, error) {
	s.logger.Info("UPI payment completed without a donation record",
		zap.String("uid", user.UID),
		zap.String("amount", req.Amount),
	)
	return &PaymentResult{
		Redirect: common.RoutePaymentSuccess,
		State: RedirectState{
			Amount:      req.Amount,
			PaymentMode: upiModeLabel,
		},
	}, nil
}

// ListDonations returns a page of the donation log, newest first.
func (s *Service) ListDonations(ctx context.Context, page, pageSize int) ([]Donation, *common.Pagination, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count donations", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not list donations.")
	}

	offset := (page - 1) * pageSize
	records, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		s.logger.Error("Failed to list donations", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not list donations.")
	}

	return records, common.NewPagination(total, page, pageSize), nil
}

// CheckPaymentRecorded reports whether a donation record exists for the
// given gateway payment reference. Used by the webhook and the
// reconciliation job; it never creates a record.
func (s *Service) CheckPaymentRecorded(ctx context.Context, paymentID string) (bool, error) {
	_, err := s.repo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Reconcile fetches recent gateway payments and reports how many
// captured payments have no matching donation record. Observational
// only; no records are created or repaired.
func (s *Service) Reconcile(ctx context.Context, count int) (int, error) {
	payments, err := s.gateway.FetchPayments(ctx, count)
	if err != nil {
		return 0, err
	}

	unrecorded := 0
	for _, p := range payments {
		if p.Status != "captured" {
			continue
		}
		recorded, err := s.CheckPaymentRecorded(ctx, p.ID)
		if err != nil {
			return unrecorded, err
		}
		if !recorded {
			unrecorded++
			s.logger.Warn("Reconciliation found captured payment without donation record",
				zap.String("payment_id", p.ID),
				zap.String("method", p.Method),
				zap.Int64("amount_minor_units", p.Amount),
			)
		}
	}
	return unrecorded, nil
}

func donorName(user shared.User) string {
	if user.DisplayName == "" {
		return anonymousDonor
	}
	return user.DisplayName
}
