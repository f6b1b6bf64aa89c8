package donation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"donation_backend/internal/common"
	"donation_backend/internal/config"
	"donation_backend/internal/shared"
)

// MockRepository is a mock type for donation.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Add(ctx context.Context, d *Donation) (string, error) {
	args := m.Called(ctx, d)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) FindByPaymentID(ctx context.Context, paymentID string) (*Donation, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Donation), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, offset, limit int) ([]Donation, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Donation), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockGateway is a mock type for donation.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountMinorUnits int, currency, receiptID string) (string, error) {
	args := m.Called(ctx, amountMinorUnits, currency, receiptID)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

func (m *MockGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	args := m.Called(body, signature)
	return args.Bool(0)
}

func (m *MockGateway) FetchPayments(ctx context.Context, count int) ([]GatewayPayment, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]GatewayPayment), args.Error(1)
}

// Test Suite Setup
type DonationServiceTestSuite struct {
	service     *Service
	mockRepo    *MockRepository
	mockGateway *MockGateway
	logger      *zap.Logger
	cfg         *config.Config
}

func setupDonationServiceTestSuite(t *testing.T) *DonationServiceTestSuite {
	ts := &DonationServiceTestSuite{}
	ts.mockRepo = new(MockRepository)
	ts.mockGateway = new(MockGateway)
	ts.logger = zap.NewNop()
	ts.cfg = &config.Config{
		Currency:              "INR",
		MerchantName:          "non-profit",
		CheckoutThemeColor:    "#1e3a8a",
		RazorpayKeyID:         "rzp_test_XdJ18xJhFvpuOD",
		GPayEnvironment:       "TEST",
		GPayGateway:           "example",
		GPayGatewayMerchantID: "exampleMerchantId",
		GPayMerchantID:        "12345678901234567890",
		GPayMerchantName:      "Demo Merchant",
	}
	ts.service = NewService(ts.mockRepo, ts.mockGateway, ts.cfg, ts.logger)
	return ts
}

func testUser() shared.User {
	return shared.User{UID: "uid-123", DisplayName: "Asha Rao", Email: "asha@gmail.com"}
}

// --- Checkout ---

func TestService_Checkout_EmptyAmount(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	resp, err := ts.service.Checkout(ctx, testUser(), &CheckoutRequest{Amount: "", PaymentMode: "card"})

	assert.Nil(t, resp)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Equal(t, map[string]string{"amount": "Please enter the amount"}, apiErr.Details)
	// Neither the gateway nor the repository should have been touched.
	ts.mockGateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Checkout_MissingMode(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	resp, err := ts.service.Checkout(ctx, testUser(), &CheckoutRequest{Amount: "500", PaymentMode: ""})

	assert.Nil(t, resp)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"payment_mode": "Please select a payment mode"}, apiErr.Details)
}

func TestService_Checkout_UnknownMode(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	resp, err := ts.service.Checkout(ctx, testUser(), &CheckoutRequest{Amount: "500", PaymentMode: "cheque"})

	assert.Nil(t, resp)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"payment_mode": "Please select a payment mode"}, apiErr.Details)
}

func TestService_Checkout_NonNumericAmount(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	for _, amount := range []string{"abc", "0", "-5", "12.50"} {
		resp, err := ts.service.Checkout(ctx, testUser(), &CheckoutRequest{Amount: amount, PaymentMode: "card"})
		assert.Nil(t, resp, "amount %q should be rejected", amount)
		apiErr, ok := common.IsAPIError(err)
		assert.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	}
}

func TestService_Checkout_Card_ConvertsToMinorUnits(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	// 500 entered means 50000 paise at the gateway.
	ts.mockGateway.On("CreateOrder", ctx, 50000, "INR", mock.AnythingOfType("string")).Return("order_ABC123", nil)

	resp, err := ts.service.Checkout(ctx, testUser(), &CheckoutRequest{Amount: "500", PaymentMode: "card"})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, "card", resp.PaymentMode)
	assert.Nil(t, resp.GooglePay)
	assert.NotNil(t, resp.Razorpay)
	assert.Equal(t, "order_ABC123", resp.Razorpay.OrderID)
	assert.Equal(t, 50000, resp.Razorpay.Amount)
	assert.Equal(t, "INR", resp.Razorpay.Currency)
	assert.Equal(t, "rzp_test_XdJ18xJhFvpuOD", resp.Razorpay.Key)
	assert.Equal(t, "non-profit", resp.Razorpay.Name)
	assert.Equal(t, "Asha Rao", resp.Razorpay.Prefill.Name)
	assert.Equal(t, "asha@gmail.com", resp.Razorpay.Prefill.Email)
	assert.Equal(t, "#1e3a8a", resp.Razorpay.Theme.Color)
	ts.mockGateway.AssertExpectations(t)
}

func TestService_Checkout_Netbanking_UsesDialog(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	ts.mockGateway.On("CreateOrder", ctx, 100, "INR", mock.AnythingOfType("string")).Return("order_NB1", nil)

	resp, err := ts.service.Checkout(ctx, testUser(), &CheckoutRequest{Amount: "1", PaymentMode: "netbanking"})

	assert.NoError(t, err)
	assert.NotNil(t, resp.Razorpay)
	assert.Nil(t, resp.GooglePay)
	ts.mockGateway.AssertExpectations(t)
}

func TestService_Checkout_Card_GatewayError(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	ts.mockGateway.On("CreateOrder", ctx, 50000, "INR", mock.AnythingOfType("string")).Return("", errors.New("gateway down"))

	resp, err := ts.service.Checkout(ctx, testUser(), &CheckoutRequest{Amount: "500", PaymentMode: "card"})

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, common.ErrServiceUnavailable))
	ts.mockGateway.AssertExpectations(t)
}

func TestService_Checkout_UPI_BuildsWalletRequest(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	resp, err := ts.service.Checkout(ctx, testUser(), &CheckoutRequest{Amount: "250", PaymentMode: "upi"})

	assert.NoError(t, err)
	assert.NotNil(t, resp.GooglePay)
	assert.Nil(t, resp.Razorpay)
	// The wallet descriptor carries the entered major-units string, not paise.
	assert.Equal(t, "250", resp.GooglePay.TransactionInfo.TotalPrice)
	assert.Equal(t, "FINAL", resp.GooglePay.TransactionInfo.TotalPriceStatus)
	assert.Equal(t, "INR", resp.GooglePay.TransactionInfo.CurrencyCode)
	assert.Equal(t, "TEST", resp.GooglePay.Environment)
	assert.Equal(t, 2, resp.GooglePay.APIVersion)
	assert.Len(t, resp.GooglePay.AllowedPaymentMethods, 1)
	assert.Equal(t, "example", resp.GooglePay.AllowedPaymentMethods[0].TokenizationSpecification.Parameters["gateway"])
	// No gateway order is created for the wallet path.
	ts.mockGateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Confirm ---

func TestService_Confirm_RecordsMajorUnits(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	req := &ConfirmRequest{
		OrderID:     "order_ABC123",
		PaymentID:   "pay_XYZ789",
		Signature:   "deadbeef",
		Amount:      "500",
		PaymentMode: "card",
	}

	ts.mockGateway.On("VerifyPaymentSignature", "order_ABC123", "pay_XYZ789", "deadbeef").Return(true)
	ts.mockRepo.On("Add", ctx, mock.MatchedBy(func(d *Donation) bool {
		// Stored amount is the entered 500, never the 50000 the gateway saw.
		return d.Amount == 500 &&
			d.DonorName == "Asha Rao" &&
			d.PaymentMode == "card" &&
			d.PaymentID == "pay_XYZ789" &&
			!d.Date.IsZero()
	})).Return("doc-1", nil)

	result, err := ts.service.Confirm(ctx, testUser(), req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, common.RoutePaymentSuccess, result.Redirect)
	assert.Equal(t, "500", result.State.Amount)
	assert.Equal(t, "card", result.State.PaymentMode)
	ts.mockGateway.AssertExpectations(t)
	ts.mockRepo.AssertExpectations(t)
}

func TestService_Confirm_BadSignature(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	req := &ConfirmRequest{
		OrderID:     "order_ABC123",
		PaymentID:   "pay_XYZ789",
		Signature:   "forged",
		Amount:      "500",
		PaymentMode: "card",
	}

	ts.mockGateway.On("VerifyPaymentSignature", "order_ABC123", "pay_XYZ789", "forged").Return(false)

	result, err := ts.service.Confirm(ctx, testUser(), req)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
	// A rejected signature must never write a record.
	ts.mockRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestService_Confirm_AnonymousDonor(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()
	user := shared.User{UID: "uid-456", Email: "noname@gmail.com"}

	req := &ConfirmRequest{
		OrderID:     "order_1",
		PaymentID:   "pay_1",
		Signature:   "sig",
		Amount:      "100",
		PaymentMode: "netbanking",
	}

	ts.mockGateway.On("VerifyPaymentSignature", "order_1", "pay_1", "sig").Return(true)
	ts.mockRepo.On("Add", ctx, mock.MatchedBy(func(d *Donation) bool {
		return d.DonorName == "Anonymous"
	})).Return("doc-2", nil)

	result, err := ts.service.Confirm(ctx, user, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	ts.mockRepo.AssertExpectations(t)
}

func TestService_Confirm_NonIntegerAmount(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	req := &ConfirmRequest{
		OrderID:     "order_1",
		PaymentID:   "pay_1",
		Signature:   "sig",
		Amount:      "12.50",
		PaymentMode: "card",
	}

	ts.mockGateway.On("VerifyPaymentSignature", "order_1", "pay_1", "sig").Return(true)

	result, err := ts.service.Confirm(ctx, testUser(), req)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, common.ErrBadRequest))
	ts.mockRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

// --- CompleteUPI ---

func TestService_CompleteUPI_NoRecordWritten(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	result, err := ts.service.CompleteUPI(ctx, testUser(), &UPICompleteRequest{Amount: "250"})

	assert.NoError(t, err)
	assert.Equal(t, common.RoutePaymentSuccess, result.Redirect)
	assert.Equal(t, "250", result.State.Amount)
	assert.Equal(t, "UPI", result.State.PaymentMode)
	// The wallet path produces only a redirect; nothing reaches the log.
	ts.mockRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

// --- ListDonations ---

func TestService_ListDonations_Success(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	records := []Donation{
		{DonorName: "Asha Rao", Amount: 500, PaymentMode: "card", Date: time.Now(), PaymentID: "pay_1"},
		{DonorName: "Anonymous", Amount: 100, PaymentMode: "netbanking", Date: time.Now().Add(-time.Hour), PaymentID: "pay_2"},
	}

	ts.mockRepo.On("Count", ctx).Return(int64(12), nil)
	ts.mockRepo.On("List", ctx, 10, 10).Return(records, nil)

	got, pagination, err := ts.service.ListDonations(ctx, 2, 10)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NotNil(t, pagination)
	assert.Equal(t, int64(12), pagination.TotalItems)
	assert.Equal(t, 2, pagination.CurrentPage)
	assert.Equal(t, 2, pagination.TotalPages)
	ts.mockRepo.AssertExpectations(t)
}

func TestService_ListDonations_RepoError(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	ts.mockRepo.On("Count", ctx).Return(int64(0), errors.New("firestore unavailable"))

	got, pagination, err := ts.service.ListDonations(ctx, 1, 10)

	assert.Nil(t, got)
	assert.Nil(t, pagination)
	assert.True(t, errors.Is(err, common.ErrInternalServer))
	ts.mockRepo.AssertExpectations(t)
}

// --- CheckPaymentRecorded / Reconcile ---

func TestService_CheckPaymentRecorded(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	ts.mockRepo.On("FindByPaymentID", ctx, "pay_known").Return(&Donation{PaymentID: "pay_known"}, nil)
	ts.mockRepo.On("FindByPaymentID", ctx, "pay_missing").Return(nil, common.ErrNotFound.WithDetails("No donation record exists for this payment."))

	recorded, err := ts.service.CheckPaymentRecorded(ctx, "pay_known")
	assert.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = ts.service.CheckPaymentRecorded(ctx, "pay_missing")
	assert.NoError(t, err)
	assert.False(t, recorded)
	ts.mockRepo.AssertExpectations(t)
}

func TestService_Reconcile_CountsUnrecordedCaptured(t *testing.T) {
	ts := setupDonationServiceTestSuite(t)
	ctx := context.Background()

	payments := []GatewayPayment{
		{ID: "pay_card", Status: "captured", Method: "card", Amount: 50000},
		{ID: "pay_upi", Status: "captured", Method: "upi", Amount: 25000},
		{ID: "pay_failed", Status: "failed", Method: "card", Amount: 10000},
	}

	ts.mockGateway.On("FetchPayments", ctx, 100).Return(payments, nil)
	// The card payment was confirmed and recorded; the UPI one never was.
	ts.mockRepo.On("FindByPaymentID", ctx, "pay_card").Return(&Donation{PaymentID: "pay_card"}, nil)
	ts.mockRepo.On("FindByPaymentID", ctx, "pay_upi").Return(nil, common.ErrNotFound)

	unrecorded, err := ts.service.Reconcile(ctx, 100)

	assert.NoError(t, err)
	assert.Equal(t, 1, unrecorded)
	// Failed payments are skipped without a lookup.
	ts.mockRepo.AssertNotCalled(t, "FindByPaymentID", ctx, "pay_failed")
	ts.mockGateway.AssertExpectations(t)
	ts.mockRepo.AssertExpectations(t)
}
