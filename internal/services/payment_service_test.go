package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"reachiq/internal/dto"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlanRepo struct {
	plans map[string]*models.Plan
}

func newFakePlanRepo(plans ...*models.Plan) *fakePlanRepo {
	m := map[string]*models.Plan{}
	for _, p := range plans {
		m[p.ID] = p
	}
	return &fakePlanRepo{plans: m}
}

func (f *fakePlanRepo) Create(plan *models.Plan) error {
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) FindByID(id string) (*models.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, repositories.ErrPlanNotFound
	}
	return p, nil
}

func (f *fakePlanRepo) FindByName(name string) (*models.Plan, error) {
	for _, p := range f.plans {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, repositories.ErrPlanNotFound
}

func (f *fakePlanRepo) FindActive() ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range f.plans {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) FindAll() ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlanRepo) Update(plan *models.Plan) error {
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) Delete(id string) error {
	p, ok := f.plans[id]
	if !ok {
		return repositories.ErrPlanNotFound
	}
	p.IsActive = false
	return nil
}

var _ repositories.PlanRepository = (*fakePlanRepo)(nil)

type fakePaymentRepo struct {
	payments map[string]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*models.Payment{}}
}

func (f *fakePaymentRepo) Create(p *models.Payment) error {
	if p.ID == "" {
		p.ID = fmt.Sprintf("pay-%d", len(f.payments)+1)
	}
	f.payments[p.OrderID] = p
	return nil
}

func (f *fakePaymentRepo) FindByOrderID(orderID string) (*models.Payment, error) {
	p, ok := f.payments[orderID]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentRepo) FindByUser(userID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(p *models.Payment) error {
	f.payments[p.OrderID] = p
	return nil
}

func (f *fakePaymentRepo) MarkPaid(orderID, paymentID, signature string, paidAt time.Time) error {
	p, ok := f.payments[orderID]
	if !ok {
		return repositories.ErrPaymentNotFound
	}
	p.Status = models.PaymentStatusPaid
	p.PaymentID = paymentID
	p.Signature = signature
	p.PaidAt = &paidAt
	return nil
}

func (f *fakePaymentRepo) MarkFailed(orderID string) error {
	p, ok := f.payments[orderID]
	if !ok {
		return repositories.ErrPaymentNotFound
	}
	p.Status = models.PaymentStatusFailed
	return nil
}

var _ repositories.PaymentRepository = (*fakePaymentRepo)(nil)

// fakeRazorpay signs with the same HMAC scheme as the real client.
type fakeRazorpay struct {
	secret    string
	lastOrder string
	failNext  bool
}

func (f *fakeRazorpay) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*RazorpayOrder, error) {
	if f.failNext {
		return nil, fmt.Errorf("razorpay returned status 503")
	}
	f.lastOrder = "order_" + receipt
	return &RazorpayOrder{
		ID:       f.lastOrder,
		Amount:   amount * 100,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (f *fakeRazorpay) VerifySignature(orderID, paymentID, signature string) bool {
	return sign(f.secret, orderID, paymentID) == signature
}

func (f *fakeRazorpay) KeyID() string { return "rzp_test_key" }

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

var _ RazorpayClient = (*fakeRazorpay)(nil)

func paymentFixture(sub *models.Subscription) (*fakePaymentRepo, *fakeSubscriptionRepo, *fakeRazorpay, PaymentService) {
	plans := newFakePlanRepo(
		&models.Plan{
			BaseModel: models.BaseModel{ID: "plan-free"},
			Name:      "Starter", Price: 0, Currency: "INR",
			Interval: models.PlanIntervalMonth,
			Limits:   models.PlanLimits{EmailsPerMonth: 500, SmsPerMonth: 100, SmtpConfigs: 1, AndroidGateways: 1},
			IsActive: true,
		},
		&models.Plan{
			BaseModel: models.BaseModel{ID: "plan-pro"},
			Name:      "Professional", Price: 2900, Currency: "INR",
			Interval: models.PlanIntervalMonth,
			Limits:   models.PlanLimits{EmailsPerMonth: 10000, SmsPerMonth: 2000, SmtpConfigs: 5, AndroidGateways: 3},
			IsActive: true,
		},
	)
	payments := newFakePaymentRepo()
	subs := newFakeSubscriptionRepo(sub)
	razorpay := &fakeRazorpay{secret: "test-secret"}
	return payments, subs, razorpay, NewPaymentService(payments, plans, subs, razorpay)
}

func TestCreateOrderFreePlanActivatesImmediately(t *testing.T) {
	_, subs, _, svc := paymentFixture(nil)

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-free"})
	require.NoError(t, err)

	assert.True(t, resp.Free)
	assert.Empty(t, resp.OrderID)

	sub, err := subs.FindActiveByUser("user-1")
	require.NoError(t, err)
	assert.Equal(t, "plan-free", sub.PlanID)
	assert.Equal(t, 500, sub.Limits.EmailsPerMonth)
}

func TestCreateOrderPaidPlanCreatesPendingPayment(t *testing.T) {
	payments, subs, _, svc := paymentFixture(nil)

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-pro"})
	require.NoError(t, err)

	assert.False(t, resp.Free)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, int64(2900), resp.Amount)
	assert.Equal(t, "rzp_test_key", resp.KeyID)

	payment, err := payments.FindByOrderID(resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)

	// Plan is not active until the payment is verified.
	_, err = subs.FindActiveByUser("user-1")
	assert.Error(t, err)
}

func TestCreateOrderUnknownPlan(t *testing.T) {
	_, _, _, svc := paymentFixture(nil)

	_, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-missing"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestVerifyPaymentActivatesPlan(t *testing.T) {
	payments, subs, razorpay, svc := paymentFixture(nil)

	order, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-pro"})
	require.NoError(t, err)

	sub, err := svc.VerifyPayment(context.Background(), "user-1", &dto.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_abc",
		Signature: sign(razorpay.secret, order.OrderID, "pay_abc"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "plan-pro", sub.PlanID)

	payment, err := payments.FindByOrderID(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.NotNil(t, payment.PaidAt)

	active, err := subs.FindActiveByUser("user-1")
	require.NoError(t, err)
	assert.Equal(t, 10000, active.Limits.EmailsPerMonth)
}

func TestVerifyPaymentRenewalResetsUsage(t *testing.T) {
	existing := activeSubscription(
		models.PlanLimits{EmailsPerMonth: 500, SmsPerMonth: 100, SmtpConfigs: 1, AndroidGateways: 1},
		models.PlanUsage{EmailsSent: 450, SmsSent: 80, SmtpConfigsUsed: 1, AndroidGatewaysUsed: 1},
	)
	_, subs, razorpay, svc := paymentFixture(existing)

	order, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-pro"})
	require.NoError(t, err)

	sub, err := svc.VerifyPayment(context.Background(), "user-1", &dto.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_xyz",
		Signature: sign(razorpay.secret, order.OrderID, "pay_xyz"),
	})
	require.NoError(t, err)

	// Buying a plan overwrites the limits snapshot and zeroes every counter.
	assert.Equal(t, existing.ID, sub.ID)
	assert.Equal(t, 10000, sub.Limits.EmailsPerMonth)
	assert.Equal(t, 0, sub.Usage.EmailsSent)
	assert.Equal(t, 0, sub.Usage.SmsSent)
	assert.Equal(t, 0, sub.Usage.SmtpConfigsUsed)
	assert.Equal(t, 0, sub.Usage.AndroidGatewaysUsed)
	assert.Equal(t, 0, subs.usage(models.ResourceEmail))
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	payments, subs, _, svc := paymentFixture(nil)

	order, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-pro"})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), "user-1", &dto.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_abc",
		Signature: "forged",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodePaymentFailed, appErr.Code)

	payment, err := payments.FindByOrderID(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)

	_, err = subs.FindActiveByUser("user-1")
	assert.Error(t, err)
}

func TestVerifyPaymentWrongUser(t *testing.T) {
	_, _, razorpay, svc := paymentFixture(nil)

	order, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-pro"})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), "user-2", &dto.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_abc",
		Signature: sign(razorpay.secret, order.OrderID, "pay_abc"),
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestRazorpaySignatureScheme(t *testing.T) {
	client := &razorpayClient{keyID: "rzp_test_key", keySecret: "test-secret"}

	sig := sign("test-secret", "order_1", "pay_1")
	assert.True(t, client.VerifySignature("order_1", "pay_1", sig))
	assert.False(t, client.VerifySignature("order_1", "pay_1", "bad"))
	assert.False(t, client.VerifySignature("order_2", "pay_1", sig))
}
