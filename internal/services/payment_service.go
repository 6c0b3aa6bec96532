package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"reachiq/internal/dto"
	"reachiq/internal/logger"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/pkg/apperrors"

	"github.com/google/uuid"
)

type PaymentService interface {
	// CreateOrder starts the checkout flow for a plan. Free plans skip the
	// payment provider and activate immediately.
	CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	// VerifyPayment validates the provider signature, marks the payment
	// paid and activates the plan (full limits overwrite, usage reset).
	VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*models.Subscription, error)
	History(ctx context.Context, userID string) ([]models.Payment, error)
	Subscription(ctx context.Context, userID string) (*models.Subscription, error)
}

type paymentService struct {
	payments      repositories.PaymentRepository
	plans         repositories.PlanRepository
	subscriptions repositories.SubscriptionRepository
	razorpay      RazorpayClient
}

func NewPaymentService(
	payments repositories.PaymentRepository,
	plans repositories.PlanRepository,
	subscriptions repositories.SubscriptionRepository,
	razorpay RazorpayClient,
) PaymentService {
	return &paymentService{
		payments:      payments,
		plans:         plans,
		subscriptions: subscriptions,
		razorpay:      razorpay,
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	plan, err := s.plans.FindByID(req.PlanID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan", "Plan not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if !plan.IsActive {
		return nil, apperrors.NewBadRequestError("Plan is not available")
	}

	if plan.Price == 0 {
		sub, err := s.subscriptions.ActivatePlan(userID, plan)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		logger.CtxInfo(ctx, "free plan activated",
			"plan_id", plan.ID,
			"subscription_id", sub.ID,
		)
		return &dto.CreateOrderResponse{
			Amount:   0,
			Currency: plan.Currency,
			Free:     true,
		}, nil
	}

	receipt := fmt.Sprintf("rcpt_%s", uuid.NewString()[:18])
	order, err := s.razorpay.CreateOrder(ctx, plan.Price, plan.Currency, receipt)
	if err != nil {
		logger.CtxWithError(ctx, "razorpay order creation failed", err, "plan_id", plan.ID)
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "payment",
			"Failed to create payment order", http.StatusBadGateway)
	}

	payment := &models.Payment{
		UserID:   userID,
		PlanID:   plan.ID,
		Amount:   plan.Price,
		Currency: plan.Currency,
		Status:   models.PaymentStatusPending,
		OrderID:  order.ID,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CreateOrderResponse{
		OrderID:  order.ID,
		Amount:   plan.Price,
		Currency: plan.Currency,
		KeyID:    s.razorpay.KeyID(),
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*models.Subscription, error) {
	payment, err := s.payments.FindByOrderID(req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.NewNotFoundError("payment", "Payment not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if payment.UserID != userID {
		return nil, apperrors.NewNotFoundError("payment", "Payment not found")
	}
	if payment.Status == models.PaymentStatusPaid {
		return nil, apperrors.New(apperrors.CodeConflict, "payment",
			"Payment already verified", http.StatusConflict)
	}

	if !s.razorpay.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		if markErr := s.payments.MarkFailed(req.OrderID); markErr != nil {
			logger.CtxWithError(ctx, "failed to mark payment failed", markErr, "order_id", req.OrderID)
		}
		return nil, apperrors.New(apperrors.CodePaymentFailed, "payment",
			"Payment signature verification failed", http.StatusBadRequest)
	}

	now := time.Now()
	if err := s.payments.MarkPaid(req.OrderID, req.PaymentID, req.Signature, now); err != nil {
		return nil, apperrors.InternalError(err)
	}

	plan, err := s.plans.FindByID(payment.PlanID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	sub, err := s.subscriptions.ActivatePlan(userID, plan)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "plan activated",
		"plan_id", plan.ID,
		"subscription_id", sub.ID,
		"order_id", req.OrderID,
	)
	return sub, nil
}

func (s *paymentService) History(ctx context.Context, userID string) ([]models.Payment, error) {
	payments, err := s.payments.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return payments, nil
}

func (s *paymentService) Subscription(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.subscriptions.FindByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.NewNotFoundError("subscription", "No subscription found")
		}
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}
