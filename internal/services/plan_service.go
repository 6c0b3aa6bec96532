package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"reachiq/internal/dto"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/pkg/apperrors"
)

type PlanService interface {
	ListActive(ctx context.Context) ([]models.Plan, error)
	Get(ctx context.Context, id string) (*models.Plan, error)

	// Admin operations. Editing a plan never touches existing
	// subscriptions; their limits snapshot stays as sold.
	ListAll(ctx context.Context) ([]models.Plan, error)
	Create(ctx context.Context, req *dto.CreatePlanRequest) (*models.Plan, error)
	Update(ctx context.Context, id string, req *dto.UpdatePlanRequest) (*models.Plan, error)
	Deactivate(ctx context.Context, id string) error
}

type planService struct {
	plans repositories.PlanRepository
}

func NewPlanService(plans repositories.PlanRepository) PlanService {
	return &planService{plans: plans}
}

func (s *planService) ListActive(ctx context.Context) ([]models.Plan, error) {
	plans, err := s.plans.FindActive()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plans, nil
}

func (s *planService) Get(ctx context.Context, id string) (*models.Plan, error) {
	plan, err := s.plans.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan", "Plan not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *planService) ListAll(ctx context.Context) ([]models.Plan, error) {
	plans, err := s.plans.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plans, nil
}

func (s *planService) Create(ctx context.Context, req *dto.CreatePlanRequest) (*models.Plan, error) {
	if _, err := s.plans.FindByName(req.Name); err == nil {
		return nil, apperrors.New(apperrors.CodeAlreadyExists, "plan",
			"A plan with this name already exists", http.StatusConflict)
	} else if !errors.Is(err, repositories.ErrPlanNotFound) {
		return nil, apperrors.InternalError(err)
	}

	plan := &models.Plan{
		Name:        req.Name,
		Price:       req.Price,
		Currency:    req.Currency,
		Description: req.Description,
		Limits: models.PlanLimits{
			EmailsPerMonth:  req.Limits.EmailsPerMonth,
			SmsPerMonth:     req.Limits.SmsPerMonth,
			SmtpConfigs:     req.Limits.SmtpConfigs,
			AndroidGateways: req.Limits.AndroidGateways,
		},
		IsActive: true,
	}
	if req.Currency == "" {
		plan.Currency = "INR"
	}
	plan.Interval = models.PlanIntervalMonth
	if req.Interval != "" {
		plan.Interval = models.PlanInterval(req.Interval)
	}
	if req.Features != nil {
		features, err := json.Marshal(req.Features)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		plan.Features = features
	}

	if err := s.plans.Create(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *planService) Update(ctx context.Context, id string, req *dto.UpdatePlanRequest) (*models.Plan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.Currency != nil {
		plan.Currency = *req.Currency
	}
	if req.Interval != nil {
		plan.Interval = models.PlanInterval(*req.Interval)
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Limits != nil {
		plan.Limits = models.PlanLimits{
			EmailsPerMonth:  req.Limits.EmailsPerMonth,
			SmsPerMonth:     req.Limits.SmsPerMonth,
			SmtpConfigs:     req.Limits.SmtpConfigs,
			AndroidGateways: req.Limits.AndroidGateways,
		}
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.Features != nil {
		features, err := json.Marshal(req.Features)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		plan.Features = features
	}

	if err := s.plans.Update(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *planService) Deactivate(ctx context.Context, id string) error {
	if err := s.plans.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return apperrors.NewNotFoundError("plan", "Plan not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
