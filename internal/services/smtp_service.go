package services

import (
	"context"
	"errors"

	"reachiq/internal/dto"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/pkg/apperrors"
)

type SmtpService interface {
	// Create registers a new SMTP config after reserving a config slot
	// against the plan quota.
	Create(ctx context.Context, userID string, req *dto.CreateSmtpConfigRequest) (*models.SmtpConfig, error)
	List(ctx context.Context, userID string) ([]models.SmtpConfig, error)
	Get(ctx context.Context, userID, id string) (*models.SmtpConfig, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateSmtpConfigRequest) (*models.SmtpConfig, error)
	// Delete removes the config. The quota counter is not decremented:
	// config slots are a high-water mark for the billing period.
	Delete(ctx context.Context, userID, id string) error
}

type smtpService struct {
	configs repositories.SmtpRepository
	quota   QuotaService
}

func NewSmtpService(configs repositories.SmtpRepository, quota QuotaService) SmtpService {
	return &smtpService{configs: configs, quota: quota}
}

func (s *smtpService) Create(ctx context.Context, userID string, req *dto.CreateSmtpConfigRequest) (*models.SmtpConfig, error) {
	grant, err := s.quota.AuthorizeOne(ctx, userID, models.ResourceSmtpConfig)
	if err != nil {
		return nil, err
	}

	cfg := &models.SmtpConfig{
		UserID:    userID,
		Host:      req.Host,
		Port:      req.Port,
		Username:  req.Username,
		Password:  req.Password,
		FromEmail: req.FromEmail,
		Secure:    req.Secure,
	}
	if err := s.configs.Create(cfg); err != nil {
		// Give back the slot so a failed insert does not burn quota.
		_ = s.quota.Release(ctx, grant, grant.Granted)
		return nil, apperrors.InternalError(err)
	}

	return cfg, nil
}

func (s *smtpService) List(ctx context.Context, userID string) ([]models.SmtpConfig, error) {
	configs, err := s.configs.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return configs, nil
}

func (s *smtpService) Get(ctx context.Context, userID, id string) (*models.SmtpConfig, error) {
	cfg, err := s.configs.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSmtpConfigNotFound) {
			return nil, apperrors.NewNotFoundError("smtp", "SMTP config not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return cfg, nil
}

func (s *smtpService) Update(ctx context.Context, userID, id string, req *dto.UpdateSmtpConfigRequest) (*models.SmtpConfig, error) {
	cfg, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Host != nil {
		cfg.Host = *req.Host
	}
	if req.Port != nil {
		cfg.Port = *req.Port
	}
	if req.Username != nil {
		cfg.Username = *req.Username
	}
	if req.Password != nil {
		cfg.Password = *req.Password
	}
	if req.FromEmail != nil {
		cfg.FromEmail = *req.FromEmail
	}
	if req.Secure != nil {
		cfg.Secure = *req.Secure
	}

	if err := s.configs.Update(cfg); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return cfg, nil
}

func (s *smtpService) Delete(ctx context.Context, userID, id string) error {
	if err := s.configs.Delete(id, userID); err != nil {
		if errors.Is(err, repositories.ErrSmtpConfigNotFound) {
			return apperrors.NewNotFoundError("smtp", "SMTP config not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
