package services

import (
	"context"
	"errors"

	"reachiq/internal/dto"
	"reachiq/internal/logger"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/internal/smsgateway"
	"reachiq/pkg/apperrors"
)

type GatewayService interface {
	Create(ctx context.Context, userID string, req *dto.CreateGatewayRequest) (*models.SmsGatewayConfig, error)
	List(ctx context.Context, userID string) ([]models.SmsGatewayConfig, error)
	Get(ctx context.Context, userID, id string) (*models.SmsGatewayConfig, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateGatewayRequest) (*models.SmsGatewayConfig, error)
	Delete(ctx context.Context, userID, id string) error
	// CheckStatus probes the device and persists the observed status.
	CheckStatus(ctx context.Context, userID, id string) (*models.SmsGatewayConfig, error)
}

type gatewayService struct {
	gateways repositories.GatewayRepository
	quota    QuotaService
	client   smsgateway.Client
}

func NewGatewayService(gateways repositories.GatewayRepository, quota QuotaService, client smsgateway.Client) GatewayService {
	return &gatewayService{gateways: gateways, quota: quota, client: client}
}

func (s *gatewayService) Create(ctx context.Context, userID string, req *dto.CreateGatewayRequest) (*models.SmsGatewayConfig, error) {
	grant, err := s.quota.AuthorizeOne(ctx, userID, models.ResourceAndroidGateway)
	if err != nil {
		return nil, err
	}

	gw := &models.SmsGatewayConfig{
		UserID:        userID,
		Username:      req.Username,
		ContactNumber: req.ContactNumber,
		IP:            req.IP,
		Port:          req.Port,
		Status:        models.GatewayStatusDisconnected,
	}
	if gw.Port == 0 {
		gw.Port = 8080
	}
	if err := s.gateways.Create(gw); err != nil {
		_ = s.quota.Release(ctx, grant, grant.Granted)
		return nil, apperrors.InternalError(err)
	}

	return gw, nil
}

func (s *gatewayService) List(ctx context.Context, userID string) ([]models.SmsGatewayConfig, error) {
	gateways, err := s.gateways.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return gateways, nil
}

func (s *gatewayService) Get(ctx context.Context, userID, id string) (*models.SmsGatewayConfig, error) {
	gw, err := s.gateways.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrGatewayNotFound) {
			return nil, apperrors.NewNotFoundError("sms_gateway", "SMS gateway not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return gw, nil
}

func (s *gatewayService) Update(ctx context.Context, userID, id string, req *dto.UpdateGatewayRequest) (*models.SmsGatewayConfig, error) {
	gw, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		gw.Username = *req.Username
	}
	if req.ContactNumber != nil {
		gw.ContactNumber = *req.ContactNumber
	}
	if req.IP != nil {
		gw.IP = *req.IP
	}
	if req.Port != nil {
		gw.Port = *req.Port
	}

	if err := s.gateways.Update(gw); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return gw, nil
}

func (s *gatewayService) Delete(ctx context.Context, userID, id string) error {
	if err := s.gateways.Delete(id, userID); err != nil {
		if errors.Is(err, repositories.ErrGatewayNotFound) {
			return apperrors.NewNotFoundError("sms_gateway", "SMS gateway not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *gatewayService) CheckStatus(ctx context.Context, userID, id string) (*models.SmsGatewayConfig, error) {
	gw, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	status := models.GatewayStatusConnected
	if probeErr := s.client.Status(ctx, gw); probeErr != nil {
		status = models.GatewayStatusDisconnected
		logger.CtxDebug(ctx, "gateway probe failed", "gateway_id", gw.ID, "error", probeErr.Error())
	}

	if gw.Status != status {
		if err := s.gateways.UpdateStatus(gw.ID, status); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	gw.Status = status
	return gw, nil
}
