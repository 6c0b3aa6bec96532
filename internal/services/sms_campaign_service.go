package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"reachiq/internal/dto"
	"reachiq/internal/logger"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/internal/smsgateway"
	"reachiq/pkg/apperrors"
)

type SmsCampaignService interface {
	// Send runs a bulk SMS campaign through the user's Android gateway.
	// The gateway must answer the /status probe before anything is queued.
	Send(ctx context.Context, userID string, req *dto.SendSmsCampaignRequest) (*dto.CampaignResultResponse, error)
	List(ctx context.Context, userID string, page, pageSize int) ([]models.SmsCampaign, int64, error)
	Get(ctx context.Context, userID, campaignID string) (*models.SmsCampaign, error)
	Update(ctx context.Context, userID, campaignID string, req *dto.UpdateSmsCampaignRequest) (*models.SmsCampaign, error)
	Delete(ctx context.Context, userID, campaignID string) error
}

type smsCampaignService struct {
	campaigns repositories.SmsCampaignRepository
	gateways  repositories.GatewayRepository
	quota     QuotaService
	client    smsgateway.Client
}

func NewSmsCampaignService(
	campaigns repositories.SmsCampaignRepository,
	gateways repositories.GatewayRepository,
	quota QuotaService,
	client smsgateway.Client,
) SmsCampaignService {
	return &smsCampaignService{
		campaigns: campaigns,
		gateways:  gateways,
		quota:     quota,
		client:    client,
	}
}

func (s *smsCampaignService) Send(ctx context.Context, userID string, req *dto.SendSmsCampaignRequest) (*dto.CampaignResultResponse, error) {
	gw, err := s.gateways.FindByIDForUser(req.GatewayID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrGatewayNotFound) {
			return nil, apperrors.NewNotFoundError("sms_gateway", "SMS gateway not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.client.Status(ctx, gw); err != nil {
		if updErr := s.gateways.UpdateStatus(gw.ID, models.GatewayStatusDisconnected); updErr != nil {
			logger.CtxWithError(ctx, "failed to mark gateway disconnected", updErr, "gateway_id", gw.ID)
		}
		return nil, apperrors.New(apperrors.CodeDeliveryFailed, "sms_gateway",
			"SMS gateway is offline: "+err.Error()+". Check that the device app is running and reachable.",
			http.StatusBadRequest)
	}
	if updErr := s.gateways.UpdateStatus(gw.ID, models.GatewayStatusConnected); updErr != nil {
		logger.CtxWithError(ctx, "failed to mark gateway connected", updErr, "gateway_id", gw.ID)
	}

	grant, err := s.quota.Authorize(ctx, userID, models.ResourceSms, len(req.Numbers))
	if err != nil {
		return nil, err
	}

	toSend := req.Numbers[:grant.Granted]
	blocked := req.Numbers[grant.Granted:]

	numbersJSON, err := json.Marshal(req.Numbers)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	campaign := &models.SmsCampaign{
		UserID:        userID,
		Title:         req.Title,
		GatewayID:     gw.ID,
		Numbers:       numbersJSON,
		Message:       req.Message,
		TotalContacts: len(req.Numbers),
		Status:        models.CampaignStatusProcessing,
	}
	if err := s.campaigns.Create(campaign); err != nil {
		if relErr := s.quota.Release(ctx, grant, grant.Granted); relErr != nil {
			logger.CtxWithError(ctx, "quota release failed", relErr, "subscription_id", grant.SubscriptionID)
		}
		return nil, apperrors.InternalError(err)
	}

	results := make([]models.DeliveryResult, 0, len(req.Numbers))
	sent, failed := 0, 0

	for _, number := range toSend {
		if sendErr := s.client.Send(ctx, gw, number, req.Message); sendErr != nil {
			failed++
			results = append(results, models.DeliveryResult{
				Recipient: number,
				Status:    "failed",
				Reason:    sendErr.Error(),
			})
			logger.CtxWarn(ctx, "sms delivery failed",
				"campaign_id", campaign.ID,
				"number", number,
				"error", sendErr.Error(),
			)
			continue
		}
		sent++
		results = append(results, models.DeliveryResult{Recipient: number, Status: "sent"})
	}

	for _, number := range blocked {
		results = append(results, models.DeliveryResult{
			Recipient: number,
			Status:    "blocked",
			Reason:    models.ResourceSms.BlockedReason(),
		})
	}

	if err := s.quota.Release(ctx, grant, grant.Granted-sent); err != nil {
		logger.CtxWithError(ctx, "quota release failed after campaign", err, "campaign_id", campaign.ID)
	}

	campaign.SentCount = sent
	campaign.FailedCount = failed + len(blocked)
	campaign.Status = models.DeriveCampaignStatus(sent, campaign.FailedCount)
	if resultsJSON, mErr := json.Marshal(results); mErr == nil {
		campaign.Results = resultsJSON
	}
	if err := s.campaigns.Update(campaign); err != nil {
		logger.CtxWithError(ctx, "failed to persist campaign result", err, "campaign_id", campaign.ID)
	}

	return &dto.CampaignResultResponse{
		CampaignID:      campaign.ID,
		Status:          string(campaign.Status),
		TotalRecipients: campaign.TotalContacts,
		SentCount:       sent,
		FailedCount:     failed,
		BlockedCount:    len(blocked),
		Results:         results,
	}, nil
}

func (s *smsCampaignService) List(ctx context.Context, userID string, page, pageSize int) ([]models.SmsCampaign, int64, error) {
	total, err := s.campaigns.CountByUser(userID)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	campaigns, err := s.campaigns.FindByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return campaigns, total, nil
}

func (s *smsCampaignService) Get(ctx context.Context, userID, campaignID string) (*models.SmsCampaign, error) {
	campaign, err := s.campaigns.FindByIDForUser(campaignID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.NewNotFoundError("sms_campaign", "SMS campaign not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return campaign, nil
}

func (s *smsCampaignService) Update(ctx context.Context, userID, campaignID string, req *dto.UpdateSmsCampaignRequest) (*models.SmsCampaign, error) {
	campaign, err := s.Get(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		campaign.Title = *req.Title
	}
	if req.Message != nil {
		campaign.Message = *req.Message
	}
	if err := s.campaigns.Update(campaign); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return campaign, nil
}

// Delete removes the stored campaign record. SMS quota already spent on
// it stays spent.
func (s *smsCampaignService) Delete(ctx context.Context, userID, campaignID string) error {
	if err := s.campaigns.Delete(campaignID, userID); err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return apperrors.NewNotFoundError("sms_campaign", "SMS campaign not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
