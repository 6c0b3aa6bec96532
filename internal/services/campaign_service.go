package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"reachiq/internal/dto"
	"reachiq/internal/logger"
	"reachiq/internal/mailer"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/pkg/apperrors"
)

type CampaignService interface {
	// Send runs a bulk email campaign synchronously: quota reservation,
	// sequential delivery, per-recipient results.
	Send(ctx context.Context, userID string, req *dto.SendCampaignRequest) (*dto.CampaignResultResponse, error)
	List(ctx context.Context, userID string, page, pageSize int) ([]models.Campaign, int64, error)
	Get(ctx context.Context, userID, campaignID string) (*models.Campaign, error)
	Delete(ctx context.Context, userID, campaignID string) error
}

type campaignService struct {
	campaigns repositories.CampaignRepository
	smtp      repositories.SmtpRepository
	quota     QuotaService
	sender    mailer.Sender
}

func NewCampaignService(
	campaigns repositories.CampaignRepository,
	smtp repositories.SmtpRepository,
	quota QuotaService,
	sender mailer.Sender,
) CampaignService {
	return &campaignService{
		campaigns: campaigns,
		smtp:      smtp,
		quota:     quota,
		sender:    sender,
	}
}

func (s *campaignService) Send(ctx context.Context, userID string, req *dto.SendCampaignRequest) (*dto.CampaignResultResponse, error) {
	smtpCfg, err := s.smtp.FindByIDForUser(req.SmtpID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSmtpConfigNotFound) {
			return nil, apperrors.NewNotFoundError("smtp", "SMTP config not found")
		}
		return nil, apperrors.InternalError(err)
	}

	grant, err := s.quota.Authorize(ctx, userID, models.ResourceEmail, len(req.Recipients))
	if err != nil {
		return nil, err
	}

	// One SMTP connection serves the whole batch. A dial or auth failure
	// here means nothing was attempted, so the reservation goes back and
	// the caller gets a diagnostic instead of a campaign record.
	batch, err := s.sender.Dial(smtpCfg)
	if err != nil {
		s.releaseAll(ctx, grant)
		return nil, apperrors.New(apperrors.CodeDeliveryFailed, "smtp",
			"SMTP connection failed: "+err.Error()+". Check the host, port and credentials of your SMTP config.",
			http.StatusBadRequest)
	}
	defer func() {
		if cErr := batch.Close(); cErr != nil {
			logger.CtxWarn(ctx, "smtp connection close failed", "error", cErr.Error())
		}
	}()

	// Recipients beyond the grant are recorded as blocked without an
	// attempt; the granted prefix is sent in request order.
	toSend := req.Recipients[:grant.Granted]
	blocked := req.Recipients[grant.Granted:]

	recipientsJSON, err := json.Marshal(req.Recipients)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	campaign := &models.Campaign{
		UserID:          userID,
		Name:            req.Name,
		Subject:         req.Subject,
		SmtpID:          smtpCfg.ID,
		Recipients:      recipientsJSON,
		Message:         req.Message,
		TotalRecipients: len(req.Recipients),
		Status:          models.CampaignStatusProcessing,
		ScheduledAt:     req.ScheduledAt,
	}
	if err := s.campaigns.Create(campaign); err != nil {
		s.releaseAll(ctx, grant)
		return nil, apperrors.InternalError(err)
	}

	results := make([]models.DeliveryResult, 0, len(req.Recipients))
	sent, failed := 0, 0

	for _, recipient := range toSend {
		msg := &mailer.Message{
			To:      recipient,
			Subject: req.Subject,
			Body:    req.Message,
		}
		if sendErr := batch.Send(msg); sendErr != nil {
			failed++
			results = append(results, models.DeliveryResult{
				Recipient: recipient,
				Status:    "failed",
				Reason:    sendErr.Error(),
			})
			logger.CtxWarn(ctx, "email delivery failed",
				"campaign_id", campaign.ID,
				"recipient", recipient,
				"error", sendErr.Error(),
			)
			continue
		}
		sent++
		results = append(results, models.DeliveryResult{Recipient: recipient, Status: "sent"})
	}

	for _, recipient := range blocked {
		results = append(results, models.DeliveryResult{
			Recipient: recipient,
			Status:    "blocked",
			Reason:    models.ResourceEmail.BlockedReason(),
		})
	}

	// Reserved units that were not delivered go back, so the month's
	// counter ends up increased by exactly the sent count.
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
		TotalRecipients: campaign.TotalRecipients,
		SentCount:       sent,
		FailedCount:     failed,
		BlockedCount:    len(blocked),
		Results:         results,
	}, nil
}

func (s *campaignService) releaseAll(ctx context.Context, grant *models.QuotaGrant) {
	if err := s.quota.Release(ctx, grant, grant.Granted); err != nil {
		logger.CtxWithError(ctx, "quota release failed", err, "subscription_id", grant.SubscriptionID)
	}
}

func (s *campaignService) List(ctx context.Context, userID string, page, pageSize int) ([]models.Campaign, int64, error) {
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

func (s *campaignService) Get(ctx context.Context, userID, campaignID string) (*models.Campaign, error) {
	campaign, err := s.campaigns.FindByIDForUser(campaignID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.NewNotFoundError("campaign", "Campaign not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return campaign, nil
}

// Delete removes the stored campaign record. Email quota already spent on
// it stays spent.
func (s *campaignService) Delete(ctx context.Context, userID, campaignID string) error {
	if err := s.campaigns.Delete(campaignID, userID); err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return apperrors.NewNotFoundError("campaign", "Campaign not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
