package services

import (
	"context"
	"errors"
	"time"

	"reachiq/internal/dto"
	"reachiq/internal/models"
	"reachiq/internal/repositories"
	"reachiq/pkg/apperrors"
)

type DashboardService interface {
	Overview(ctx context.Context, userID string) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	campaigns     repositories.CampaignRepository
	smsCampaigns  repositories.SmsCampaignRepository
	smtp          repositories.SmtpRepository
	gateways      repositories.GatewayRepository
	subscriptions repositories.SubscriptionRepository
}

func NewDashboardService(
	campaigns repositories.CampaignRepository,
	smsCampaigns repositories.SmsCampaignRepository,
	smtp repositories.SmtpRepository,
	gateways repositories.GatewayRepository,
	subscriptions repositories.SubscriptionRepository,
) DashboardService {
	return &dashboardService{
		campaigns:     campaigns,
		smsCampaigns:  smsCampaigns,
		smtp:          smtp,
		gateways:      gateways,
		subscriptions: subscriptions,
	}
}

func (s *dashboardService) Overview(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	emailCampaigns, err := s.campaigns.CountByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	smsCampaigns, err := s.smsCampaigns.CountByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	smtpConfigs, err := s.smtp.CountByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	gateways, err := s.gateways.CountByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.DashboardResponse{
		TotalEmailCampaigns: int(emailCampaigns),
		TotalSmsCampaigns:   int(smsCampaigns),
		SmtpConfigs:         int(smtpConfigs),
		AndroidGateways:     int(gateways),
	}

	sub, err := s.subscriptions.FindByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return resp, nil
		}
		return nil, apperrors.InternalError(err)
	}

	resp.EmailsSentThisMonth = sub.Usage.EmailsSent
	resp.SmsSentThisMonth = sub.Usage.SmsSent
	resp.Subscription = SubscriptionToDTO(sub)
	return resp, nil
}

// SubscriptionToDTO shapes a subscription row for API responses.
func SubscriptionToDTO(sub *models.Subscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		ID:       sub.ID,
		PlanID:   sub.PlanID,
		PlanName: sub.Plan.Name,
		Status:   string(sub.Status),
		Limits: dto.PlanLimitsDTO{
			EmailsPerMonth:  sub.Limits.EmailsPerMonth,
			SmsPerMonth:     sub.Limits.SmsPerMonth,
			SmtpConfigs:     sub.Limits.SmtpConfigs,
			AndroidGateways: sub.Limits.AndroidGateways,
		},
		Usage: dto.SubscriptionUsage{
			EmailsSent:          sub.Usage.EmailsSent,
			SmsSent:             sub.Usage.SmsSent,
			SmtpConfigsUsed:     sub.Usage.SmtpConfigsUsed,
			AndroidGatewaysUsed: sub.Usage.AndroidGatewaysUsed,
		},
		Remaining: dto.RemainingQuotaDTO{
			Emails:          sub.Remaining(models.ResourceEmail),
			Sms:             sub.Remaining(models.ResourceSms),
			SmtpConfigs:     sub.Remaining(models.ResourceSmtpConfig),
			AndroidGateways: sub.Remaining(models.ResourceAndroidGateway),
		},
		StartDate: sub.StartDate.Format(time.RFC3339),
		EndDate:   sub.EndDate.Format(time.RFC3339),
		AutoRenew: sub.AutoRenew,
	}
}
