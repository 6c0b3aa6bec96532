package dto

import (
	"time"

	"reachiq/internal/models"
)

type SendCampaignRequest struct {
	Name       string   `json:"name" validate:"required,max=128"`
	Subject    string   `json:"subject" validate:"required,max=255"`
	SmtpID     string   `json:"smtp_id" validate:"required,uuid"`
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
	Message    string   `json:"message" validate:"required"`
	// Stored with the campaign record; delivery still happens inline.
	ScheduledAt *time.Time `json:"scheduled_at" validate:"omitempty"`
}

type SendSmsCampaignRequest struct {
	Title     string   `json:"title" validate:"required,max=128"`
	GatewayID string   `json:"gateway_id" validate:"required,uuid"`
	Numbers   []string `json:"numbers" validate:"required,min=1,dive,max=20"`
	Message   string   `json:"message" validate:"required,max=1600"`
}

// UpdateSmsCampaignRequest renames or re-captions an already stored
// campaign record; delivery counters are not editable.
type UpdateSmsCampaignRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=128"`
	Message *string `json:"message" validate:"omitempty,max=1600"`
}

// CampaignResultResponse is returned after a bulk send completes. It is
// shared by email and SMS campaigns.
type CampaignResultResponse struct {
	CampaignID      string                  `json:"campaign_id"`
	Status          string                  `json:"status"`
	TotalRecipients int                     `json:"total_recipients"`
	SentCount       int                     `json:"sent_count"`
	FailedCount     int                     `json:"failed_count"`
	BlockedCount    int                     `json:"blocked_count"`
	Results         []models.DeliveryResult `json:"results"`
}

type CampaignResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Subject         string `json:"subject,omitempty"`
	Status          string `json:"status"`
	TotalRecipients int    `json:"total_recipients"`
	SentCount       int    `json:"sent_count"`
	FailedCount     int    `json:"failed_count"`
	CreatedAt       string `json:"created_at"`
}
