package models

type UserRole string
type SubscriptionStatus string
type PaymentStatus string
type CampaignStatus string
type GatewayStatus string
type PlanInterval string
type OtpType string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"

	CampaignStatusPending    CampaignStatus = "pending"
	CampaignStatusProcessing CampaignStatus = "processing"
	CampaignStatusSent       CampaignStatus = "sent"
	CampaignStatusFailed     CampaignStatus = "failed"
	CampaignStatusPartial    CampaignStatus = "partial"

	GatewayStatusConnected    GatewayStatus = "connected"
	GatewayStatusDisconnected GatewayStatus = "disconnected"

	PlanIntervalMonth PlanInterval = "month"
	PlanIntervalYear  PlanInterval = "year"

	OtpTypePasswordReset OtpType = "password_reset"
	OtpTypeSignup        OtpType = "signup"
)

// DeriveCampaignStatus maps post-send counters to the final campaign status.
// failed includes both transport failures and recipients blocked by quota.
func DeriveCampaignStatus(sent, failed int) CampaignStatus {
	switch {
	case failed == 0:
		return CampaignStatusSent
	case sent == 0:
		return CampaignStatusFailed
	default:
		return CampaignStatusPartial
	}
}
