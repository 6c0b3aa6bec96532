package dto

type AddEmailEntryRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=128"`
}

type AddNumberEntryRequest struct {
	Number string `json:"number" validate:"required,max=20"`
	Name   string `json:"name" validate:"omitempty,max=128"`
}

type EmailEntryResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type NumberEntryResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

type DashboardResponse struct {
	TotalEmailCampaigns int                   `json:"total_email_campaigns"`
	TotalSmsCampaigns   int                   `json:"total_sms_campaigns"`
	EmailsSentThisMonth int                   `json:"emails_sent_this_month"`
	SmsSentThisMonth    int                   `json:"sms_sent_this_month"`
	SmtpConfigs         int                   `json:"smtp_configs"`
	AndroidGateways     int                   `json:"android_gateways"`
	Subscription        *SubscriptionResponse `json:"subscription,omitempty"`
}
