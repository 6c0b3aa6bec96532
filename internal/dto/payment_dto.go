package dto

type CreateOrderRequest struct {
	PlanID string `json:"plan_id" validate:"required,uuid"`
}

type CreateOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
	// Free indicates the plan was activated directly with no payment round trip.
	Free bool `json:"free,omitempty"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

type PaymentResponse struct {
	ID        string `json:"id"`
	PlanID    string `json:"plan_id"`
	PlanName  string `json:"plan_name,omitempty"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id,omitempty"`
	PaidAt    string `json:"paid_at,omitempty"`
	CreatedAt string `json:"created_at"`
}

type SubscriptionResponse struct {
	ID        string             `json:"id"`
	PlanID    string             `json:"plan_id"`
	PlanName  string             `json:"plan_name,omitempty"`
	Status    string             `json:"status"`
	Limits    PlanLimitsDTO      `json:"limits"`
	Usage     SubscriptionUsage  `json:"usage"`
	Remaining RemainingQuotaDTO  `json:"remaining"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	AutoRenew bool               `json:"auto_renew"`
}

type SubscriptionUsage struct {
	EmailsSent          int `json:"emails_sent"`
	SmsSent             int `json:"sms_sent"`
	SmtpConfigsUsed     int `json:"smtp_configs_used"`
	AndroidGatewaysUsed int `json:"android_gateways_used"`
}

// RemainingQuotaDTO reports headroom per resource; -1 means unlimited.
type RemainingQuotaDTO struct {
	Emails          int `json:"emails"`
	Sms             int `json:"sms"`
	SmtpConfigs     int `json:"smtp_configs"`
	AndroidGateways int `json:"android_gateways"`
}
