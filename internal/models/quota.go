package models

import "fmt"

// QuotaResource identifies a metered plan resource.
type QuotaResource string

const (
	ResourceEmail          QuotaResource = "email"
	ResourceSms            QuotaResource = "sms"
	ResourceSmtpConfig     QuotaResource = "smtp_config"
	ResourceAndroidGateway QuotaResource = "android_gateway"
)

// LimitColumn returns the subscription column holding the resource ceiling.
func (r QuotaResource) LimitColumn() string {
	switch r {
	case ResourceEmail:
		return "limit_emails_per_month"
	case ResourceSms:
		return "limit_sms_per_month"
	case ResourceSmtpConfig:
		return "limit_smtp_configs"
	case ResourceAndroidGateway:
		return "limit_android_gateways"
	}
	return ""
}

// UsageColumn returns the subscription column holding the consumption counter.
func (r QuotaResource) UsageColumn() string {
	switch r {
	case ResourceEmail:
		return "usage_emails_sent"
	case ResourceSms:
		return "usage_sms_sent"
	case ResourceSmtpConfig:
		return "usage_smtp_configs_used"
	case ResourceAndroidGateway:
		return "usage_android_gateways_used"
	}
	return ""
}

// LimitMessage builds the user-facing 403 message for an exhausted resource.
func (r QuotaResource) LimitMessage(limit int) string {
	switch r {
	case ResourceSmtpConfig:
		return fmt.Sprintf("SMTP Config limit reached — your plan allows only %d configs", limit)
	case ResourceAndroidGateway:
		return fmt.Sprintf("Android Gateway limit reached — your plan allows only %d gateways", limit)
	case ResourceEmail:
		return "Email limit reached — cannot send any more emails this month"
	case ResourceSms:
		return "SMS limit reached — cannot send any more messages this month"
	}
	return "Plan limit reached"
}

// BlockedReason is the per-recipient result annotation for recipients that
// were never attempted because they fell outside the remaining quota.
func (r QuotaResource) BlockedReason() string {
	if r == ResourceSms {
		return "SMS limit reached"
	}
	return "Email limit reached"
}

// QuotaGrant is the outcome of an atomic quota reservation. Granted units
// have already been added to the usage counter; the caller releases the
// portion that was not actually delivered.
type QuotaGrant struct {
	SubscriptionID string
	Resource       QuotaResource
	Requested      int
	Granted        int
	Limit          int
}

// Blocked returns how many requested units fell outside the quota.
func (g *QuotaGrant) Blocked() int {
	return g.Requested - g.Granted
}
