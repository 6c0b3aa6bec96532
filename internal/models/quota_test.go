package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitMessages(t *testing.T) {
	assert.Equal(t,
		"SMTP Config limit reached — your plan allows only 5 configs",
		ResourceSmtpConfig.LimitMessage(5))
	assert.Equal(t,
		"Android Gateway limit reached — your plan allows only 3 gateways",
		ResourceAndroidGateway.LimitMessage(3))
	assert.Equal(t,
		"Email limit reached — cannot send any more emails this month",
		ResourceEmail.LimitMessage(500))
	assert.Equal(t,
		"SMS limit reached — cannot send any more messages this month",
		ResourceSms.LimitMessage(100))
}

func TestQuotaGrantBlocked(t *testing.T) {
	g := &QuotaGrant{Requested: 5, Granted: 2}
	assert.Equal(t, 3, g.Blocked())

	full := &QuotaGrant{Requested: 5, Granted: 5}
	assert.Equal(t, 0, full.Blocked())
}

func TestQuotaResourceColumns(t *testing.T) {
	assert.Equal(t, "limit_emails_per_month", ResourceEmail.LimitColumn())
	assert.Equal(t, "usage_emails_sent", ResourceEmail.UsageColumn())
	assert.Equal(t, "limit_sms_per_month", ResourceSms.LimitColumn())
	assert.Equal(t, "usage_sms_sent", ResourceSms.UsageColumn())
	assert.Equal(t, "limit_smtp_configs", ResourceSmtpConfig.LimitColumn())
	assert.Equal(t, "usage_smtp_configs_used", ResourceSmtpConfig.UsageColumn())
	assert.Equal(t, "limit_android_gateways", ResourceAndroidGateway.LimitColumn())
	assert.Equal(t, "usage_android_gateways_used", ResourceAndroidGateway.UsageColumn())
}

func TestDeriveCampaignStatus(t *testing.T) {
	cases := []struct {
		name   string
		sent   int
		failed int
		want   CampaignStatus
	}{
		{"all delivered", 10, 0, CampaignStatusSent},
		{"none delivered", 0, 10, CampaignStatusFailed},
		{"mixed", 7, 3, CampaignStatusPartial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveCampaignStatus(tc.sent, tc.failed))
		})
	}
}
