package models

import (
	"time"
)

// PlanUsage holds the consumption counters for the current billing period.
// Counters only grow during the period; they are zeroed as a whole when the
// subscription is renewed or the plan changes.
type PlanUsage struct {
	EmailsSent          int       `gorm:"default:0" json:"emailsSent"`
	SmsSent             int       `gorm:"default:0" json:"smsSent"`
	SmtpConfigsUsed     int       `gorm:"default:0" json:"smtpConfigsUsed"`
	AndroidGatewaysUsed int       `gorm:"default:0" json:"androidGatewaysUsed"`
	LastResetDate       time.Time `json:"lastResetDate"`
}

// Used returns the current counter for a resource.
func (u PlanUsage) Used(r QuotaResource) int {
	switch r {
	case ResourceEmail:
		return u.EmailsSent
	case ResourceSms:
		return u.SmsSent
	case ResourceSmtpConfig:
		return u.SmtpConfigsUsed
	case ResourceAndroidGateway:
		return u.AndroidGatewaysUsed
	}
	return 0
}

// Subscription binds a user to a plan. There is at most one row per user:
// buying a new plan overwrites limits, zeroes usage and advances the period
// rather than inserting a second row.
type Subscription struct {
	BaseModel
	UserID    string             `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	PlanID    string             `gorm:"type:uuid;index;not null" json:"planId"`
	Status    SubscriptionStatus `gorm:"default:'inactive'" json:"status"`
	Limits    PlanLimits         `gorm:"embedded;embeddedPrefix:limit_" json:"limits"`
	Usage     PlanUsage          `gorm:"embedded;embeddedPrefix:usage_" json:"usage"`
	StartDate time.Time          `json:"startDate"`
	EndDate   time.Time          `json:"endDate"`
	AutoRenew bool               `gorm:"default:true" json:"autoRenew"`

	Plan Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

// Active is the single canonical active-subscription predicate. Every quota
// decision goes through this; no other field encodes activeness.
func (s *Subscription) Active() bool {
	return s.Status == SubscriptionStatusActive
}

// Remaining returns how many units of a resource the subscription may still
// consume. Unlimited resources return Unlimited.
func (s *Subscription) Remaining(r QuotaResource) int {
	limit := s.Limits.Limit(r)
	if limit == Unlimited {
		return Unlimited
	}
	remaining := limit - s.Usage.Used(r)
	if remaining < 0 {
		return 0
	}
	return remaining
}
