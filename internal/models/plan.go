package models

import (
	"gorm.io/datatypes"
)

// Unlimited is the sentinel limit value meaning "no ceiling".
const Unlimited = -1

// PlanLimits is the set of quota ceilings a plan grants per billing period.
// It is embedded both in Plan (the catalog value) and in Subscription (the
// snapshot taken at purchase time, so later catalog edits never change what
// a subscriber already paid for).
type PlanLimits struct {
	EmailsPerMonth  int `gorm:"default:0" json:"emailsPerMonth"`
	SmsPerMonth     int `gorm:"default:0" json:"smsPerMonth"`
	SmtpConfigs     int `gorm:"default:1" json:"smtpConfigs"`
	AndroidGateways int `gorm:"default:1" json:"androidGateways"`
}

// Limit returns the ceiling for a resource, or Unlimited.
func (l PlanLimits) Limit(r QuotaResource) int {
	switch r {
	case ResourceEmail:
		return l.EmailsPerMonth
	case ResourceSms:
		return l.SmsPerMonth
	case ResourceSmtpConfig:
		return l.SmtpConfigs
	case ResourceAndroidGateway:
		return l.AndroidGateways
	}
	return 0
}

// Plan is a catalog billing tier. Price is in the major currency unit
// (rupees); it is converted to paise when the payment order is created.
type Plan struct {
	BaseModel
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Price       int64          `gorm:"not null" json:"price"`
	Currency    string         `gorm:"default:'INR'" json:"currency"`
	Interval    PlanInterval   `gorm:"default:'month'" json:"interval"`
	Description string         `json:"description"`
	Features    datatypes.JSON `gorm:"type:jsonb" json:"features"` // ordered list of marketing bullet strings
	Limits      PlanLimits     `gorm:"embedded" json:"limits"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
}

// PeriodMonths returns the subscription period length for the plan interval.
func (p *Plan) PeriodMonths() int {
	if p.Interval == PlanIntervalYear {
		return 12
	}
	return 1
}
