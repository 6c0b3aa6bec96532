package models

import (
	"time"

	"gorm.io/datatypes"
)

// Campaign is a bulk email send, persisted with the full recipient list
// (including recipients that ended up blocked by quota).
type Campaign struct {
	BaseModel
	UserID          string         `gorm:"type:uuid;index;not null" json:"userId"`
	Name            string         `gorm:"not null" json:"name"`
	Subject         string         `gorm:"not null" json:"subject"`
	SmtpID          string         `gorm:"type:uuid;not null" json:"smtpId"`
	Recipients      datatypes.JSON `gorm:"type:jsonb" json:"recipients"`
	Message         string         `gorm:"not null" json:"message"`
	TotalRecipients int            `gorm:"default:0" json:"totalRecipients"`
	SentCount       int            `gorm:"default:0" json:"sentCount"`
	FailedCount     int            `gorm:"default:0" json:"failedCount"`
	Status          CampaignStatus `gorm:"default:'pending'" json:"status"`
	Results         datatypes.JSON `gorm:"type:jsonb" json:"results"`

	// Stored for the record; campaigns are delivered synchronously and
	// nothing schedules deferred runs yet.
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`

	Smtp SmtpConfig `gorm:"foreignKey:SmtpID" json:"smtp,omitempty"`
}

// SmsCampaign is a bulk SMS send through one of the user's Android gateways.
type SmsCampaign struct {
	BaseModel
	UserID        string         `gorm:"type:uuid;index;not null" json:"userId"`
	Title         string         `gorm:"not null" json:"title"`
	GatewayID     string         `gorm:"type:uuid;not null" json:"gatewayId"`
	Numbers       datatypes.JSON `gorm:"type:jsonb" json:"numbers"`
	Message       string         `gorm:"not null" json:"message"`
	TotalContacts int            `gorm:"default:0" json:"totalContacts"`
	SentCount     int            `gorm:"default:0" json:"sentCount"`
	FailedCount   int            `gorm:"default:0" json:"failedCount"`
	Status        CampaignStatus `gorm:"default:'pending'" json:"status"`
	Results       datatypes.JSON `gorm:"type:jsonb" json:"results"`

	Gateway SmsGatewayConfig `gorm:"foreignKey:GatewayID" json:"gateway,omitempty"`
}

// DeliveryResult is the per-recipient outcome reported back to the caller.
// Status is "sent", "failed" or "blocked" (never attempted, over quota).
type DeliveryResult struct {
	Recipient string `json:"recipient"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}
