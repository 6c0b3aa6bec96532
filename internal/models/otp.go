package models

import "time"

// Otp is a short-lived one-time code delivered by email for password reset
// and signup verification.
type Otp struct {
	BaseModel
	Email     string    `gorm:"index;not null" json:"email"`
	Code      string    `gorm:"not null" json:"-"`
	Type      OtpType   `gorm:"default:'password_reset'" json:"type"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	Used      bool      `gorm:"default:false" json:"used"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
}

// Valid reports whether the code can still be redeemed.
func (o *Otp) Valid(now time.Time) bool {
	return !o.Used && o.Attempts < 5 && now.Before(o.ExpiresAt)
}
