package models

import "time"

// Payment records one order against the payment gateway. Amount is in the
// smallest currency unit, matching Plan.Price.
type Payment struct {
	BaseModel
	UserID    string        `gorm:"type:uuid;index;not null" json:"userId"`
	PlanID    string        `gorm:"type:uuid;not null" json:"planId"`
	Amount    int64         `gorm:"not null" json:"amount"`
	Currency  string        `gorm:"default:'INR'" json:"currency"`
	Status    PaymentStatus `gorm:"default:'pending'" json:"status"`
	OrderID   string        `gorm:"uniqueIndex" json:"orderId"`
	PaymentID string        `json:"paymentId"`
	Signature string        `json:"-"`
	Method    string        `json:"method"`
	PaidAt    *time.Time    `json:"paidAt"`

	Plan Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}
