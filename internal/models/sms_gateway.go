package models

// SmsGatewayConfig points at an Android device running the gateway app on
// the user's network. Creating one consumes ResourceAndroidGateway quota.
type SmsGatewayConfig struct {
	BaseModel
	UserID        string        `gorm:"type:uuid;index;not null" json:"userId"`
	Username      string        `gorm:"not null" json:"username"`
	ContactNumber string        `gorm:"not null" json:"contactNumber"`
	IP            string        `gorm:"not null" json:"ip"`
	Port          int           `gorm:"default:8080" json:"port"`
	Status        GatewayStatus `gorm:"default:'disconnected'" json:"status"`
}
