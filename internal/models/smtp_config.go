package models

// SmtpConfig is a user-supplied SMTP relay account used for campaign
// delivery. Creating one consumes ResourceSmtpConfig quota; deleting one
// does not give the quota back.
type SmtpConfig struct {
	BaseModel
	UserID    string `gorm:"type:uuid;index;not null" json:"userId"`
	Host      string `gorm:"not null" json:"host"`
	Port      int    `gorm:"not null" json:"port"`
	Username  string `gorm:"not null" json:"username"`
	Password  string `gorm:"not null" json:"-"`
	FromEmail string `gorm:"not null" json:"fromEmail"`
	Secure    bool   `gorm:"default:false" json:"secure"` // TLS/SSL
}
