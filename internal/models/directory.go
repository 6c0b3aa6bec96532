package models

// EmailDirectoryEntry is a saved recipient address for email campaigns.
type EmailDirectoryEntry struct {
	BaseModel
	UserID string `gorm:"type:uuid;index;not null" json:"userId"`
	Email  string `gorm:"not null" json:"email"`
	Name   string `json:"name"`
}

// NumberDirectoryEntry is a saved phone number for SMS campaigns.
type NumberDirectoryEntry struct {
	BaseModel
	UserID string `gorm:"type:uuid;index;not null" json:"userId"`
	Number string `gorm:"not null" json:"number"`
	Name   string `json:"name"`
}
