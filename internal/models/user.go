package models

type User struct {
	BaseModel
	Username string   `gorm:"not null" json:"username"`
	Email    string   `gorm:"uniqueIndex;not null" json:"email"`
	Password string   `gorm:"not null" json:"-"`
	Phone    string   `json:"phone"`
	Role     UserRole `gorm:"default:'user'" json:"role"`
	// Set once the signup email code has been redeemed.
	Verified bool `gorm:"default:false" json:"verified"`
}
