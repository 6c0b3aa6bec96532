package dto

type CreateSmtpConfigRequest struct {
	Host      string `json:"host" validate:"required,max=255"`
	Port      int    `json:"port" validate:"required,min=1,max=65535"`
	Username  string `json:"username" validate:"required,max=255"`
	Password  string `json:"password" validate:"required"`
	FromEmail string `json:"from_email" validate:"required,email"`
	Secure    bool   `json:"secure"`
}

type UpdateSmtpConfigRequest struct {
	Host      *string `json:"host" validate:"omitempty,max=255"`
	Port      *int    `json:"port" validate:"omitempty,min=1,max=65535"`
	Username  *string `json:"username" validate:"omitempty,max=255"`
	Password  *string `json:"password"`
	FromEmail *string `json:"from_email" validate:"omitempty,email"`
	Secure    *bool   `json:"secure"`
}

type SmtpConfigResponse struct {
	ID        string `json:"id"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Username  string `json:"username"`
	FromEmail string `json:"from_email"`
	Secure    bool   `json:"secure"`
	CreatedAt string `json:"created_at"`
}
