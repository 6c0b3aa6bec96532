package dto

type CreateGatewayRequest struct {
	Username      string `json:"username" validate:"required,max=64"`
	ContactNumber string `json:"contact_number" validate:"required,max=20"`
	IP            string `json:"ip" validate:"required,ip"`
	Port          int    `json:"port" validate:"omitempty,min=1,max=65535"`
}

type UpdateGatewayRequest struct {
	Username      *string `json:"username" validate:"omitempty,max=64"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=20"`
	IP            *string `json:"ip" validate:"omitempty,ip"`
	Port          *int    `json:"port" validate:"omitempty,min=1,max=65535"`
}

type GatewayResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	ContactNumber string `json:"contact_number"`
	IP            string `json:"ip"`
	Port          int    `json:"port"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}
