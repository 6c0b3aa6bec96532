package dto

// PlanLimitsDTO carries quota ceilings. Zero is a real ceiling and -1
// means unlimited, so the fields must not be tagged required.
type PlanLimitsDTO struct {
	EmailsPerMonth  int `json:"emails_per_month" validate:"min=-1"`
	SmsPerMonth     int `json:"sms_per_month" validate:"min=-1"`
	SmtpConfigs     int `json:"smtp_configs" validate:"min=-1"`
	AndroidGateways int `json:"android_gateways" validate:"min=-1"`
}

type CreatePlanRequest struct {
	Name        string        `json:"name" validate:"required,max=64"`
	Price       int64         `json:"price" validate:"min=0"`
	Currency    string        `json:"currency" validate:"omitempty,len=3"`
	Interval    string        `json:"interval" validate:"omitempty,oneof=month year"`
	Description string        `json:"description" validate:"omitempty,max=500"`
	Features    []string      `json:"features" validate:"omitempty,dive,max=128"`
	Limits      PlanLimitsDTO `json:"limits"`
}

type UpdatePlanRequest struct {
	Name        *string        `json:"name" validate:"omitempty,max=64"`
	Price       *int64         `json:"price" validate:"omitempty,min=0"`
	Currency    *string        `json:"currency" validate:"omitempty,len=3"`
	Interval    *string        `json:"interval" validate:"omitempty,oneof=month year"`
	Description *string        `json:"description" validate:"omitempty,max=500"`
	Features    []string       `json:"features" validate:"omitempty,dive,max=128"`
	Limits      *PlanLimitsDTO `json:"limits"`
	IsActive    *bool          `json:"is_active"`
}

type PlanResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Price       int64         `json:"price"`
	Currency    string        `json:"currency"`
	Interval    string        `json:"interval"`
	Description string        `json:"description,omitempty"`
	Features    []string      `json:"features,omitempty"`
	Limits      PlanLimitsDTO `json:"limits"`
	IsActive    bool          `json:"is_active"`
}
