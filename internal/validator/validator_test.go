package validator

import (
	"testing"

	"reachiq/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlanLimitsAcceptsZeroCeiling(t *testing.T) {
	v := New()

	// 0 is a real ceiling and -1 means unlimited; both must pass.
	err := v.Validate(&dto.CreatePlanRequest{
		Name:  "SMS-free",
		Price: 500,
		Limits: dto.PlanLimitsDTO{
			EmailsPerMonth:  1000,
			SmsPerMonth:     0,
			SmtpConfigs:     -1,
			AndroidGateways: 0,
		},
	})
	assert.NoError(t, err)
}

func TestValidatePlanLimitsRejectsBelowUnlimited(t *testing.T) {
	v := New()

	err := v.Validate(&dto.CreatePlanRequest{
		Name:  "Broken",
		Price: 500,
		Limits: dto.PlanLimitsDTO{
			EmailsPerMonth: -2,
		},
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "emails_per_month")
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&dto.SignupRequest{Username: "ab", Email: "not-an-email"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "username")
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
}
