package database

import (
	"encoding/json"
	"errors"

	"reachiq/internal/logger"
	"reachiq/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Subscription{},
		&models.SmtpConfig{},
		&models.SmsGatewayConfig{},
		&models.Campaign{},
		&models.SmsCampaign{},
		&models.Payment{},
		&models.Otp{},
		&models.EmailDirectoryEntry{},
		&models.NumberDirectoryEntry{},
	)
}

// SeedPlans inserts the default plan catalogue if it is missing. Existing
// plans are never modified, so price or limit edits survive restarts.
func SeedPlans(db *gorm.DB) error {
	defaults := []models.Plan{
		{
			Name:        "Starter",
			Price:       0,
			Currency:    "INR",
			Interval:    models.PlanIntervalMonth,
			Description: "Try the platform with a small monthly allowance",
			Features: featureList(
				"Up to 500 emails/month",
				"Up to 100 SMS/month",
				"1 SMTP configuration",
				"1 Android gateway connection",
				"Basic analytics",
				"Community support",
			),
			Limits: models.PlanLimits{
				EmailsPerMonth:  500,
				SmsPerMonth:     100,
				SmtpConfigs:     1,
				AndroidGateways: 1,
			},
			IsActive: true,
		},
		{
			Name:        "Professional",
			Price:       2900,
			Currency:    "INR",
			Interval:    models.PlanIntervalMonth,
			Description: "For growing teams running regular campaigns",
			Features: featureList(
				"Up to 10,000 emails/month",
				"Up to 2,000 SMS/month",
				"5 SMTP configurations",
				"3 Android gateway connections",
				"Advanced analytics",
				"Priority email support",
				"Custom templates",
			),
			Limits: models.PlanLimits{
				EmailsPerMonth:  10000,
				SmsPerMonth:     2000,
				SmtpConfigs:     5,
				AndroidGateways: 3,
			},
			IsActive: true,
		},
		{
			Name:        "Enterprise",
			Price:       9900,
			Currency:    "INR",
			Interval:    models.PlanIntervalMonth,
			Description: "Unlimited sending for high-volume senders",
			Features: featureList(
				"Unlimited emails",
				"Unlimited SMS",
				"Unlimited SMTP configurations",
				"Unlimited gateway connections",
				"Real-time analytics",
				"24/7 phone support",
				"Custom integrations",
				"Dedicated account manager",
			),
			Limits: models.PlanLimits{
				EmailsPerMonth:  models.Unlimited,
				SmsPerMonth:     models.Unlimited,
				SmtpConfigs:     models.Unlimited,
				AndroidGateways: models.Unlimited,
			},
			IsActive: true,
		},
	}

	for i := range defaults {
		plan := defaults[i]
		var existing models.Plan
		err := db.First(&existing, "name = ?", plan.Name).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&plan).Error; err != nil {
			return err
		}
		logger.Info("seeded plan", "name", plan.Name, "price", plan.Price)
	}

	return nil
}

func featureList(items ...string) datatypes.JSON {
	b, _ := json.Marshal(items)
	return b
}
