package services

import (
	"reachiq/internal/config"
	"reachiq/internal/mailer"
	"reachiq/internal/repositories"
	"reachiq/internal/smsgateway"

	"gorm.io/gorm"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService        AuthService
	PlanService        PlanService
	QuotaService       QuotaService
	SmtpService        SmtpService
	GatewayService     GatewayService
	CampaignService    CampaignService
	SmsCampaignService SmsCampaignService
	PaymentService     PaymentService
	DirectoryService   DirectoryService
	DashboardService   DashboardService
}

// NewServiceContainer wires repositories, outbound clients and services.
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	users := repositories.NewUserRepository(db)
	plans := repositories.NewPlanRepository(db)
	subscriptions := repositories.NewSubscriptionRepository(db)
	smtpConfigs := repositories.NewSmtpRepository(db)
	gateways := repositories.NewGatewayRepository(db)
	campaigns := repositories.NewCampaignRepository(db)
	smsCampaigns := repositories.NewSmsCampaignRepository(db)
	payments := repositories.NewPaymentRepository(db)
	otps := repositories.NewOtpRepository(db)
	directories := repositories.NewDirectoryRepository(db)

	systemMail := mailer.NewSystemMailer(cfg)
	sender := mailer.NewSmtpSender()
	gatewayClient := smsgateway.NewHTTPClient()
	razorpay := NewRazorpayClient(cfg)

	quota := NewQuotaService(subscriptions)

	return &ServiceContainer{
		AuthService:        NewAuthService(users, otps, systemMail),
		PlanService:        NewPlanService(plans),
		QuotaService:       quota,
		SmtpService:        NewSmtpService(smtpConfigs, quota),
		GatewayService:     NewGatewayService(gateways, quota, gatewayClient),
		CampaignService:    NewCampaignService(campaigns, smtpConfigs, quota, sender),
		SmsCampaignService: NewSmsCampaignService(smsCampaigns, gateways, quota, gatewayClient),
		PaymentService:     NewPaymentService(payments, plans, subscriptions, razorpay),
		DirectoryService:   NewDirectoryService(directories),
		DashboardService:   NewDashboardService(campaigns, smsCampaigns, smtpConfigs, gateways, subscriptions),
	}
}
