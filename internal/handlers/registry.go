package handlers

import (
	"reachiq/internal/services"
	"reachiq/internal/validator"

	"github.com/gin-gonic/gin"
)

// AppHandlers aggregates every HTTP handler in the application.
type AppHandlers struct {
	Auth        *AuthHandler
	Plan        *PlanHandler
	Smtp        *SmtpHandler
	Gateway     *GatewayHandler
	Campaign    *CampaignHandler
	SmsCampaign *SmsCampaignHandler
	Payment     *PaymentHandler
	Directory   *DirectoryHandler
	Dashboard   *DashboardHandler
}

func NewAppHandlers(sc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		Auth:        NewAuthHandler(base, sc.AuthService),
		Plan:        NewPlanHandler(base, sc.PlanService),
		Smtp:        NewSmtpHandler(base, sc.SmtpService),
		Gateway:     NewGatewayHandler(base, sc.GatewayService),
		Campaign:    NewCampaignHandler(base, sc.CampaignService),
		SmsCampaign: NewSmsCampaignHandler(base, sc.SmsCampaignService),
		Payment:     NewPaymentHandler(base, sc.PaymentService),
		Directory:   NewDirectoryHandler(base, sc.DirectoryService),
		Dashboard:   NewDashboardHandler(base, sc.DashboardService),
	}
}

// RegisterAll mounts every handler under the given router group.
func (h *AppHandlers) RegisterAll(r *gin.RouterGroup) {
	h.Auth.RegisterRoutes(r)
	h.Plan.RegisterRoutes(r)
	h.Smtp.RegisterRoutes(r)
	h.Gateway.RegisterRoutes(r)
	h.Campaign.RegisterRoutes(r)
	h.SmsCampaign.RegisterRoutes(r)
	h.Payment.RegisterRoutes(r)
	h.Directory.RegisterRoutes(r)
	h.Dashboard.RegisterRoutes(r)
}
