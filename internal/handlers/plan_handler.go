package handlers

import (
	"encoding/json"
	"net/http"

	"reachiq/internal/dto"
	"reachiq/internal/middleware"
	"reachiq/internal/models"
	"reachiq/internal/services"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	*BaseHandler
	planService services.PlanService
}

func NewPlanHandler(base *BaseHandler, planService services.PlanService) *PlanHandler {
	return &PlanHandler{
		BaseHandler: base,
		planService: planService,
	}
}

func (h *PlanHandler) RegisterRoutes(r *gin.RouterGroup) {
	// The public catalog sits under the payment surface; buying a plan
	// starts from this listing.
	plans := r.Group("/payment/plans")
	{
		plans.GET("", h.ListPlans)
		plans.GET("/:planId", h.GetPlan)
	}

	admin := r.Group("/admin/plans")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListAllPlans)
		admin.POST("", h.CreatePlan)
		admin.PUT("/:planId", h.UpdatePlan)
		admin.DELETE("/:planId", h.DeletePlan)
	}
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": toPlanResponses(plans)})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.planService.Get(c.Request.Context(), c.Param("planId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *PlanHandler) ListAllPlans(c *gin.Context) {
	plans, err := h.planService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": toPlanResponses(plans)})
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPlanResponse(plan))
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req dto.UpdatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), c.Param("planId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if err := h.planService.Deactivate(c.Request.Context(), c.Param("planId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deactivated"})
}

func toPlanResponse(plan *models.Plan) dto.PlanResponse {
	resp := dto.PlanResponse{
		ID:          plan.ID,
		Name:        plan.Name,
		Price:       plan.Price,
		Currency:    plan.Currency,
		Interval:    string(plan.Interval),
		Description: plan.Description,
		Limits: dto.PlanLimitsDTO{
			EmailsPerMonth:  plan.Limits.EmailsPerMonth,
			SmsPerMonth:     plan.Limits.SmsPerMonth,
			SmtpConfigs:     plan.Limits.SmtpConfigs,
			AndroidGateways: plan.Limits.AndroidGateways,
		},
		IsActive: plan.IsActive,
	}
	if len(plan.Features) > 0 {
		var features []string
		if err := json.Unmarshal(plan.Features, &features); err == nil {
			resp.Features = features
		}
	}
	return resp
}

func toPlanResponses(plans []models.Plan) []dto.PlanResponse {
	out := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, toPlanResponse(&plans[i]))
	}
	return out
}
