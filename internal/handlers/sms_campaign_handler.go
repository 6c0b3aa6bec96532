package handlers

import (
	"net/http"
	"time"

	"reachiq/internal/dto"
	"reachiq/internal/middleware"
	"reachiq/internal/models"
	"reachiq/internal/services"

	"github.com/gin-gonic/gin"
)

type SmsCampaignHandler struct {
	*BaseHandler
	smsService services.SmsCampaignService
}

func NewSmsCampaignHandler(base *BaseHandler, smsService services.SmsCampaignService) *SmsCampaignHandler {
	return &SmsCampaignHandler{
		BaseHandler: base,
		smsService:  smsService,
	}
}

func (h *SmsCampaignHandler) RegisterRoutes(r *gin.RouterGroup) {
	campaigns := r.Group("/sms_campaign")
	campaigns.Use(middleware.AuthMiddleware())
	{
		campaigns.POST("", h.Send)
		campaigns.GET("", h.List)
		campaigns.GET("/:id", h.Get)
		campaigns.PUT("/:id", h.Update)
		campaigns.DELETE("/:id", h.Delete)
	}
}

func (h *SmsCampaignHandler) Send(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendSmsCampaignRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.smsService.Send(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SmsCampaignHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	campaigns, total, err := h.smsService.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, toSmsCampaignResponse(&campaigns[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"campaigns": out,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *SmsCampaignHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	campaign, err := h.smsService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *SmsCampaignHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSmsCampaignRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	campaign, err := h.smsService.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *SmsCampaignHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.smsService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SMS campaign deleted"})
}

func toSmsCampaignResponse(campaign *models.SmsCampaign) dto.CampaignResponse {
	return dto.CampaignResponse{
		ID:              campaign.ID,
		Name:            campaign.Title,
		Status:          string(campaign.Status),
		TotalRecipients: campaign.TotalContacts,
		SentCount:       campaign.SentCount,
		FailedCount:     campaign.FailedCount,
		CreatedAt:       campaign.CreatedAt.Format(time.RFC3339),
	}
}
