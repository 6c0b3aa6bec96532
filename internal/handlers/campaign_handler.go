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

type CampaignHandler struct {
	*BaseHandler
	campaignService services.CampaignService
}

func NewCampaignHandler(base *BaseHandler, campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		BaseHandler:     base,
		campaignService: campaignService,
	}
}

func (h *CampaignHandler) RegisterRoutes(r *gin.RouterGroup) {
	campaigns := r.Group("/campaign")
	campaigns.Use(middleware.AuthMiddleware())
	{
		campaigns.POST("", h.Send)
		campaigns.GET("", h.List)
		campaigns.GET("/:id", h.Get)
		campaigns.DELETE("/:id", h.Delete)
	}
}

func (h *CampaignHandler) Send(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendCampaignRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.campaignService.Send(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CampaignHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	campaigns, total, err := h.campaignService.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, toCampaignResponse(&campaigns[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"campaigns": out,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *CampaignHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	campaign, err := h.campaignService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

func toCampaignResponse(campaign *models.Campaign) dto.CampaignResponse {
	return dto.CampaignResponse{
		ID:              campaign.ID,
		Name:            campaign.Name,
		Subject:         campaign.Subject,
		Status:          string(campaign.Status),
		TotalRecipients: campaign.TotalRecipients,
		SentCount:       campaign.SentCount,
		FailedCount:     campaign.FailedCount,
		CreatedAt:       campaign.CreatedAt.Format(time.RFC3339),
	}
}
