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

type GatewayHandler struct {
	*BaseHandler
	gatewayService services.GatewayService
}

func NewGatewayHandler(base *BaseHandler, gatewayService services.GatewayService) *GatewayHandler {
	return &GatewayHandler{
		BaseHandler:    base,
		gatewayService: gatewayService,
	}
}

func (h *GatewayHandler) RegisterRoutes(r *gin.RouterGroup) {
	gateways := r.Group("/sms_gateway_config")
	gateways.Use(middleware.AuthMiddleware())
	{
		gateways.POST("", h.Create)
		gateways.GET("", h.List)
		gateways.GET("/:id", h.Get)
		gateways.GET("/:id/status", h.CheckStatus)
		gateways.PUT("/:id", h.Update)
		gateways.DELETE("/:id", h.Delete)
	}
}

func (h *GatewayHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGatewayRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	gw, err := h.gatewayService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGatewayResponse(gw))
}

func (h *GatewayHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gateways, err := h.gatewayService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]dto.GatewayResponse, 0, len(gateways))
	for i := range gateways {
		out = append(out, toGatewayResponse(&gateways[i]))
	}
	c.JSON(http.StatusOK, gin.H{"gateways": out})
}

func (h *GatewayHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gw, err := h.gatewayService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGatewayResponse(gw))
}

func (h *GatewayHandler) CheckStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gw, err := h.gatewayService.CheckStatus(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(gw.Status)})
}

func (h *GatewayHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGatewayRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	gw, err := h.gatewayService.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGatewayResponse(gw))
}

func (h *GatewayHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.gatewayService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SMS gateway deleted"})
}

func toGatewayResponse(gw *models.SmsGatewayConfig) dto.GatewayResponse {
	return dto.GatewayResponse{
		ID:            gw.ID,
		Username:      gw.Username,
		ContactNumber: gw.ContactNumber,
		IP:            gw.IP,
		Port:          gw.Port,
		Status:        string(gw.Status),
		CreatedAt:     gw.CreatedAt.Format(time.RFC3339),
	}
}
