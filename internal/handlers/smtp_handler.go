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

type SmtpHandler struct {
	*BaseHandler
	smtpService services.SmtpService
}

func NewSmtpHandler(base *BaseHandler, smtpService services.SmtpService) *SmtpHandler {
	return &SmtpHandler{
		BaseHandler: base,
		smtpService: smtpService,
	}
}

func (h *SmtpHandler) RegisterRoutes(r *gin.RouterGroup) {
	smtp := r.Group("/smtp")
	smtp.Use(middleware.AuthMiddleware())
	{
		smtp.POST("", h.Create)
		smtp.GET("", h.List)
		smtp.GET("/:id", h.Get)
		smtp.PUT("/:id", h.Update)
		smtp.DELETE("/:id", h.Delete)
	}
}

func (h *SmtpHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSmtpConfigRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	cfg, err := h.smtpService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSmtpResponse(cfg))
}

func (h *SmtpHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	configs, err := h.smtpService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]dto.SmtpConfigResponse, 0, len(configs))
	for i := range configs {
		out = append(out, toSmtpResponse(&configs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"configs": out})
}

func (h *SmtpHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	cfg, err := h.smtpService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSmtpResponse(cfg))
}

func (h *SmtpHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSmtpConfigRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	cfg, err := h.smtpService.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSmtpResponse(cfg))
}

func (h *SmtpHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.smtpService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SMTP config deleted"})
}

// Passwords never leave the server; responses carry connection metadata only.
func toSmtpResponse(cfg *models.SmtpConfig) dto.SmtpConfigResponse {
	return dto.SmtpConfigResponse{
		ID:        cfg.ID,
		Host:      cfg.Host,
		Port:      cfg.Port,
		Username:  cfg.Username,
		FromEmail: cfg.FromEmail,
		Secure:    cfg.Secure,
		CreatedAt: cfg.CreatedAt.Format(time.RFC3339),
	}
}
