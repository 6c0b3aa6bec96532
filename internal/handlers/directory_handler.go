package handlers

import (
	"net/http"

	"reachiq/internal/dto"
	"reachiq/internal/middleware"
	"reachiq/internal/services"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	*BaseHandler
	directoryService services.DirectoryService
}

func NewDirectoryHandler(base *BaseHandler, directoryService services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		BaseHandler:      base,
		directoryService: directoryService,
	}
}

func (h *DirectoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	directory := r.Group("/directory")
	directory.Use(middleware.AuthMiddleware())
	{
		directory.POST("/emails", h.AddEmail)
		directory.GET("/emails", h.ListEmails)
		directory.DELETE("/emails/:id", h.DeleteEmail)

		directory.POST("/numbers", h.AddNumber)
		directory.GET("/numbers", h.ListNumbers)
		directory.DELETE("/numbers/:id", h.DeleteNumber)
	}
}

func (h *DirectoryHandler) AddEmail(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddEmailEntryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	entry, err := h.directoryService.AddEmail(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.EmailEntryResponse{ID: entry.ID, Email: entry.Email, Name: entry.Name})
}

func (h *DirectoryHandler) ListEmails(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	entries, err := h.directoryService.ListEmails(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]dto.EmailEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.EmailEntryResponse{ID: e.ID, Email: e.Email, Name: e.Name})
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (h *DirectoryHandler) DeleteEmail(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.directoryService.DeleteEmail(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

func (h *DirectoryHandler) AddNumber(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddNumberEntryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	entry, err := h.directoryService.AddNumber(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NumberEntryResponse{ID: entry.ID, Number: entry.Number, Name: entry.Name})
}

func (h *DirectoryHandler) ListNumbers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	entries, err := h.directoryService.ListNumbers(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]dto.NumberEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.NumberEntryResponse{ID: e.ID, Number: e.Number, Name: e.Name})
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (h *DirectoryHandler) DeleteNumber(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.directoryService.DeleteNumber(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}
