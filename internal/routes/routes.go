package routes

import (
	"net/http"

	"reachiq/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Register mounts the API surface under /api/v1 plus the health probe.
func Register(engine *gin.Engine, h *handlers.AppHandlers) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	h.RegisterAll(api)
}
