package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers worker-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	workers := g.Group("/workers")
	{
		workers.GET("/:id", h.Get)
		workers.POST("", h.Create)
	}

	g.GET("/salons/:id/workers", h.ListBySalon)
}
