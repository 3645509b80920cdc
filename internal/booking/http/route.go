package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. writeLimit, when set, guards booking creation.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, writeLimit gin.HandlerFunc) {
	create := []gin.HandlerFunc{h.Create}
	if writeLimit != nil {
		create = []gin.HandlerFunc{writeLimit, h.Create}
	}

	group := g.Group("/bookings")
	{
		group.POST("", create...)
		group.GET("/:id", h.Get)
		group.PUT("/:id/cancel", h.Cancel)
		group.PUT("/:id/complete", h.Complete)
	}

	g.GET("/workers/:id/available-slots", h.AvailableSlots)
	g.GET("/workers/:id/bookings", h.ListByWorker)
	g.GET("/salons/:id/bookings", h.ListBySalon)
	g.GET("/users/:id/bookings", h.ListByUser)
}
