package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the voice assistant endpoints. They carry no JWT; callers pass the
// shared-token check and the rate limiter as middleware.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, middleware ...gin.HandlerFunc) {
	group := g.Group("/voice")
	group.Use(middleware...)
	{
		group.POST("/webhook", h.Webhook)
		group.POST("/availability", h.Availability)
	}
}
