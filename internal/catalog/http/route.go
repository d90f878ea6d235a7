package http

import "github.com/gin-gonic/gin"

// RegisterRoutes exposes the service menu publicly and its management to admins.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/services")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", authMiddleware, adminMiddleware, h.Create)
		group.PATCH("/:id", authMiddleware, adminMiddleware, h.Update)
	}
}
