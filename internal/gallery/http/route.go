package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the gallery. Browsing is public; uploads and deletes are admin only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/gallery")
	{
		group.GET("", h.List)
		group.GET("/:id/image", h.Image)
		group.GET("/:id/thumbnail", h.Thumbnail)
		group.POST("", authMiddleware, adminMiddleware, h.Upload)
		group.DELETE("/:id", authMiddleware, adminMiddleware, h.Delete)
	}
}
