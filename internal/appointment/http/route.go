package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the dashboard appointment routes behind auth and the public
// availability query behind the given public middleware (rate limiting).
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, public ...gin.HandlerFunc) {
	group := g.Group("/appointments")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Cancel)
	}

	g.GET("/availability", append(public, h.Availability)...)
}
