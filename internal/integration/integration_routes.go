package integration

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	integrations := rg.Group("/integrations")
	{
		integrations.GET("", h.List)
		integrations.POST("", h.Connect)
		integrations.DELETE("/:provider", h.Disconnect)
	}
}
