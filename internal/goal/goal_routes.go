package goal

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	goals := rg.Group("/goals")
	{
		goals.POST("", h.Create)
		goals.GET("", h.List)
		goals.GET("/:id", h.GetByID)
		goals.PUT("/:id", h.Update)
		goals.DELETE("/:id", h.Delete)
		goals.POST("/:id/key-results", h.CreateKeyResult)
		goals.PATCH("/key-results/:krID/progress", h.UpdateProgress)
	}
}
