package settings

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	settings := rg.Group("/settings")
	{
		settings.GET("/organization", h.GetOrganizationSettings)
		settings.PUT("/organization", h.UpdateOrganizationSettings)
		settings.GET("/me", h.GetUserSettings)
		settings.PUT("/me", h.UpdateUserSettings)
	}
}
