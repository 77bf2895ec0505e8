package performance

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	performance := rg.Group("/performance")
	{
		performance.POST("/reviews", h.CreateReview)
		performance.GET("/reviews", h.ListReviews)
		performance.GET("/reviews/:id", h.GetReviewByID)
		performance.PUT("/reviews/:id", h.UpdateReview)

		performance.POST("/feedback", h.CreateFeedback)
		performance.DELETE("/feedback/:id", h.DeleteFeedback)
	}
}
