package recruitment

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	recruitment := rg.Group("/recruitment")
	{
		recruitment.POST("/job-postings", h.CreateJobPosting)
		recruitment.GET("/job-postings", h.ListJobPostings)
		recruitment.PUT("/job-postings/:id", h.UpdateJobPosting)

		recruitment.POST("/candidates", h.CreateCandidate)
		recruitment.GET("/candidates", h.ListCandidates)
		recruitment.PATCH("/candidates/:id/status", h.UpdateCandidateStatus)
	}
}
