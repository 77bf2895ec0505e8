package performance

type CreateReviewRequest struct {
	RevieweeID string `json:"reviewee_id" binding:"required,max=128"`
	Period     string `json:"period" binding:"required,max=50"`
	Type       string `json:"type" binding:"required,oneof=annual probation mid_year peer"`
	Summary    string `json:"summary" binding:"max=5000"`
}

type UpdateReviewRequest struct {
	Status  string `json:"status" binding:"omitempty,oneof=draft submitted finalized"`
	Rating  *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Summary string `json:"summary" binding:"max=5000"`
}

type CreateFeedbackRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,max=128"`
	Category    string `json:"category" binding:"required,oneof=praise improvement general"`
	Content     string `json:"content" binding:"required,max=5000"`
}

type ReviewListFilter struct {
	RevieweeID string
	Status     string
	Period     string
	Page       int
	PageSize   int
}

type ReviewResponse struct {
	ID         string `json:"id"`
	RevieweeID string `json:"reviewee_id"`
	ReviewerID string `json:"reviewer_id"`
	Period     string `json:"period"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	Rating     *int   `json:"rating,omitempty"`
	Summary    string `json:"summary,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type FeedbackResponse struct {
	ID          string `json:"id"`
	AuthorID    string `json:"author_id"`
	RecipientID string `json:"recipient_id"`
	Category    string `json:"category"`
	Content     string `json:"content"`
	CreatedAt   string `json:"created_at"`
}

type DeleteFeedbackResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
