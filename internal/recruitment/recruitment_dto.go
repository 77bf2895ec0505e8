package recruitment

type CreateJobPostingRequest struct {
	Title          string `json:"title" binding:"required,max=200"`
	Description    string `json:"description" binding:"max=5000"`
	Location       string `json:"location" binding:"max=120"`
	EmploymentType string `json:"employment_type" binding:"required,oneof=full_time part_time contract internship"`
}

type UpdateJobPostingRequest struct {
	Title          string `json:"title" binding:"omitempty,max=200"`
	Description    string `json:"description" binding:"max=5000"`
	Location       string `json:"location" binding:"max=120"`
	EmploymentType string `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship"`
	Status         string `json:"status" binding:"omitempty,oneof=draft open closed"`
}

type CreateCandidateRequest struct {
	JobPostingID string `json:"job_posting_id" binding:"required,uuid"`
	Name         string `json:"name" binding:"required,max=200"`
	Email        string `json:"email" binding:"required,email"`
}

type UpdateCandidateStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	CurrentStage string `json:"current_stage" binding:"omitempty,max=50"`
}

type CandidateListFilter struct {
	JobPostingID string
	Status       string
	Page         int
	PageSize     int
}

type PostingListFilter struct {
	Status   string
	Page     int
	PageSize int
}

type JobPostingResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type"`
	Status         string `json:"status"`
	CreatedBy      string `json:"created_by"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type CandidateResponse struct {
	ID           string `json:"id"`
	JobPostingID string `json:"job_posting_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Status       string `json:"status"`
	CurrentStage string `json:"current_stage"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
