package goal

type CreateGoalRequest struct {
	Title       string                    `json:"title" binding:"required,max=200"`
	Description string                    `json:"description" binding:"max=2000"`
	Period      string                    `json:"period" binding:"max=50"`
	StartDate   string                    `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string                    `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	KeyResults  []CreateKeyResultRequest `json:"key_results" binding:"omitempty,dive"`
}

type UpdateGoalRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Status      string `json:"status" binding:"omitempty,oneof=active completed archived"`
	Period      string `json:"period" binding:"max=50"`
	StartDate   string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

type CreateKeyResultRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	TargetValue float64 `json:"target_value" binding:"required,gt=0"`
	Unit        string  `json:"unit" binding:"max=30"`
}

type UpdateProgressRequest struct {
	// Nilai mentah disimpan apa adanya, tidak di-clamp ke target.
	CurrentValue *float64 `json:"current_value" binding:"required"`
	Notes        string   `json:"notes" binding:"max=500"`
}

type ListFilter struct {
	Status   string
	OwnerID  string
	Page     int
	PageSize int
}

type DeleteGoalResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type GoalResponse struct {
	ID          string              `json:"id"`
	OwnerID     string              `json:"owner_id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      string              `json:"status"`
	Period      string              `json:"period,omitempty"`
	StartDate   *string             `json:"start_date,omitempty"`
	EndDate     *string             `json:"end_date,omitempty"`
	KeyResults  []KeyResultResponse `json:"key_results"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

type KeyResultResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
	Unit         string  `json:"unit,omitempty"`
	Percentage   int     `json:"percentage"`
	Achieved     bool    `json:"achieved"`
}
