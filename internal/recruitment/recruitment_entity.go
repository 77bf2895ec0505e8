package recruitment

import (
	"time"

	"github.com/google/uuid"
)

const (
	PostingStatusDraft  = "draft"
	PostingStatusOpen   = "open"
	PostingStatusClosed = "closed"
)

const (
	CandidateStatusApplied   = "applied"
	CandidateStatusScreening = "screening"
	CandidateStatusInterview = "interview"
	CandidateStatusOffer     = "offer"
	CandidateStatusHired     = "hired"
	CandidateStatusRejected  = "rejected"
)

type JobPosting struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_job_postings_org"`

	Title          string `gorm:"type:varchar(200);not null"`
	Description    string `gorm:"type:text"`
	Location       string `gorm:"type:varchar(120)"`
	EmploymentType string `gorm:"type:varchar(30);not null"`
	Status         string `gorm:"type:varchar(20);not null;default:'open'"`
	CreatedBy      string `gorm:"type:varchar(128);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Candidate struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_candidates_org"`
	JobPostingID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_candidates_posting_email"`

	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(254);not null;uniqueIndex:idx_candidates_posting_email"`

	Status       string `gorm:"type:varchar(20);not null;default:'applied'"`
	CurrentStage string `gorm:"type:varchar(20);not null;default:'applied'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
