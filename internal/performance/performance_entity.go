package performance

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReviewStatusDraft     = "draft"
	ReviewStatusSubmitted = "submitted"
	ReviewStatusFinalized = "finalized"
)

type Review struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_reviews_org"`

	RevieweeID string `gorm:"type:varchar(128);not null;index"`
	ReviewerID string `gorm:"type:varchar(128);not null"`

	Period string `gorm:"type:varchar(50);not null"`
	Type   string `gorm:"type:varchar(30);not null"`
	Status string `gorm:"type:varchar(20);not null;default:'draft'"`
	Rating *int   `gorm:"type:smallint"`

	Summary string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Feedback struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_feedback_org"`

	AuthorID    string `gorm:"type:varchar(128);not null"`
	RecipientID string `gorm:"type:varchar(128);not null;index"`

	Category string `gorm:"type:varchar(30);not null"`
	Content  string `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
