package goal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

type Goal struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_goals_org"`
	OwnerID        string    `gorm:"type:varchar(128);not null;index"`

	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"type:varchar(20);not null;default:'active'"`
	Period      string `gorm:"type:varchar(50)"`

	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`

	KeyResults []KeyResult `gorm:"foreignKey:GoalID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type KeyResult struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GoalID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title        string  `gorm:"type:varchar(200);not null"`
	TargetValue  float64 `gorm:"not null"`
	CurrentValue float64 `gorm:"not null;default:0"`
	Unit         string  `gorm:"type:varchar(30)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProgressUpdate adalah baris audit, ditulis satu transaksi dengan
// update nilai key result.
type ProgressUpdate struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	KeyResultID uuid.UUID `gorm:"type:uuid;not null;index"`

	PreviousValue float64 `gorm:"not null"`
	NewValue      float64 `gorm:"not null"`
	Notes         string  `gorm:"type:varchar(500)"`
	CreatedBy     string  `gorm:"type:varchar(128);not null"`

	CreatedAt time.Time
}
