package identity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile menghubungkan user id dari identity provider ke organisasi + role.
type Profile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_profiles_user"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_profiles_org"`
	Role           string    `gorm:"type:varchar(20);not null;default:'employee'"`
	FullName       string    `gorm:"type:varchar(200)"`
	Email          string    `gorm:"type:varchar(200)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_profiles_deleted_at"`
}
