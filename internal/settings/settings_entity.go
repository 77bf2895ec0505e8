package settings

import (
	"time"

	"github.com/google/uuid"
)

type OrganizationSettings struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	Timezone    string `gorm:"type:varchar(64);not null;default:'UTC'"`
	Locale      string `gorm:"type:varchar(10);not null;default:'en'"`
	NotifyEmail bool   `gorm:"not null;default:true"`
	NotifyInApp bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserSettings struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_settings_org_user"`
	UserID         string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_user_settings_org_user"`

	Theme    string `gorm:"type:varchar(20);not null;default:'system'"`
	Language string `gorm:"type:varchar(10);not null;default:'en'"`
	Density  string `gorm:"type:varchar(20);not null;default:'comfortable'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
