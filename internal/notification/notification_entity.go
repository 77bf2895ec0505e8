package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_org_recipient"`
	RecipientID    string    `gorm:"type:varchar(128);not null;index:idx_notifications_org_recipient"`

	Type         string `gorm:"type:varchar(50);not null"`
	Title        string `gorm:"type:varchar(200);not null"`
	Message      string `gorm:"type:text"`
	ResourceType string `gorm:"type:varchar(50)"`
	ResourceID   string `gorm:"type:varchar(64)"`

	Read   bool       `gorm:"not null;default:false;index:idx_notifications_unread"`
	ReadAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
