package integration

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProviderSlack     = "slack"
	ProviderGoogle    = "google"
	ProviderMicrosoft = "microsoft"
	ProviderAsana     = "asana"
)

const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

type Integration struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_integrations_org_provider"`
	Provider       string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_integrations_org_provider"`

	Status      string `gorm:"type:varchar(20);not null;default:'connected'"`
	Credentials string `gorm:"type:text"`

	ConnectedBy string     `gorm:"type:varchar(128);not null"`
	ConnectedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
