package settings

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	FindOrganizationSettings(ctx context.Context, organizationID string) (*OrganizationSettings, error)
	CreateOrganizationSettings(ctx context.Context, os *OrganizationSettings) error
	UpdateOrganizationSettings(ctx context.Context, os *OrganizationSettings) error
	FindUserSettings(ctx context.Context, organizationID, userID string) (*UserSettings, error)
	CreateUserSettings(ctx context.Context, us *UserSettings) error
	UpdateUserSettings(ctx context.Context, us *UserSettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindOrganizationSettings(ctx context.Context, organizationID string) (*OrganizationSettings, error) {
	var os OrganizationSettings
	err := r.db.WithContext(ctx).
		First(&os, "organization_id = ?", organizationID).Error
	return &os, err
}

func (r *repository) CreateOrganizationSettings(ctx context.Context, os *OrganizationSettings) error {
	return r.db.WithContext(ctx).Create(os).Error
}

func (r *repository) UpdateOrganizationSettings(ctx context.Context, os *OrganizationSettings) error {
	return r.db.WithContext(ctx).Save(os).Error
}

func (r *repository) FindUserSettings(ctx context.Context, organizationID, userID string) (*UserSettings, error) {
	var us UserSettings
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&us).Error
	return &us, err
}

func (r *repository) CreateUserSettings(ctx context.Context, us *UserSettings) error {
	return r.db.WithContext(ctx).Create(us).Error
}

func (r *repository) UpdateUserSettings(ctx context.Context, us *UserSettings) error {
	return r.db.WithContext(ctx).Save(us).Error
}
