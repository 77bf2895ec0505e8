package integration

import (
	"context"

	"talenthub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=integration_repo.go -destination=mock/integration_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, i *Integration) error
	FindAll(ctx context.Context, organizationID string) ([]Integration, error)
	FindByProvider(ctx context.Context, organizationID, provider string) (*Integration, error)
	Update(ctx context.Context, i *Integration) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, i *Integration) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *repository) FindAll(ctx context.Context, organizationID string) ([]Integration, error) {
	var integrations []Integration
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("provider ASC").
		Find(&integrations).Error
	return integrations, err
}

func (r *repository) FindByProvider(ctx context.Context, organizationID, provider string) (*Integration, error) {
	var i Integration
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&i, "provider = ?", provider).Error
	return &i, err
}

func (r *repository) Update(ctx context.Context, i *Integration) error {
	return r.db.WithContext(ctx).Save(i).Error
}
