package goal

import (
	"context"

	"talenthub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=goal_repo.go -destination=mock/goal_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, g *Goal) error
	FindAll(ctx context.Context, organizationID string, f ListFilter, limit, offset int) ([]Goal, int64, error)
	FindByID(ctx context.Context, organizationID, id string) (*Goal, error)
	Update(ctx context.Context, g *Goal) error
	SoftDelete(ctx context.Context, organizationID, id string) error
	CreateKeyResult(ctx context.Context, kr *KeyResult) error
	FindKeyResult(ctx context.Context, organizationID, id string) (*KeyResult, *Goal, error)
	UpdateKeyResult(ctx context.Context, kr *KeyResult) error
	CreateProgressUpdate(ctx context.Context, pu *ProgressUpdate) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindAll(
	ctx context.Context,
	organizationID string,
	f ListFilter,
	limit, offset int,
) ([]Goal, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Goal{}).
		Scopes(tenant.Scope(organizationID))

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var goals []Goal
	err := q.Preload("KeyResults").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&goals).Error
	return goals, total, err
}

func (r *repository) FindByID(ctx context.Context, organizationID, id string) (*Goal, error) {
	var g Goal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Preload("KeyResults").
		First(&g, "id = ?", id).Error
	return &g, err
}

func (r *repository) Update(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *repository) SoftDelete(ctx context.Context, organizationID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Delete(&Goal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateKeyResult(ctx context.Context, kr *KeyResult) error {
	return r.db.WithContext(ctx).Create(kr).Error
}

// FindKeyResult mencari key result lewat join ke goals sehingga referensi
// lintas tenant berakhir sebagai record not found, bukan kebocoran data.
func (r *repository) FindKeyResult(ctx context.Context, organizationID, id string) (*KeyResult, *Goal, error) {
	var kr KeyResult
	err := r.db.WithContext(ctx).
		Joins("JOIN goals ON goals.id = key_results.goal_id").
		Where("goals.organization_id = ? AND goals.deleted_at IS NULL", organizationID).
		First(&kr, "key_results.id = ?", id).Error
	if err != nil {
		return nil, nil, err
	}

	var g Goal
	err = r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&g, "id = ?", kr.GoalID).Error
	if err != nil {
		return nil, nil, err
	}

	return &kr, &g, nil
}

func (r *repository) UpdateKeyResult(ctx context.Context, kr *KeyResult) error {
	return r.db.WithContext(ctx).Save(kr).Error
}

func (r *repository) CreateProgressUpdate(ctx context.Context, pu *ProgressUpdate) error {
	return r.db.WithContext(ctx).Create(pu).Error
}
