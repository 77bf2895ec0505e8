package performance

import (
	"context"

	"talenthub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=performance_repo.go -destination=mock/performance_repo_mock.go -package=mock
type Repository interface {
	CreateReview(ctx context.Context, r *Review) error
	FindReviews(ctx context.Context, organizationID string, f ReviewListFilter, limit, offset int) ([]Review, int64, error)
	FindReviewByID(ctx context.Context, organizationID, id string) (*Review, error)
	UpdateReview(ctx context.Context, r *Review) error
	CreateFeedback(ctx context.Context, fb *Feedback) error
	FindFeedbackByID(ctx context.Context, organizationID, id string) (*Feedback, error)
	DeleteFeedback(ctx context.Context, organizationID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReview(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *repository) FindReviews(
	ctx context.Context,
	organizationID string,
	f ReviewListFilter,
	limit, offset int,
) ([]Review, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Review{}).
		Scopes(tenant.Scope(organizationID))

	if f.RevieweeID != "" {
		q = q.Where("reviewee_id = ?", f.RevieweeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Period != "" {
		q = q.Where("period = ?", f.Period)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []Review
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *repository) FindReviewByID(ctx context.Context, organizationID, id string) (*Review, error) {
	var rv Review
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&rv, "id = ?", id).Error
	return &rv, err
}

func (r *repository) UpdateReview(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *repository) CreateFeedback(ctx context.Context, fb *Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *repository) FindFeedbackByID(ctx context.Context, organizationID, id string) (*Feedback, error) {
	var fb Feedback
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&fb, "id = ?", id).Error
	return &fb, err
}

func (r *repository) DeleteFeedback(ctx context.Context, organizationID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Delete(&Feedback{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
