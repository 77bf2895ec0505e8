package notification

import (
	"context"
	"time"

	"talenthub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByRecipient(ctx context.Context, organizationID, recipientID string, f ListFilter, limit, offset int) ([]Notification, int64, error)
	FindByIDAndRecipient(ctx context.Context, organizationID, recipientID, id string) (*Notification, error)
	MarkRead(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, organizationID, recipientID string) (int64, error)
	CountUnread(ctx context.Context, organizationID, recipientID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByRecipient(
	ctx context.Context,
	organizationID, recipientID string,
	f ListFilter,
	limit, offset int,
) ([]Notification, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(tenant.Scope(organizationID)).
		Where("recipient_id = ?", recipientID)

	if f.UnreadOnly {
		q = q.Where("read = ?", false)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []Notification
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByIDAndRecipient(ctx context.Context, organizationID, recipientID, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("recipient_id = ?", recipientID).
		First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) MarkRead(ctx context.Context, n *Notification) error {
	now := time.Now().UTC()
	n.Read = true
	n.ReadAt = &now
	return r.db.WithContext(ctx).
		Model(n).
		Updates(map[string]any{"read": true, "read_at": now}).Error
}

func (r *repository) MarkAllRead(ctx context.Context, organizationID, recipientID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(tenant.Scope(organizationID)).
		Where("recipient_id = ?", recipientID).
		Where("read = ?", false).
		Updates(map[string]any{"read": true, "read_at": time.Now().UTC()})
	return res.RowsAffected, res.Error
}

func (r *repository) CountUnread(ctx context.Context, organizationID, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(tenant.Scope(organizationID)).
		Where("recipient_id = ?", recipientID).
		Where("read = ?", false).
		Count(&count).Error
	return count, err
}
