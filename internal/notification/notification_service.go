package notification

import (
	"context"
	"errors"
	"time"

	notificationerrors "talenthub/internal/notification/errors"
	"talenthub/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, organizationID, recipientID string, f ListFilter) (response.Paginated[NotificationResponse], error)
	UnreadCount(ctx context.Context, organizationID, recipientID string) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, organizationID, recipientID, id string) (NotificationResponse, error)
	MarkAllRead(ctx context.Context, organizationID, recipientID string) (MarkAllReadResponse, error)
	Create(ctx context.Context, organizationID string, req CreateNotificationRequest) (NotificationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(
	ctx context.Context,
	organizationID, recipientID string,
	f ListFilter,
) (response.Paginated[NotificationResponse], error) {
	page, pageSize := response.NormalizePage(f.Page, f.PageSize)
	offset := response.PageOffset(page, pageSize)

	items, total, err := s.repo.FindByRecipient(ctx, organizationID, recipientID, f, pageSize, offset)
	if err != nil {
		return response.Paginated[NotificationResponse]{}, err
	}

	return response.NewPaginated(mapToListResponse(items), total, page, pageSize), nil
}

func (s *service) UnreadCount(ctx context.Context, organizationID, recipientID string) (UnreadCountResponse, error) {
	count, err := s.repo.CountUnread(ctx, organizationID, recipientID)
	if err != nil {
		return UnreadCountResponse{}, err
	}
	return UnreadCountResponse{Unread: count}, nil
}

func (s *service) MarkRead(ctx context.Context, organizationID, recipientID, id string) (NotificationResponse, error) {
	n, err := s.repo.FindByIDAndRecipient(ctx, organizationID, recipientID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Milik recipient lain atau tidak ada — dua-duanya NOT_FOUND,
			// caller tidak bisa membedakan.
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}

	if !n.Read {
		if err := s.repo.MarkRead(ctx, n); err != nil {
			return NotificationResponse{}, err
		}
	}

	return mapToResponse(*n), nil
}

func (s *service) MarkAllRead(ctx context.Context, organizationID, recipientID string) (MarkAllReadResponse, error) {
	updated, err := s.repo.MarkAllRead(ctx, organizationID, recipientID)
	if err != nil {
		return MarkAllReadResponse{}, err
	}

	s.logger.Info("notifications marked all read",
		zap.String("organization_id", organizationID),
		zap.String("recipient_id", recipientID),
		zap.Int64("updated", updated),
	)
	return MarkAllReadResponse{Updated: updated}, nil
}

func (s *service) Create(ctx context.Context, organizationID string, req CreateNotificationRequest) (NotificationResponse, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidRecipient
	}
	if req.RecipientID == "" {
		return NotificationResponse{}, notificationerrors.ErrInvalidRecipient
	}

	n := &Notification{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		RecipientID:    req.RecipientID,
		Type:           req.Type,
		Title:          req.Title,
		Message:        req.Message,
		ResourceType:   req.ResourceType,
		ResourceID:     req.ResourceID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return NotificationResponse{}, err
	}

	return mapToResponse(*n), nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:           n.ID.String(),
		Type:         n.Type,
		Title:        n.Title,
		Message:      n.Message,
		ResourceType: n.ResourceType,
		ResourceID:   n.ResourceID,
		Read:         n.Read,
		CreatedAt:    n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}

func mapToListResponse(items []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return resp
}
