package performance

import (
	"context"
	"errors"
	"time"

	"talenthub/internal/identity"
	performanceerrors "talenthub/internal/performance/errors"
	"talenthub/internal/shared/apperror"
	"talenthub/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=performance_service.go -destination=mock/performance_service_mock.go -package=mock
type Service interface {
	CreateReview(ctx context.Context, actor identity.Principal, req CreateReviewRequest) (ReviewResponse, error)
	ListReviews(ctx context.Context, organizationID string, f ReviewListFilter) (response.Paginated[ReviewResponse], error)
	GetReviewByID(ctx context.Context, organizationID, id string) (ReviewResponse, error)
	UpdateReview(ctx context.Context, actor identity.Principal, id string, req UpdateReviewRequest) (ReviewResponse, error)
	CreateFeedback(ctx context.Context, actor identity.Principal, req CreateFeedbackRequest) (FeedbackResponse, error)
	DeleteFeedback(ctx context.Context, actor identity.Principal, id string) (DeleteFeedbackResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("performance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("performance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateReview(ctx context.Context, actor identity.Principal, req CreateReviewRequest) (ReviewResponse, error) {
	if !actor.HasRole(identity.RoleAdmin, identity.RoleManager) {
		return ReviewResponse{}, apperror.ErrForbidden
	}

	orgUUID, err := uuid.Parse(actor.OrganizationID)
	if err != nil {
		return ReviewResponse{}, apperror.ErrForbidden
	}

	rv := &Review{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		RevieweeID:     req.RevieweeID,
		ReviewerID:     actor.UserID,
		Period:         req.Period,
		Type:           req.Type,
		Status:         ReviewStatusDraft,
		Summary:        req.Summary,
	}
	if err := s.repo.CreateReview(ctx, rv); err != nil {
		s.logger.Error("create review failed", zap.Error(err))
		return ReviewResponse{}, err
	}

	s.logger.Info("performance review created",
		zap.String("review_id", rv.ID.String()),
		zap.String("reviewee_id", rv.RevieweeID),
		zap.String("reviewer_id", rv.ReviewerID),
	)
	return mapReview(*rv), nil
}

func (s *service) ListReviews(ctx context.Context, organizationID string, f ReviewListFilter) (response.Paginated[ReviewResponse], error) {
	page, pageSize := response.NormalizePage(f.Page, f.PageSize)
	offset := response.PageOffset(page, pageSize)

	reviews, total, err := s.repo.FindReviews(ctx, organizationID, f, pageSize, offset)
	if err != nil {
		return response.Paginated[ReviewResponse]{}, err
	}

	items := make([]ReviewResponse, len(reviews))
	for i, rv := range reviews {
		items[i] = mapReview(rv)
	}
	return response.NewPaginated(items, total, page, pageSize), nil
}

func (s *service) GetReviewByID(ctx context.Context, organizationID, id string) (ReviewResponse, error) {
	rv, err := s.repo.FindReviewByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewResponse{}, performanceerrors.ErrReviewNotFound
		}
		return ReviewResponse{}, err
	}
	return mapReview(*rv), nil
}

func (s *service) UpdateReview(ctx context.Context, actor identity.Principal, id string, req UpdateReviewRequest) (ReviewResponse, error) {
	if !actor.HasRole(identity.RoleAdmin, identity.RoleManager) {
		return ReviewResponse{}, apperror.ErrForbidden
	}

	rv, err := s.repo.FindReviewByID(ctx, actor.OrganizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewResponse{}, performanceerrors.ErrReviewNotFound
		}
		return ReviewResponse{}, err
	}

	if rv.Status == ReviewStatusFinalized {
		return ReviewResponse{}, performanceerrors.ErrReviewFinalized
	}

	if req.Status != "" {
		rv.Status = req.Status
	}
	if req.Rating != nil {
		rv.Rating = req.Rating
	}
	if req.Summary != "" {
		rv.Summary = req.Summary
	}

	if err := s.repo.UpdateReview(ctx, rv); err != nil {
		s.logger.Error("update review failed", zap.String("review_id", id), zap.Error(err))
		return ReviewResponse{}, err
	}
	return mapReview(*rv), nil
}

func (s *service) CreateFeedback(ctx context.Context, actor identity.Principal, req CreateFeedbackRequest) (FeedbackResponse, error) {
	orgUUID, err := uuid.Parse(actor.OrganizationID)
	if err != nil {
		return FeedbackResponse{}, apperror.ErrForbidden
	}

	fb := &Feedback{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		AuthorID:       actor.UserID,
		RecipientID:    req.RecipientID,
		Category:       req.Category,
		Content:        req.Content,
	}
	if err := s.repo.CreateFeedback(ctx, fb); err != nil {
		s.logger.Error("create feedback failed", zap.Error(err))
		return FeedbackResponse{}, err
	}

	return mapFeedback(*fb), nil
}

func (s *service) DeleteFeedback(ctx context.Context, actor identity.Principal, id string) (DeleteFeedbackResponse, error) {
	fb, err := s.repo.FindFeedbackByID(ctx, actor.OrganizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeleteFeedbackResponse{}, performanceerrors.ErrFeedbackNotFound
		}
		return DeleteFeedbackResponse{}, err
	}

	// Hanya penulis atau admin yang boleh menghapus feedback.
	if fb.AuthorID != actor.UserID && actor.Role != identity.RoleAdmin {
		return DeleteFeedbackResponse{}, apperror.ErrForbidden
	}

	if err := s.repo.DeleteFeedback(ctx, actor.OrganizationID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeleteFeedbackResponse{}, performanceerrors.ErrFeedbackNotFound
		}
		return DeleteFeedbackResponse{}, err
	}

	s.logger.Info("feedback deleted",
		zap.String("feedback_id", id),
		zap.String("deleted_by", actor.UserID),
	)
	return DeleteFeedbackResponse{ID: id, Deleted: true}, nil
}

func mapReview(rv Review) ReviewResponse {
	return ReviewResponse{
		ID:         rv.ID.String(),
		RevieweeID: rv.RevieweeID,
		ReviewerID: rv.ReviewerID,
		Period:     rv.Period,
		Type:       rv.Type,
		Status:     rv.Status,
		Rating:     rv.Rating,
		Summary:    rv.Summary,
		CreatedAt:  rv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  rv.UpdatedAt.Format(time.RFC3339),
	}
}

func mapFeedback(fb Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:          fb.ID.String(),
		AuthorID:    fb.AuthorID,
		RecipientID: fb.RecipientID,
		Category:    fb.Category,
		Content:     fb.Content,
		CreatedAt:   fb.CreatedAt.Format(time.RFC3339),
	}
}
