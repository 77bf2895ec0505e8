package goal

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	goalerrors "talenthub/internal/goal/errors"
	"talenthub/internal/events"
	"talenthub/internal/messaging/kafka"
	"talenthub/internal/shared/contextutil"
	"talenthub/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=goal_service.go -destination=mock/goal_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, actorID string, req CreateGoalRequest) (GoalResponse, error)
	List(ctx context.Context, organizationID string, f ListFilter) (response.Paginated[GoalResponse], error)
	GetByID(ctx context.Context, organizationID, id string) (GoalResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdateGoalRequest) (GoalResponse, error)
	Delete(ctx context.Context, organizationID, id string) (DeleteGoalResponse, error)
	CreateKeyResult(ctx context.Context, organizationID, goalID string, req CreateKeyResultRequest) (KeyResultResponse, error)
	UpdateKeyResultProgress(ctx context.Context, organizationID, actorID, keyResultID string, req UpdateProgressRequest) (KeyResultResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("goal.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("goal.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, organizationID, actorID string, req CreateGoalRequest) (GoalResponse, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return GoalResponse{}, goalerrors.ErrGoalNotFound
	}

	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return GoalResponse{}, err
	}

	g := &Goal{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		OwnerID:        actorID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         StatusActive,
		Period:         req.Period,
		StartDate:      startDate,
		EndDate:        endDate,
	}
	for _, kr := range req.KeyResults {
		g.KeyResults = append(g.KeyResults, KeyResult{
			ID:          uuid.New(),
			GoalID:      g.ID,
			Title:       kr.Title,
			TargetValue: kr.TargetValue,
			Unit:        kr.Unit,
		})
	}

	if err := s.repo.Create(ctx, g); err != nil {
		s.logger.Error("create goal failed", zap.Error(err))
		return GoalResponse{}, err
	}

	s.logger.Info("goal created",
		zap.String("goal_id", g.ID.String()),
		zap.String("organization_id", organizationID),
		zap.String("owner_id", actorID),
	)
	return mapToResponse(*g), nil
}

func (s *service) List(ctx context.Context, organizationID string, f ListFilter) (response.Paginated[GoalResponse], error) {
	page, pageSize := response.NormalizePage(f.Page, f.PageSize)
	offset := response.PageOffset(page, pageSize)

	goals, total, err := s.repo.FindAll(ctx, organizationID, f, pageSize, offset)
	if err != nil {
		return response.Paginated[GoalResponse]{}, err
	}

	items := make([]GoalResponse, len(goals))
	for i, g := range goals {
		items[i] = mapToResponse(g)
	}
	return response.NewPaginated(items, total, page, pageSize), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (GoalResponse, error) {
	g, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GoalResponse{}, goalerrors.ErrGoalNotFound
		}
		return GoalResponse{}, err
	}
	return mapToResponse(*g), nil
}

func (s *service) Update(ctx context.Context, organizationID, id string, req UpdateGoalRequest) (GoalResponse, error) {
	g, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GoalResponse{}, goalerrors.ErrGoalNotFound
		}
		return GoalResponse{}, err
	}

	if req.Title != "" {
		g.Title = req.Title
	}
	if req.Description != "" {
		g.Description = req.Description
	}
	if req.Status != "" {
		g.Status = req.Status
	}
	if req.Period != "" {
		g.Period = req.Period
	}
	if req.StartDate != "" || req.EndDate != "" {
		startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
		if err != nil {
			return GoalResponse{}, err
		}
		if startDate != nil {
			g.StartDate = startDate
		}
		if endDate != nil {
			g.EndDate = endDate
		}
	}

	if err := s.repo.Update(ctx, g); err != nil {
		s.logger.Error("update goal failed", zap.String("goal_id", id), zap.Error(err))
		return GoalResponse{}, err
	}
	return mapToResponse(*g), nil
}

func (s *service) Delete(ctx context.Context, organizationID, id string) (DeleteGoalResponse, error) {
	if err := s.repo.SoftDelete(ctx, organizationID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeleteGoalResponse{}, goalerrors.ErrGoalNotFound
		}
		return DeleteGoalResponse{}, err
	}

	s.logger.Info("goal deleted",
		zap.String("goal_id", id),
		zap.String("organization_id", organizationID),
	)
	return DeleteGoalResponse{ID: id, Deleted: true}, nil
}

func (s *service) CreateKeyResult(ctx context.Context, organizationID, goalID string, req CreateKeyResultRequest) (KeyResultResponse, error) {
	g, err := s.repo.FindByID(ctx, organizationID, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return KeyResultResponse{}, goalerrors.ErrGoalNotFound
		}
		return KeyResultResponse{}, err
	}

	kr := &KeyResult{
		ID:          uuid.New(),
		GoalID:      g.ID,
		Title:       req.Title,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
	}
	if err := s.repo.CreateKeyResult(ctx, kr); err != nil {
		s.logger.Error("create key result failed", zap.String("goal_id", goalID), zap.Error(err))
		return KeyResultResponse{}, err
	}

	return mapKeyResult(*kr), nil
}

func (s *service) UpdateKeyResultProgress(
	ctx context.Context,
	organizationID, actorID, keyResultID string,
	req UpdateProgressRequest,
) (KeyResultResponse, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("update progress begin tx failed", zap.Error(tx.Error))
		return KeyResultResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	kr, g, err := qtx.FindKeyResult(ctx, organizationID, keyResultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Tidak ada atau milik organisasi lain — keduanya NOT_FOUND.
			return KeyResultResponse{}, goalerrors.ErrKeyResultNotFound
		}
		return KeyResultResponse{}, err
	}

	previous := kr.CurrentValue
	kr.CurrentValue = *req.CurrentValue

	if err := qtx.UpdateKeyResult(ctx, kr); err != nil {
		return KeyResultResponse{}, err
	}

	if err := qtx.CreateProgressUpdate(ctx, &ProgressUpdate{
		ID:            uuid.New(),
		KeyResultID:   kr.ID,
		PreviousValue: previous,
		NewValue:      kr.CurrentValue,
		Notes:         req.Notes,
		CreatedBy:     actorID,
	}); err != nil {
		return KeyResultResponse{}, err
	}

	pct := percentage(kr.CurrentValue, kr.TargetValue)
	if pct >= 100 && percentage(previous, kr.TargetValue) < 100 {
		if err := s.enqueueAchievedEvent(ctx, tx, g, kr, pct); err != nil {
			return KeyResultResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("update progress commit failed", zap.Error(err))
		return KeyResultResponse{}, err
	}

	s.logger.Info("key result progress updated",
		zap.String("key_result_id", keyResultID),
		zap.Float64("previous", previous),
		zap.Float64("current", kr.CurrentValue),
		zap.Int("percentage", pct),
	)
	return mapKeyResult(*kr), nil
}

// enqueueAchievedEvent menulis event ke outbox dalam transaksi yang sama.
// Pengiriman ke kafka dikerjakan worker; mutasi tidak menunggu.
func (s *service) enqueueAchievedEvent(ctx context.Context, tx *gorm.DB, g *Goal, kr *KeyResult, pct int) error {
	payload, err := json.Marshal(events.KeyResultAchievedEvent{
		EventType:      events.EventTypeKeyResultAchieved,
		OrganizationID: g.OrganizationID.String(),
		GoalID:         g.ID.String(),
		KeyResultID:    kr.ID.String(),
		OwnerID:        g.OwnerID,
		GoalTitle:      g.Title,
		Percentage:     pct,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:             uuid.New().String(),
		RequestID:      contextutil.GetRequestID(ctx),
		OrganizationID: g.OrganizationID.String(),
		AggregateType:  "key_result",
		AggregateID:    kr.ID.String(),
		EventType:      events.EventTypeKeyResultAchieved,
		Topic:          events.GoalProgressTopic,
		Payload:        payload,
		Status:         kafka.OutboxStatusPending,
	})
}

func percentage(current, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(current / target * 100))
}

func parsePeriod(start, end string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time
	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return nil, nil, goalerrors.ErrInvalidPeriod
		}
		startDate = &t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return nil, nil, goalerrors.ErrInvalidPeriod
		}
		endDate = &t
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, nil, goalerrors.ErrInvalidPeriod
	}
	return startDate, endDate, nil
}

func mapToResponse(g Goal) GoalResponse {
	resp := GoalResponse{
		ID:          g.ID.String(),
		OwnerID:     g.OwnerID,
		Title:       g.Title,
		Description: g.Description,
		Status:      g.Status,
		Period:      g.Period,
		KeyResults:  make([]KeyResultResponse, len(g.KeyResults)),
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   g.UpdatedAt.Format(time.RFC3339),
	}
	if g.StartDate != nil {
		v := g.StartDate.Format("2006-01-02")
		resp.StartDate = &v
	}
	if g.EndDate != nil {
		v := g.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	for i, kr := range g.KeyResults {
		resp.KeyResults[i] = mapKeyResult(kr)
	}
	return resp
}

func mapKeyResult(kr KeyResult) KeyResultResponse {
	pct := percentage(kr.CurrentValue, kr.TargetValue)
	return KeyResultResponse{
		ID:           kr.ID.String(),
		Title:        kr.Title,
		TargetValue:  kr.TargetValue,
		CurrentValue: kr.CurrentValue,
		Unit:         kr.Unit,
		Percentage:   pct,
		Achieved:     pct >= 100,
	}
}
