package recruitment

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"talenthub/internal/events"
	"talenthub/internal/identity"
	"talenthub/internal/messaging/kafka"
	recruitmenterrors "talenthub/internal/recruitment/errors"
	"talenthub/internal/shared/apperror"
	"talenthub/internal/shared/contextutil"
	"talenthub/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

//go:generate mockgen -source=recruitment_service.go -destination=mock/recruitment_service_mock.go -package=mock
type Service interface {
	CreateJobPosting(ctx context.Context, actor identity.Principal, req CreateJobPostingRequest) (JobPostingResponse, error)
	UpdateJobPosting(ctx context.Context, actor identity.Principal, id string, req UpdateJobPostingRequest) (JobPostingResponse, error)
	ListJobPostings(ctx context.Context, organizationID string, f PostingListFilter) (response.Paginated[JobPostingResponse], error)
	CreateCandidate(ctx context.Context, organizationID string, req CreateCandidateRequest) (CandidateResponse, error)
	ListCandidates(ctx context.Context, organizationID string, f CandidateListFilter) (response.Paginated[CandidateResponse], error)
	UpdateCandidateStatus(ctx context.Context, actor identity.Principal, id string, req UpdateCandidateStatusRequest) (CandidateResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("recruitment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) CreateJobPosting(ctx context.Context, actor identity.Principal, req CreateJobPostingRequest) (JobPostingResponse, error) {
	if !actor.HasRole(identity.RoleAdmin, identity.RoleManager) {
		return JobPostingResponse{}, apperror.ErrForbidden
	}

	orgUUID, err := uuid.Parse(actor.OrganizationID)
	if err != nil {
		return JobPostingResponse{}, apperror.ErrForbidden
	}

	p := &JobPosting{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Status:         PostingStatusOpen,
		CreatedBy:      actor.UserID,
	}
	if err := s.repo.CreateJobPosting(ctx, p); err != nil {
		s.logger.Error("create job posting failed", zap.Error(err))
		return JobPostingResponse{}, err
	}

	s.logger.Info("job posting created",
		zap.String("job_posting_id", p.ID.String()),
		zap.String("organization_id", actor.OrganizationID),
	)
	return mapPosting(*p), nil
}

func (s *service) UpdateJobPosting(ctx context.Context, actor identity.Principal, id string, req UpdateJobPostingRequest) (JobPostingResponse, error) {
	if !actor.HasRole(identity.RoleAdmin, identity.RoleManager) {
		return JobPostingResponse{}, apperror.ErrForbidden
	}

	p, err := s.repo.FindJobPostingByID(ctx, actor.OrganizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobPostingResponse{}, recruitmenterrors.ErrJobPostingNotFound
		}
		return JobPostingResponse{}, err
	}

	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Location != "" {
		p.Location = req.Location
	}
	if req.EmploymentType != "" {
		p.EmploymentType = req.EmploymentType
	}
	if req.Status != "" {
		p.Status = req.Status
	}

	if err := s.repo.UpdateJobPosting(ctx, p); err != nil {
		s.logger.Error("update job posting failed", zap.String("job_posting_id", id), zap.Error(err))
		return JobPostingResponse{}, err
	}
	return mapPosting(*p), nil
}

func (s *service) ListJobPostings(ctx context.Context, organizationID string, f PostingListFilter) (response.Paginated[JobPostingResponse], error) {
	page, pageSize := response.NormalizePage(f.Page, f.PageSize)
	offset := response.PageOffset(page, pageSize)

	postings, total, err := s.repo.FindJobPostings(ctx, organizationID, f, pageSize, offset)
	if err != nil {
		return response.Paginated[JobPostingResponse]{}, err
	}

	items := make([]JobPostingResponse, len(postings))
	for i, p := range postings {
		items[i] = mapPosting(p)
	}
	return response.NewPaginated(items, total, page, pageSize), nil
}

func (s *service) CreateCandidate(ctx context.Context, organizationID string, req CreateCandidateRequest) (CandidateResponse, error) {
	posting, err := s.repo.FindJobPostingByID(ctx, organizationID, req.JobPostingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrJobPostingNotFound
		}
		return CandidateResponse{}, err
	}

	c := &Candidate{
		ID:             uuid.New(),
		OrganizationID: posting.OrganizationID,
		JobPostingID:   posting.ID,
		Name:           req.Name,
		Email:          strings.ToLower(req.Email),
		Status:         CandidateStatusApplied,
		CurrentStage:   CandidateStatusApplied,
	}
	if err := s.repo.CreateCandidate(ctx, c); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return CandidateResponse{}, recruitmenterrors.ErrDuplicateCandidate
		}
		s.logger.Error("create candidate failed", zap.Error(err))
		return CandidateResponse{}, err
	}

	s.logger.Info("candidate created",
		zap.String("candidate_id", c.ID.String()),
		zap.String("job_posting_id", posting.ID.String()),
	)
	return mapCandidate(*c), nil
}

func (s *service) ListCandidates(ctx context.Context, organizationID string, f CandidateListFilter) (response.Paginated[CandidateResponse], error) {
	page, pageSize := response.NormalizePage(f.Page, f.PageSize)
	offset := response.PageOffset(page, pageSize)

	candidates, total, err := s.repo.FindCandidates(ctx, organizationID, f, pageSize, offset)
	if err != nil {
		return response.Paginated[CandidateResponse]{}, err
	}

	items := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		items[i] = mapCandidate(c)
	}
	return response.NewPaginated(items, total, page, pageSize), nil
}

func (s *service) UpdateCandidateStatus(ctx context.Context, actor identity.Principal, id string, req UpdateCandidateStatusRequest) (CandidateResponse, error) {
	if !actor.HasRole(identity.RoleAdmin, identity.RoleManager) {
		return CandidateResponse{}, apperror.ErrForbidden
	}

	target := strings.ToLower(req.Status)
	if !knownCandidateStatus(target) {
		return CandidateResponse{}, recruitmenterrors.ErrUnknownStatus
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("update candidate status begin tx failed", zap.Error(tx.Error))
		return CandidateResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindCandidateByID(ctx, actor.OrganizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrCandidateNotFound
		}
		return CandidateResponse{}, err
	}

	if c.Status == target {
		// Idempoten: status sudah sesuai, tidak ada mutasi dan tidak ada event.
		return mapCandidate(*c), nil
	}

	if err := validateTransition(c.Status, target); err != nil {
		return CandidateResponse{}, err
	}

	from := c.Status
	c.Status = target
	// Label stage opsional; default mengikuti status baru.
	c.CurrentStage = target
	if req.CurrentStage != "" {
		c.CurrentStage = req.CurrentStage
	}

	if err := qtx.UpdateCandidate(ctx, c); err != nil {
		return CandidateResponse{}, err
	}

	if err := s.enqueueStatusChangedEvent(ctx, tx, c, from, actor.UserID); err != nil {
		return CandidateResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("update candidate status commit failed", zap.Error(err))
		return CandidateResponse{}, err
	}

	s.logger.Info("candidate status changed",
		zap.String("candidate_id", id),
		zap.String("from", from),
		zap.String("to", target),
		zap.String("changed_by", actor.UserID),
	)
	return mapCandidate(*c), nil
}

func (s *service) enqueueStatusChangedEvent(ctx context.Context, tx *gorm.DB, c *Candidate, from, changedBy string) error {
	payload, err := json.Marshal(events.CandidateStatusChangedEvent{
		EventType:      events.EventTypeCandidateStatusChanged,
		OrganizationID: c.OrganizationID.String(),
		CandidateID:    c.ID.String(),
		CandidateName:  c.Name,
		JobPostingID:   c.JobPostingID.String(),
		FromStatus:     from,
		ToStatus:       c.Status,
		ChangedBy:      changedBy,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:             uuid.New().String(),
		RequestID:      contextutil.GetRequestID(ctx),
		OrganizationID: c.OrganizationID.String(),
		AggregateType:  "candidate",
		AggregateID:    c.ID.String(),
		EventType:      events.EventTypeCandidateStatusChanged,
		Topic:          events.RecruitmentPipelineTopic,
		Payload:        payload,
		Status:         kafka.OutboxStatusPending,
	})
}

func knownCandidateStatus(status string) bool {
	switch status {
	case CandidateStatusApplied, CandidateStatusScreening, CandidateStatusInterview,
		CandidateStatusOffer, CandidateStatusHired, CandidateStatusRejected:
		return true
	}
	return false
}

func terminalStatus(status string) bool {
	return status == CandidateStatusHired || status == CandidateStatusRejected
}

// validateTransition memeriksa mesin status kandidat:
// applied → screening → interview → offer → hired, rejected dari status
// non-terminal mana pun, hired dan rejected terminal. Mundur antar status
// non-terminal diterima.
func validateTransition(from, to string) error {
	if terminalStatus(from) {
		return recruitmenterrors.ErrTerminalStatus
	}
	switch to {
	case CandidateStatusRejected:
		return nil
	case CandidateStatusHired:
		if from != CandidateStatusOffer {
			return recruitmenterrors.ErrInvalidTransition
		}
		return nil
	default:
		return nil
	}
}

func mapPosting(p JobPosting) JobPostingResponse {
	return JobPostingResponse{
		ID:             p.ID.String(),
		Title:          p.Title,
		Description:    p.Description,
		Location:       p.Location,
		EmploymentType: p.EmploymentType,
		Status:         p.Status,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}

func mapCandidate(c Candidate) CandidateResponse {
	return CandidateResponse{
		ID:           c.ID.String(),
		JobPostingID: c.JobPostingID.String(),
		Name:         c.Name,
		Email:        c.Email,
		Status:       c.Status,
		CurrentStage: c.CurrentStage,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}
