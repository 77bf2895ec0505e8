package recruitment_test

import (
	"context"
	"encoding/json"
	"testing"

	"talenthub/internal/events"
	"talenthub/internal/identity"
	"talenthub/internal/messaging/kafka"
	"talenthub/internal/recruitment"
	recruitmenterrors "talenthub/internal/recruitment/errors"
	"talenthub/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRecruitmentRepository struct {
	createJobPostingFn   func(ctx context.Context, p *recruitment.JobPosting) error
	findJobPostingsFn    func(ctx context.Context, organizationID string, f recruitment.PostingListFilter, limit, offset int) ([]recruitment.JobPosting, int64, error)
	findJobPostingByIDFn func(ctx context.Context, organizationID, id string) (*recruitment.JobPosting, error)
	updateJobPostingFn   func(ctx context.Context, p *recruitment.JobPosting) error
	createCandidateFn    func(ctx context.Context, c *recruitment.Candidate) error
	findCandidatesFn     func(ctx context.Context, organizationID string, f recruitment.CandidateListFilter, limit, offset int) ([]recruitment.Candidate, int64, error)
	findCandidateByIDFn  func(ctx context.Context, organizationID, id string) (*recruitment.Candidate, error)
	updateCandidateFn    func(ctx context.Context, c *recruitment.Candidate) error

	updatedCandidates []recruitment.Candidate
}

func (f *fakeRecruitmentRepository) WithTx(tx *gorm.DB) recruitment.Repository { return f }

func (f *fakeRecruitmentRepository) CreateJobPosting(ctx context.Context, p *recruitment.JobPosting) error {
	if f.createJobPostingFn != nil {
		return f.createJobPostingFn(ctx, p)
	}
	return nil
}

func (f *fakeRecruitmentRepository) FindJobPostings(ctx context.Context, organizationID string, fl recruitment.PostingListFilter, limit, offset int) ([]recruitment.JobPosting, int64, error) {
	if f.findJobPostingsFn != nil {
		return f.findJobPostingsFn(ctx, organizationID, fl, limit, offset)
	}
	return nil, 0, nil
}

func (f *fakeRecruitmentRepository) FindJobPostingByID(ctx context.Context, organizationID, id string) (*recruitment.JobPosting, error) {
	if f.findJobPostingByIDFn != nil {
		return f.findJobPostingByIDFn(ctx, organizationID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecruitmentRepository) UpdateJobPosting(ctx context.Context, p *recruitment.JobPosting) error {
	if f.updateJobPostingFn != nil {
		return f.updateJobPostingFn(ctx, p)
	}
	return nil
}

func (f *fakeRecruitmentRepository) CreateCandidate(ctx context.Context, c *recruitment.Candidate) error {
	if f.createCandidateFn != nil {
		return f.createCandidateFn(ctx, c)
	}
	return nil
}

func (f *fakeRecruitmentRepository) FindCandidates(ctx context.Context, organizationID string, fl recruitment.CandidateListFilter, limit, offset int) ([]recruitment.Candidate, int64, error) {
	if f.findCandidatesFn != nil {
		return f.findCandidatesFn(ctx, organizationID, fl, limit, offset)
	}
	return nil, 0, nil
}

func (f *fakeRecruitmentRepository) FindCandidateByID(ctx context.Context, organizationID, id string) (*recruitment.Candidate, error) {
	if f.findCandidateByIDFn != nil {
		return f.findCandidateByIDFn(ctx, organizationID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecruitmentRepository) UpdateCandidate(ctx context.Context, c *recruitment.Candidate) error {
	f.updatedCandidates = append(f.updatedCandidates, *c)
	if f.updateCandidateFn != nil {
		return f.updateCandidateFn(ctx, c)
	}
	return nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type recruitmentServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *fakeRecruitmentRepository
	outbox  *fakeOutbox
	service recruitment.Service
}

func setupRecruitmentServiceTest(t *testing.T) *recruitmentServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeRecruitmentRepository{}
	outbox := &fakeOutbox{}
	svc := recruitment.NewService(gormDB, repo, outbox)

	return &recruitmentServiceDeps{sqlMock: sqlMock, repo: repo, outbox: outbox, service: svc}
}

func managerActor() identity.Principal {
	return identity.Principal{
		UserID:         "manager-1",
		OrganizationID: uuid.New().String(),
		Role:           identity.RoleManager,
	}
}

func seededCandidate(orgID string, status string) *recruitment.Candidate {
	return &recruitment.Candidate{
		ID:             uuid.New(),
		OrganizationID: uuid.MustParse(orgID),
		JobPostingID:   uuid.New(),
		Name:           "Dina Puspita",
		Email:          "dina@example.com",
		Status:         status,
		CurrentStage:   status,
	}
}

func TestRecruitmentService_CreateJobPostingForbiddenForEmployee(t *testing.T) {
	deps := setupRecruitmentServiceTest(t)

	actor := managerActor()
	actor.Role = identity.RoleEmployee

	_, err := deps.service.CreateJobPosting(context.Background(), actor, recruitment.CreateJobPostingRequest{
		Title:          "Backend Engineer",
		EmploymentType: "full_time",
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestRecruitmentService_CreateCandidateDuplicate(t *testing.T) {
	deps := setupRecruitmentServiceTest(t)
	actor := managerActor()

	posting := &recruitment.JobPosting{
		ID:             uuid.New(),
		OrganizationID: uuid.MustParse(actor.OrganizationID),
		Title:          "Backend Engineer",
	}
	deps.repo.findJobPostingByIDFn = func(ctx context.Context, organizationID, id string) (*recruitment.JobPosting, error) {
		return posting, nil
	}
	deps.repo.createCandidateFn = func(ctx context.Context, c *recruitment.Candidate) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_candidates_posting_email"}
	}

	_, err := deps.service.CreateCandidate(context.Background(), actor.OrganizationID, recruitment.CreateCandidateRequest{
		JobPostingID: posting.ID.String(),
		Name:         "Dina Puspita",
		Email:        "Dina@Example.com",
	})
	assert.ErrorIs(t, err, recruitmenterrors.ErrDuplicateCandidate)
}

func TestRecruitmentService_CreateCandidateUnknownPosting(t *testing.T) {
	deps := setupRecruitmentServiceTest(t)
	actor := managerActor()

	_, err := deps.service.CreateCandidate(context.Background(), actor.OrganizationID, recruitment.CreateCandidateRequest{
		JobPostingID: uuid.New().String(),
		Name:         "Dina Puspita",
		Email:        "dina@example.com",
	})
	assert.ErrorIs(t, err, recruitmenterrors.ErrJobPostingNotFound)
}

func TestRecruitmentService_CreateCandidateNormalizesEmail(t *testing.T) {
	deps := setupRecruitmentServiceTest(t)
	actor := managerActor()

	posting := &recruitment.JobPosting{
		ID:             uuid.New(),
		OrganizationID: uuid.MustParse(actor.OrganizationID),
	}
	deps.repo.findJobPostingByIDFn = func(ctx context.Context, organizationID, id string) (*recruitment.JobPosting, error) {
		return posting, nil
	}

	resp, err := deps.service.CreateCandidate(context.Background(), actor.OrganizationID, recruitment.CreateCandidateRequest{
		JobPostingID: posting.ID.String(),
		Name:         "Dina Puspita",
		Email:        "Dina@Example.COM",
	})
	assert.NoError(t, err)
	assert.Equal(t, "dina@example.com", resp.Email)
	assert.Equal(t, recruitment.CandidateStatusApplied, resp.Status)
}

func TestRecruitmentService_UpdateCandidateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("forbidden for employee", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)
		actor := managerActor()
		actor.Role = identity.RoleEmployee

		_, err := deps.service.UpdateCandidateStatus(ctx, actor, uuid.New().String(), recruitment.UpdateCandidateStatusRequest{Status: "screening"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("unknown status rejected before any transaction", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)
		actor := managerActor()

		_, err := deps.service.UpdateCandidateStatus(ctx, actor, uuid.New().String(), recruitment.UpdateCandidateStatusRequest{Status: "ghosted"})
		assert.ErrorIs(t, err, recruitmenterrors.ErrUnknownStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("terminal candidate cannot move", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)
		actor := managerActor()
		c := seededCandidate(actor.OrganizationID, recruitment.CandidateStatusHired)
		deps.repo.findCandidateByIDFn = func(ctx context.Context, organizationID, id string) (*recruitment.Candidate, error) {
			return c, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.UpdateCandidateStatus(ctx, actor, c.ID.String(), recruitment.UpdateCandidateStatusRequest{Status: "screening"})
		assert.ErrorIs(t, err, recruitmenterrors.ErrTerminalStatus)
		assert.Len(t, deps.outbox.created, 0)
	})

	t.Run("hired only from offer", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)
		actor := managerActor()
		c := seededCandidate(actor.OrganizationID, recruitment.CandidateStatusInterview)
		deps.repo.findCandidateByIDFn = func(ctx context.Context, organizationID, id string) (*recruitment.Candidate, error) {
			return c, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.UpdateCandidateStatus(ctx, actor, c.ID.String(), recruitment.UpdateCandidateStatusRequest{Status: "hired"})
		assert.ErrorIs(t, err, recruitmenterrors.ErrInvalidTransition)
	})

	t.Run("rejected reachable from any non-terminal", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)
		actor := managerActor()
		c := seededCandidate(actor.OrganizationID, recruitment.CandidateStatusApplied)
		deps.repo.findCandidateByIDFn = func(ctx context.Context, organizationID, id string) (*recruitment.Candidate, error) {
			return c, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.UpdateCandidateStatus(ctx, actor, c.ID.String(), recruitment.UpdateCandidateStatusRequest{Status: "rejected"})
		assert.NoError(t, err)
		assert.Equal(t, recruitment.CandidateStatusRejected, resp.Status)
		assert.Len(t, deps.outbox.created, 1)
	})

	t.Run("backward move between non-terminal stages accepted", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)
		actor := managerActor()
		c := seededCandidate(actor.OrganizationID, recruitment.CandidateStatusInterview)
		deps.repo.findCandidateByIDFn = func(ctx context.Context, organizationID, id string) (*recruitment.Candidate, error) {
			return c, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.UpdateCandidateStatus(ctx, actor, c.ID.String(), recruitment.UpdateCandidateStatusRequest{Status: "screening"})
		assert.NoError(t, err)
		assert.Equal(t, recruitment.CandidateStatusScreening, resp.Status)
		assert.Equal(t, recruitment.CandidateStatusScreening, resp.CurrentStage)
	})

	t.Run("custom stage label overrides the default", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)
		actor := managerActor()
		c := seededCandidate(actor.OrganizationID, recruitment.CandidateStatusScreening)
		deps.repo.findCandidateByIDFn = func(ctx context.Context, organizationID, id string) (*recruitment.Candidate, error) {
			return c, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.UpdateCandidateStatus(ctx, actor, c.ID.String(), recruitment.UpdateCandidateStatusRequest{
			Status:       "interview",
			CurrentStage: "technical interview",
		})
		assert.NoError(t, err)
		assert.Equal(t, recruitment.CandidateStatusInterview, resp.Status)
		assert.Equal(t, "technical interview", resp.CurrentStage)
	})

	t.Run("same status is idempotent and emits nothing", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)
		actor := managerActor()
		c := seededCandidate(actor.OrganizationID, recruitment.CandidateStatusScreening)
		deps.repo.findCandidateByIDFn = func(ctx context.Context, organizationID, id string) (*recruitment.Candidate, error) {
			return c, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		resp, err := deps.service.UpdateCandidateStatus(ctx, actor, c.ID.String(), recruitment.UpdateCandidateStatusRequest{Status: "screening"})
		assert.NoError(t, err)
		assert.Equal(t, recruitment.CandidateStatusScreening, resp.Status)
		assert.Len(t, deps.repo.updatedCandidates, 0)
		assert.Len(t, deps.outbox.created, 0)
	})

	t.Run("cross-tenant candidate is not found", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)
		actor := managerActor()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.UpdateCandidateStatus(ctx, actor, uuid.New().String(), recruitment.UpdateCandidateStatusRequest{Status: "screening"})
		assert.ErrorIs(t, err, recruitmenterrors.ErrCandidateNotFound)
	})

	t.Run("status change event carries from and to", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)
		actor := managerActor()
		c := seededCandidate(actor.OrganizationID, recruitment.CandidateStatusOffer)
		deps.repo.findCandidateByIDFn = func(ctx context.Context, organizationID, id string) (*recruitment.Candidate, error) {
			return c, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		_, err := deps.service.UpdateCandidateStatus(ctx, actor, c.ID.String(), recruitment.UpdateCandidateStatusRequest{Status: "hired"})
		assert.NoError(t, err)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, events.RecruitmentPipelineTopic, deps.outbox.created[0].Topic)

		var event events.CandidateStatusChangedEvent
		assert.NoError(t, json.Unmarshal(deps.outbox.created[0].Payload, &event))
		assert.Equal(t, recruitment.CandidateStatusOffer, event.FromStatus)
		assert.Equal(t, recruitment.CandidateStatusHired, event.ToStatus)
		assert.Equal(t, actor.UserID, event.ChangedBy)
	})
}
