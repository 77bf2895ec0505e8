package recruitment

import (
	"context"

	"talenthub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=recruitment_repo.go -destination=mock/recruitment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateJobPosting(ctx context.Context, p *JobPosting) error
	FindJobPostings(ctx context.Context, organizationID string, f PostingListFilter, limit, offset int) ([]JobPosting, int64, error)
	FindJobPostingByID(ctx context.Context, organizationID, id string) (*JobPosting, error)
	UpdateJobPosting(ctx context.Context, p *JobPosting) error
	CreateCandidate(ctx context.Context, c *Candidate) error
	FindCandidates(ctx context.Context, organizationID string, f CandidateListFilter, limit, offset int) ([]Candidate, int64, error)
	FindCandidateByID(ctx context.Context, organizationID, id string) (*Candidate, error)
	UpdateCandidate(ctx context.Context, c *Candidate) error
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

func (r *repository) CreateJobPosting(ctx context.Context, p *JobPosting) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindJobPostings(
	ctx context.Context,
	organizationID string,
	f PostingListFilter,
	limit, offset int,
) ([]JobPosting, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&JobPosting{}).
		Scopes(tenant.Scope(organizationID))

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var postings []JobPosting
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&postings).Error
	return postings, total, err
}

func (r *repository) FindJobPostingByID(ctx context.Context, organizationID, id string) (*JobPosting, error) {
	var p JobPosting
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) UpdateJobPosting(ctx context.Context, p *JobPosting) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) CreateCandidate(ctx context.Context, c *Candidate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindCandidates(
	ctx context.Context,
	organizationID string,
	f CandidateListFilter,
	limit, offset int,
) ([]Candidate, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Candidate{}).
		Scopes(tenant.Scope(organizationID))

	if f.JobPostingID != "" {
		q = q.Where("job_posting_id = ?", f.JobPostingID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var candidates []Candidate
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&candidates).Error
	return candidates, total, err
}

func (r *repository) FindCandidateByID(ctx context.Context, organizationID, id string) (*Candidate, error) {
	var c Candidate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) UpdateCandidate(ctx context.Context, c *Candidate) error {
	return r.db.WithContext(ctx).Save(c).Error
}
