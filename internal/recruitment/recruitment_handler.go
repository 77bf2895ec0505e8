package recruitment

import (
	"context"
	"net/http"
	"strconv"

	"talenthub/internal/gateway"
	"talenthub/internal/identity"
	"talenthub/internal/ratelimit"
	"talenthub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	gw      *gateway.Gateway
	service Service
	logger  *zap.Logger
}

func NewHandler(gw *gateway.Gateway, service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("recruitment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.handler")
	}
	return &Handler{gw: gw, service: service, logger: l}
}

func (h *Handler) CreateJobPosting(c *gin.Context) {
	var req CreateJobPostingRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:          "recruitment.job_postings.create",
		Category:      ratelimit.CategoryCreate,
		Resource:      "job_posting",
		Action:        "create",
		SuccessStatus: http.StatusCreated,
	}, &req, func(ctx context.Context, p identity.Principal) (JobPostingResponse, error) {
		return h.service.CreateJobPosting(ctx, p, req)
	})
}

func (h *Handler) UpdateJobPosting(c *gin.Context) {
	id := c.Param("id")
	var req UpdateJobPostingRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "recruitment.job_postings.update",
		Category: ratelimit.CategoryDefault,
		Resource: "job_posting",
		Action:   "update",
	}, &req, func(ctx context.Context, p identity.Principal) (JobPostingResponse, error) {
		return h.service.UpdateJobPosting(ctx, p, id, req)
	})
}

func (h *Handler) ListJobPostings(c *gin.Context) {
	f := PostingListFilter{Status: c.Query("status")}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "recruitment.job_postings.list",
		Category: ratelimit.CategoryDefault,
		Resource: "job_posting",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) (response.Paginated[JobPostingResponse], error) {
		return h.service.ListJobPostings(ctx, p.OrganizationID, f)
	})
}

func (h *Handler) CreateCandidate(c *gin.Context) {
	var req CreateCandidateRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:          "recruitment.candidates.create",
		Category:      ratelimit.CategoryCreate,
		Resource:      "candidate",
		Action:        "create",
		SuccessStatus: http.StatusCreated,
	}, &req, func(ctx context.Context, p identity.Principal) (CandidateResponse, error) {
		return h.service.CreateCandidate(ctx, p.OrganizationID, req)
	})
}

func (h *Handler) ListCandidates(c *gin.Context) {
	f := CandidateListFilter{
		JobPostingID: c.Query("job_posting_id"),
		Status:       c.Query("status"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "recruitment.candidates.list",
		Category: ratelimit.CategoryDefault,
		Resource: "candidate",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) (response.Paginated[CandidateResponse], error) {
		return h.service.ListCandidates(ctx, p.OrganizationID, f)
	})
}

func (h *Handler) UpdateCandidateStatus(c *gin.Context) {
	id := c.Param("id")
	var req UpdateCandidateStatusRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "recruitment.candidates.update_status",
		Category: ratelimit.CategoryDefault,
		Resource: "candidate",
		Action:   "update",
	}, &req, func(ctx context.Context, p identity.Principal) (CandidateResponse, error) {
		return h.service.UpdateCandidateStatus(ctx, p, id, req)
	})
}
