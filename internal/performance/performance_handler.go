package performance

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
	l := zap.L().Named("performance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("performance.handler")
	}
	return &Handler{gw: gw, service: service, logger: l}
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:          "performance.reviews.create",
		Category:      ratelimit.CategoryCreate,
		Resource:      "performance_review",
		Action:        "create",
		SuccessStatus: http.StatusCreated,
	}, &req, func(ctx context.Context, p identity.Principal) (ReviewResponse, error) {
		return h.service.CreateReview(ctx, p, req)
	})
}

func (h *Handler) ListReviews(c *gin.Context) {
	f := ReviewListFilter{
		RevieweeID: c.Query("reviewee_id"),
		Status:     c.Query("status"),
		Period:     c.Query("period"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "performance.reviews.list",
		Category: ratelimit.CategoryDefault,
		Resource: "performance_review",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) (response.Paginated[ReviewResponse], error) {
		return h.service.ListReviews(ctx, p.OrganizationID, f)
	})
}

func (h *Handler) GetReviewByID(c *gin.Context) {
	id := c.Param("id")

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "performance.reviews.get",
		Category: ratelimit.CategoryDefault,
		Resource: "performance_review",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) (ReviewResponse, error) {
		return h.service.GetReviewByID(ctx, p.OrganizationID, id)
	})
}

func (h *Handler) UpdateReview(c *gin.Context) {
	id := c.Param("id")
	var req UpdateReviewRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "performance.reviews.update",
		Category: ratelimit.CategoryDefault,
		Resource: "performance_review",
		Action:   "update",
	}, &req, func(ctx context.Context, p identity.Principal) (ReviewResponse, error) {
		return h.service.UpdateReview(ctx, p, id, req)
	})
}

func (h *Handler) CreateFeedback(c *gin.Context) {
	var req CreateFeedbackRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:          "performance.feedback.create",
		Category:      ratelimit.CategoryCreate,
		Resource:      "feedback",
		Action:        "create",
		SuccessStatus: http.StatusCreated,
	}, &req, func(ctx context.Context, p identity.Principal) (FeedbackResponse, error) {
		return h.service.CreateFeedback(ctx, p, req)
	})
}

func (h *Handler) DeleteFeedback(c *gin.Context) {
	id := c.Param("id")

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "performance.feedback.delete",
		Category: ratelimit.CategoryDefault,
		Resource: "feedback",
		Action:   "delete",
	}, nil, func(ctx context.Context, p identity.Principal) (DeleteFeedbackResponse, error) {
		return h.service.DeleteFeedback(ctx, p, id)
	})
}
