package goal

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
	l := zap.L().Named("goal.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("goal.handler")
	}
	return &Handler{gw: gw, service: service, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateGoalRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:          "goals.create",
		Category:      ratelimit.CategoryCreate,
		Resource:      "goal",
		Action:        "create",
		SuccessStatus: http.StatusCreated,
	}, &req, func(ctx context.Context, p identity.Principal) (GoalResponse, error) {
		return h.service.Create(ctx, p.OrganizationID, p.UserID, req)
	})
}

func (h *Handler) List(c *gin.Context) {
	f := ListFilter{
		Status:  c.Query("status"),
		OwnerID: c.Query("owner_id"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "goals.list",
		Category: ratelimit.CategoryDefault,
		Resource: "goal",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) (response.Paginated[GoalResponse], error) {
		return h.service.List(ctx, p.OrganizationID, f)
	})
}

func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "goals.get",
		Category: ratelimit.CategoryDefault,
		Resource: "goal",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) (GoalResponse, error) {
		return h.service.GetByID(ctx, p.OrganizationID, id)
	})
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	var req UpdateGoalRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "goals.update",
		Category: ratelimit.CategoryDefault,
		Resource: "goal",
		Action:   "update",
	}, &req, func(ctx context.Context, p identity.Principal) (GoalResponse, error) {
		return h.service.Update(ctx, p.OrganizationID, id, req)
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "goals.delete",
		Category: ratelimit.CategoryDefault,
		Resource: "goal",
		Action:   "delete",
	}, nil, func(ctx context.Context, p identity.Principal) (DeleteGoalResponse, error) {
		return h.service.Delete(ctx, p.OrganizationID, id)
	})
}

func (h *Handler) CreateKeyResult(c *gin.Context) {
	goalID := c.Param("id")
	var req CreateKeyResultRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:          "goals.key_results.create",
		Category:      ratelimit.CategoryCreate,
		Resource:      "goal",
		Action:        "update",
		SuccessStatus: http.StatusCreated,
	}, &req, func(ctx context.Context, p identity.Principal) (KeyResultResponse, error) {
		return h.service.CreateKeyResult(ctx, p.OrganizationID, goalID, req)
	})
}

func (h *Handler) UpdateProgress(c *gin.Context) {
	keyResultID := c.Param("krID")
	var req UpdateProgressRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "goals.key_results.progress",
		Category: ratelimit.CategoryDefault,
		Resource: "goal",
		Action:   "update",
	}, &req, func(ctx context.Context, p identity.Principal) (KeyResultResponse, error) {
		return h.service.UpdateKeyResultProgress(ctx, p.OrganizationID, p.UserID, keyResultID, req)
	})
}
