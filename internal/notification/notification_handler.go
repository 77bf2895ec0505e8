package notification

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
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{gw: gw, service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	f := ListFilter{
		UnreadOnly: c.Query("unread") == "true",
		Type:       c.Query("type"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "notifications.list",
		Category: ratelimit.CategoryDefault,
		Resource: "notification",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) (response.Paginated[NotificationResponse], error) {
		return h.service.List(ctx, p.OrganizationID, p.UserID, f)
	})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	gateway.Run(c, h.gw, gateway.Options{
		Name:     "notifications.unread_count",
		Category: ratelimit.CategoryDefault,
		Resource: "notification",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) (UnreadCountResponse, error) {
		return h.service.UnreadCount(ctx, p.OrganizationID, p.UserID)
	})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id := c.Param("id")

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "notifications.mark_read",
		Category: ratelimit.CategoryDefault,
		Resource: "notification",
		Action:   "update",
	}, nil, func(ctx context.Context, p identity.Principal) (NotificationResponse, error) {
		return h.service.MarkRead(ctx, p.OrganizationID, p.UserID, id)
	})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	gateway.Run(c, h.gw, gateway.Options{
		Name:          "notifications.mark_all_read",
		Category:      ratelimit.CategoryBulk,
		Resource:      "notification",
		Action:        "update",
		SuccessStatus: http.StatusOK,
	}, nil, func(ctx context.Context, p identity.Principal) (MarkAllReadResponse, error) {
		return h.service.MarkAllRead(ctx, p.OrganizationID, p.UserID)
	})
}
