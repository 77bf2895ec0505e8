package settings

import (
	"context"

	"talenthub/internal/gateway"
	"talenthub/internal/identity"
	"talenthub/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	gw      *gateway.Gateway
	service Service
	logger  *zap.Logger
}

func NewHandler(gw *gateway.Gateway, service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("settings.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.handler")
	}
	return &Handler{gw: gw, service: service, logger: l}
}

func (h *Handler) GetOrganizationSettings(c *gin.Context) {
	gateway.Run(c, h.gw, gateway.Options{
		Name:     "settings.organization.get",
		Category: ratelimit.CategoryDefault,
		Resource: "settings",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) (OrganizationSettingsResponse, error) {
		return h.service.GetOrganizationSettings(ctx, p.OrganizationID)
	})
}

func (h *Handler) UpdateOrganizationSettings(c *gin.Context) {
	var req UpdateOrganizationSettingsRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "settings.organization.update",
		Category: ratelimit.CategoryDefault,
		Resource: "settings",
		Action:   "update_org",
	}, &req, func(ctx context.Context, p identity.Principal) (OrganizationSettingsResponse, error) {
		return h.service.UpdateOrganizationSettings(ctx, p, req)
	})
}

func (h *Handler) GetUserSettings(c *gin.Context) {
	gateway.Run(c, h.gw, gateway.Options{
		Name:     "settings.user.get",
		Category: ratelimit.CategoryDefault,
		Resource: "settings",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) (UserSettingsResponse, error) {
		return h.service.GetUserSettings(ctx, p.OrganizationID, p.UserID)
	})
}

func (h *Handler) UpdateUserSettings(c *gin.Context) {
	var req UpdateUserSettingsRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "settings.user.update",
		Category: ratelimit.CategoryDefault,
		Resource: "settings",
		Action:   "update_self",
	}, &req, func(ctx context.Context, p identity.Principal) (UserSettingsResponse, error) {
		return h.service.UpdateUserSettings(ctx, p.OrganizationID, p.UserID, req)
	})
}
