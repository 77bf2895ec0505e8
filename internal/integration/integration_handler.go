package integration

import (
	"context"
	"net/http"

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
	l := zap.L().Named("integration.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("integration.handler")
	}
	return &Handler{gw: gw, service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	gateway.Run(c, h.gw, gateway.Options{
		Name:     "integrations.list",
		Category: ratelimit.CategoryDefault,
		Resource: "integration",
		Action:   "read",
	}, nil, func(ctx context.Context, p identity.Principal) ([]IntegrationResponse, error) {
		return h.service.List(ctx, p.OrganizationID)
	})
}

func (h *Handler) Connect(c *gin.Context) {
	var req ConnectIntegrationRequest

	gateway.Run(c, h.gw, gateway.Options{
		Name:          "integrations.connect",
		Category:      ratelimit.CategoryCreate,
		Resource:      "integration",
		Action:        "connect",
		SuccessStatus: http.StatusCreated,
	}, &req, func(ctx context.Context, p identity.Principal) (IntegrationResponse, error) {
		return h.service.Connect(ctx, p, req)
	})
}

func (h *Handler) Disconnect(c *gin.Context) {
	provider := c.Param("provider")

	gateway.Run(c, h.gw, gateway.Options{
		Name:     "integrations.disconnect",
		Category: ratelimit.CategoryDefault,
		Resource: "integration",
		Action:   "disconnect",
	}, nil, func(ctx context.Context, p identity.Principal) (IntegrationResponse, error) {
		return h.service.Disconnect(ctx, p, provider)
	})
}
