package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"talenthub/internal/identity"
	"talenthub/internal/ratelimit"
	"talenthub/internal/rbac"
	"talenthub/internal/shared/apperror"
	"talenthub/internal/shared/contextutil"
	"talenthub/internal/shared/validation"

	"go.uber.org/zap"
)

// ActionResult is the uniform envelope every operation returns. Callers
// branch only on Success; Code is the stable machine-readable error kind.
type ActionResult[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`

	status int
}

// HTTPStatus is the status code the envelope should be written with.
func (r ActionResult[T]) HTTPStatus() int {
	return r.status
}

// Options configures one operation going through the pipeline.
type Options struct {
	// Name identifies the operation in logs.
	Name string
	// Category selects the rate-limit ceiling (create is stricter).
	Category ratelimit.Category
	// Resource/Action, when set, are checked against the caller's role
	// before the handler runs. Service-level gates still apply on top.
	Resource string
	Action   string
	// SuccessStatus defaults to 200.
	SuccessStatus int
}

// Handler delegates into the domain service layer with the resolved
// principal. Tenant id selalu diambil dari principal, tidak pernah dari
// input client.
type Handler[T any] func(ctx context.Context, principal identity.Principal) (T, error)

// Gateway funnels every operation through a fixed order:
// resolve identity/tenant -> rate limit -> decode+validate -> role gate ->
// handler -> error translation. The order is deliberate: unauthenticated
// traffic never consumes a principal's rate budget, and abusive traffic is
// rejected before any CPU is spent parsing its payload.
type Gateway struct {
	resolver identity.Resolver
	limiter  ratelimit.Limiter
	rbac     rbac.Service
	logger   *zap.Logger
}

func New(resolver identity.Resolver, limiter ratelimit.Limiter, rbacSvc rbac.Service, logger ...*zap.Logger) *Gateway {
	l := zap.L().Named("gateway")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("gateway")
	}
	return &Gateway{resolver: resolver, limiter: limiter, rbac: rbacSvc, logger: l}
}

// Execute runs one operation through the pipeline and never lets a raw
// fault escape: whatever goes wrong, the result carries one of the fixed
// error codes.
func Execute[T any](
	ctx context.Context,
	g *Gateway,
	opts Options,
	userID string,
	rawInput json.RawMessage,
	dest any,
	handler Handler[T],
) ActionResult[T] {
	// 1. Identity & tenant. Gagal di sini berarti limiter dan domain
	//    service tidak pernah tersentuh.
	principal, err := g.resolver.Resolve(ctx, userID)
	if err != nil {
		return fail[T](g, opts, err)
	}

	// 2. Rate limit per (principal, category). Counter naik sekarang juga;
	//    request yang gagal validasi tetap terhitung.
	decision, err := g.limiter.Check(ctx, principal.UserID, opts.Category)
	if err != nil {
		// Store limiter rusak bukan alasan menolak seluruh traffic: fail
		// open, tapi tercatat.
		g.logger.Warn("rate limiter unavailable, failing open",
			zap.String("action", opts.Name),
			zap.Error(err),
		)
	} else if !decision.Allowed {
		retry := int(decision.RetryAfter.Seconds())
		if retry < 1 {
			retry = 1
		}
		throttled := apperror.New(
			apperror.CodeRateLimited,
			fmt.Sprintf("Rate limit exceeded. Please try again in %d seconds.", retry),
			http.StatusTooManyRequests,
		).WithDetails(map[string]int{"retry_after_seconds": retry})
		return fail[T](g, opts, throttled)
	}

	// 3. Decode + validate. Semua field yang melanggar dilaporkan
	//    sekaligus (fail-complete), bukan cuma yang pertama.
	if dest != nil {
		if len(rawInput) > 0 {
			if err := json.Unmarshal(rawInput, dest); err != nil {
				malformed := apperror.ErrValidation.WithDetails(
					[]validation.FieldError{{Field: "body", Reason: "Body must be valid JSON"}},
				)
				return fail[T](g, opts, malformed)
			}
		}
		if err := validation.Struct(dest); err != nil {
			return fail[T](g, opts, err)
		}
	}

	// 4. Role gate (opsional; service layer tetap menjaga gate wajibnya).
	if opts.Resource != "" {
		allowed, err := g.rbac.Can(principal.Role, opts.Resource, opts.Action)
		if err != nil {
			return fail[T](g, opts, err)
		}
		if !allowed {
			return fail[T](g, opts, apperror.ErrForbidden)
		}
	}

	// 5. Domain handler.
	ctx = contextutil.WithUserID(ctx, principal.UserID)
	ctx = contextutil.WithOrganizationID(ctx, principal.OrganizationID)
	out, err := handler(ctx, principal)
	if err != nil {
		return fail[T](g, opts, err)
	}

	status := opts.SuccessStatus
	if status == 0 {
		status = http.StatusOK
	}
	return ActionResult[T]{Success: true, Data: &out, status: status}
}

func fail[T any](g *Gateway, opts Options, err error) ActionResult[T] {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		g.logger.Error("action failed",
			zap.String("action", opts.Name),
			zap.String("code", httpErr.Code),
			zap.Error(err),
		)
	} else {
		g.logger.Warn("action rejected",
			zap.String("action", opts.Name),
			zap.String("code", httpErr.Code),
			zap.String("message", httpErr.Message),
		)
	}
	return ActionResult[T]{
		Success: false,
		Error:   httpErr.Message,
		Code:    httpErr.Code,
		Details: httpErr.Details,
		status:  httpErr.Status,
	}
}
