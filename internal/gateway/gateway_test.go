package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talenthub/internal/gateway"
	"talenthub/internal/identity"
	identityerrors "talenthub/internal/identity/errors"
	"talenthub/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	resolveFn func(ctx context.Context, userID string) (identity.Principal, error)
	calls     int
}

func (f *fakeResolver) Resolve(ctx context.Context, userID string) (identity.Principal, error) {
	f.calls++
	if f.resolveFn != nil {
		return f.resolveFn(ctx, userID)
	}
	if userID == "" {
		return identity.Principal{}, identityerrors.ErrUnauthenticated
	}
	return identity.Principal{
		UserID:         userID,
		OrganizationID: "0d4cf91e-4f4b-43a4-b11c-3f9f33a8d001",
		Role:           identity.RoleEmployee,
	}, nil
}

type fakeLimiter struct {
	checkFn func(ctx context.Context, principalID string, cat ratelimit.Category) (ratelimit.Decision, error)
	calls   int
}

func (f *fakeLimiter) Check(ctx context.Context, principalID string, cat ratelimit.Category) (ratelimit.Decision, error) {
	f.calls++
	if f.checkFn != nil {
		return f.checkFn(ctx, principalID, cat)
	}
	return ratelimit.Decision{Allowed: true, Remaining: 10}, nil
}

type fakeRBAC struct {
	canFn func(role, resource, action string) (bool, error)
}

func (f *fakeRBAC) Can(role, resource, action string) (bool, error) {
	if f.canFn != nil {
		return f.canFn(role, resource, action)
	}
	return true, nil
}

type createInput struct {
	Title       string  `json:"title" binding:"required,max=200"`
	TargetValue float64 `json:"target_value" binding:"required,gt=0"`
}

type createOutput struct {
	ID string `json:"id"`
}

type gatewayDeps struct {
	resolver     *fakeResolver
	limiter      *fakeLimiter
	rbac         *fakeRBAC
	gw           *gateway.Gateway
	handlerCalls int
}

func setupGatewayTest() *gatewayDeps {
	deps := &gatewayDeps{
		resolver: &fakeResolver{},
		limiter:  &fakeLimiter{},
		rbac:     &fakeRBAC{},
	}
	deps.gw = gateway.New(deps.resolver, deps.limiter, deps.rbac)
	return deps
}

func performRequest(deps *gatewayDeps, userID, body string, opts gateway.Options) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	router.POST("/actions", func(c *gin.Context) {
		var req createInput
		gateway.Run(c, deps.gw, opts, &req, func(ctx context.Context, p identity.Principal) (createOutput, error) {
			deps.handlerCalls++
			return createOutput{ID: "created-id"}, nil
		})
	})

	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/actions", strings.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, httpReq)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestGateway_UnauthenticatedNeverTouchesLimiter(t *testing.T) {
	deps := setupGatewayTest()

	w := performRequest(deps, "", `{"title":"Q3 revenue","target_value":10}`, gateway.Options{
		Name:     "test.create",
		Category: ratelimit.CategoryCreate,
	})

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "UNAUTHORIZED", envelope["code"])
	assert.Equal(t, 0, deps.limiter.calls)
	assert.Equal(t, 0, deps.handlerCalls)
}

func TestGateway_Throttled(t *testing.T) {
	deps := setupGatewayTest()
	deps.limiter.checkFn = func(ctx context.Context, principalID string, cat ratelimit.Category) (ratelimit.Decision, error) {
		return ratelimit.Decision{Allowed: false, RetryAfter: 37 * time.Second}, nil
	}

	w := performRequest(deps, "user-1", `{"title":"Q3 revenue","target_value":10}`, gateway.Options{
		Name:     "test.create",
		Category: ratelimit.CategoryCreate,
	})

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", envelope["code"])
	assert.Contains(t, envelope["error"], "37 seconds")

	details, ok := envelope["details"].(map[string]any)
	assert.True(t, ok)
	assert.EqualValues(t, 37, details["retry_after_seconds"])
	assert.Equal(t, 0, deps.handlerCalls)
}

func TestGateway_LimiterFailureFailsOpen(t *testing.T) {
	deps := setupGatewayTest()
	deps.limiter.checkFn = func(ctx context.Context, principalID string, cat ratelimit.Category) (ratelimit.Decision, error) {
		return ratelimit.Decision{}, errors.New("redis: connection refused")
	}

	w := performRequest(deps, "user-1", `{"title":"Q3 revenue","target_value":10}`, gateway.Options{
		Name: "test.create",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, deps.handlerCalls)
}

func TestGateway_MalformedBody(t *testing.T) {
	deps := setupGatewayTest()

	w := performRequest(deps, "user-1", `{"title": "broken`, gateway.Options{
		Name: "test.create",
	})

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", envelope["code"])
	assert.Equal(t, 0, deps.handlerCalls)
}

func TestGateway_ValidationReportsAllFields(t *testing.T) {
	deps := setupGatewayTest()

	// title kosong DAN target_value nol: dua pelanggaran, dua-duanya harus muncul.
	w := performRequest(deps, "user-1", `{"title":"","target_value":0}`, gateway.Options{
		Name: "test.create",
	})

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", envelope["code"])

	details, ok := envelope["details"].([]any)
	assert.True(t, ok)
	assert.Len(t, details, 2)

	fields := make([]string, 0, len(details))
	for _, d := range details {
		fe := d.(map[string]any)
		fields = append(fields, fe["field"].(string))
	}
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "target_value")
	assert.Equal(t, 0, deps.handlerCalls)
}

func TestGateway_ValidationStillCountsAgainstLimiter(t *testing.T) {
	deps := setupGatewayTest()

	w := performRequest(deps, "user-1", `{"title":"","target_value":0}`, gateway.Options{
		Name: "test.create",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, deps.limiter.calls)
}

func TestGateway_ForbiddenRole(t *testing.T) {
	deps := setupGatewayTest()
	deps.rbac.canFn = func(role, resource, action string) (bool, error) {
		return false, nil
	}

	w := performRequest(deps, "user-1", `{"title":"Q3 revenue","target_value":10}`, gateway.Options{
		Name:     "test.create",
		Resource: "job_posting",
		Action:   "create",
	})

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", envelope["code"])
	assert.Equal(t, 0, deps.handlerCalls)
}

func TestGateway_UnknownErrorBecomesInternal(t *testing.T) {
	deps := setupGatewayTest()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	})
	router.POST("/actions", func(c *gin.Context) {
		gateway.Run(c, deps.gw, gateway.Options{Name: "test.get"}, nil,
			func(ctx context.Context, p identity.Principal) (createOutput, error) {
				return createOutput{}, errors.New("pq: out of shared memory")
			})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/actions", nil))

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL", envelope["code"])
	// Pesan driver tidak boleh bocor ke client.
	assert.NotContains(t, envelope["error"], "shared memory")
}

func TestGateway_SuccessEnvelope(t *testing.T) {
	deps := setupGatewayTest()

	w := performRequest(deps, "user-1", `{"title":"Q3 revenue","target_value":10}`, gateway.Options{
		Name:          "test.create",
		SuccessStatus: http.StatusCreated,
	})

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, envelope["success"])

	data, ok := envelope["data"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "created-id", data["id"])
	assert.Nil(t, envelope["code"])
	assert.Equal(t, 1, deps.handlerCalls)
}

func TestGateway_PrincipalReachesHandler(t *testing.T) {
	deps := setupGatewayTest()

	var got identity.Principal
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-42")
		c.Next()
	})
	router.POST("/actions", func(c *gin.Context) {
		gateway.Run(c, deps.gw, gateway.Options{Name: "test.get"}, nil,
			func(ctx context.Context, p identity.Principal) (createOutput, error) {
				got = p
				return createOutput{ID: "x"}, nil
			})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/actions", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", got.UserID)
	assert.NotEmpty(t, got.OrganizationID)
}
