package app

import (
	"talenthub/internal/gateway"
	"talenthub/internal/goal"
	"talenthub/internal/identity"
	"talenthub/internal/integration"
	"talenthub/internal/messaging/kafka"
	"talenthub/internal/notification"
	"talenthub/internal/performance"
	"talenthub/internal/ratelimit"
	"talenthub/internal/rbac"
	"talenthub/internal/recruitment"
	"talenthub/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	identityRepo := identity.NewRepository(gormDB)
	goalRepo := goal.NewRepository(gormDB)
	recruitmentRepo := recruitment.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	performanceRepo := performance.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	integrationRepo := integration.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Gateway Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}
	resolver := identity.NewResolver(identityRepo)

	var limiter ratelimit.Limiter
	if rdb != nil {
		limiter = ratelimit.NewRedisStore(rdb, ratelimit.DefaultConfig())
	} else {
		limiter = ratelimit.NewMemoryStore(ratelimit.DefaultConfig())
	}

	gw := gateway.New(resolver, limiter, rbacService)

	// --- Services ---
	goalService := goal.NewService(gormDB, goalRepo, outboxRepo)
	recruitmentService := recruitment.NewService(gormDB, recruitmentRepo, outboxRepo)
	notificationService := notification.NewService(notificationRepo)
	performanceService := performance.NewService(performanceRepo)
	settingsService := settings.NewService(settingsRepo, rdb)
	integrationService := integration.NewService(integrationRepo)

	// --- Handlers ---
	goalHandler := goal.NewHandler(gw, goalService)
	recruitmentHandler := recruitment.NewHandler(gw, recruitmentService)
	notificationHandler := notification.NewHandler(gw, notificationService)
	performanceHandler := performance.NewHandler(gw, performanceService)
	settingsHandler := settings.NewHandler(gw, settingsService)
	integrationHandler := integration.NewHandler(gw, integrationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		goal.RegisterRoutes(api, goalHandler)
		recruitment.RegisterRoutes(api, recruitmentHandler)
		notification.RegisterRoutes(api, notificationHandler)
		performance.RegisterRoutes(api, performanceHandler)
		settings.RegisterRoutes(api, settingsHandler)
		integration.RegisterRoutes(api, integrationHandler)
	}

	return nil
}
