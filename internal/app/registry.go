package app

import (
	"net/http"

	"go-jobmarket/internal/activitylog"
	"go-jobmarket/internal/ad"
	"go-jobmarket/internal/bulk"
	"go-jobmarket/internal/config"
	"go-jobmarket/internal/employer"
	"go-jobmarket/internal/messaging/kafka"
	"go-jobmarket/internal/middleware"
	"go-jobmarket/internal/mou"
	"go-jobmarket/internal/obs"
	"go-jobmarket/internal/rbac"
	"go-jobmarket/internal/rbac/infra"
	"go-jobmarket/internal/shared/counter"
	"go-jobmarket/internal/stats"
	"go-jobmarket/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	store mou.DocumentStore,
) error {
	logger := zap.L()

	// --- Repositories ---
	activityRepo := activitylog.NewRepository(db)
	adRepo := ad.NewRepository(db)
	counterRepo := counter.NewRepository(db)
	employerRepo := employer.NewRepository(db)
	mouRepo := mou.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	statsRepo := stats.NewRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBAC.ModelPath)
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, nil, logger)
	if err != nil {
		return err
	}

	// --- Workflow ---
	journal := workflow.NewJournal(activitylog.NewRecorder(activityRepo, logger), outboxRepo, logger)
	coordinator := bulk.NewCoordinator(cfg.Workflow.BulkConcurrency, cfg.Workflow.BulkMaxItems, logger)
	mouChecker := mou.NewChecker(mouRepo)

	// --- Services ---
	activityService := activitylog.NewService(activityRepo, logger)
	employerService := employer.NewService(db, employerRepo, journal, coordinator, logger)
	mouService := mou.NewService(db, mouRepo, counterRepo, journal, employerRepo, store, logger)
	adService := ad.NewService(db, adRepo, employerRepo, mouChecker, counterRepo, journal, coordinator, logger)
	statsService := stats.NewService(statsRepo, mouChecker, rdb, cfg.Workflow.StatsCacheTTL, logger)

	// --- Handlers ---
	activityHandler := activitylog.NewHandler(activityService, logger)
	adHandler := ad.NewHandler(adService, logger)
	employerHandler := employer.NewHandler(employerService, logger)
	mouHandler := mou.NewHandler(mouService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	statsHandler := stats.NewHandler(statsService, logger)

	// --- Ops ---
	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err == nil {
			err = rdb.Ping(c.Request.Context()).Err()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(obs.Handler()))

	// --- Routes Registration ---
	bulkGuard := middleware.Idempotency(rdb, cfg.Workflow.IdempotencyTTL, logger)

	api := router.Group("/api/v1")
	api.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.ContextLogger(logger),
		middleware.AccessLog(logger),
	)
	{
		activitylog.RegisterRoutes(api, activityHandler, rbacService)
		ad.RegisterRoutes(api, adHandler, rbacService, bulkGuard)
		employer.RegisterRoutes(api, employerHandler, rbacService, bulkGuard)
		mou.RegisterRoutes(api, mouHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
		stats.RegisterRoutes(api, statsHandler, rbacService)
	}

	return nil
}
