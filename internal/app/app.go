package app

import (
	"context"

	"go-jobmarket/internal/config"
	"go-jobmarket/internal/mou"
	"go-jobmarket/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and mounts every module on router.
// The returned cleanup closes the connections it opened.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app")

	db, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	var store mou.DocumentStore
	if cfg.MinIO.Endpoint != "" {
		client, err := connection.ConnectMinIO(ctx, cfg.MinIO)
		if err != nil {
			_ = rdb.Close()
			_ = sqlDB.Close()
			return nil, err
		}
		store = mou.NewMinioStore(client, cfg.MinIO.Bucket)
	} else {
		logger.Warn("MINIO_ENDPOINT not set, MOU document upload disabled")
	}

	cleanup := func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}

	if err := registerModules(router, cfg, db, rdb, store); err != nil {
		cleanup()
		return nil, err
	}
	return cleanup, nil
}
