package main

import (
	"context"
	"os/signal"
	"syscall"

	"go-jobmarket/internal/app"
	"go-jobmarket/internal/bootstrap"
	"go-jobmarket/internal/config"
	"go-jobmarket/internal/middleware"
	"go-jobmarket/internal/obs"
	"go-jobmarket/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	obs.Init()
	obs.InitBuildInfo("api", version)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Metrics())

	// build dependency + routes
	cleanup, err := app.BuildApp(ctx, r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	if err := bootstrap.StartHTTPServer(ctx, r, cfg.Server, bootstrap.NewZapAuditLogger(logger)); err != nil {
		logger.Error("http server stopped with error", zap.Error(err))
	}
}
