package app

import (
	"context"

	"github.com/maikolguerrero/payroll-system-server/internal/middleware"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, cfg Config) error {
	log := zap.L().Named("app")
	ctx := context.Background()

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, 5)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	log.Info("database connection established")

	if cfg.AutoMigrate {
		if err := Migrate(ctx, gormDB); err != nil {
			return err
		}
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	log.Info("redis connection established")

	router.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(20, 40),
	)

	// 2. Register Modules & Routes
	return registerModules(ctx, router, cfg, sqlDB, gormDB, redisClient)
}
