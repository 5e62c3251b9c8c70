package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Leganyst/saas-store/internal/app"
	"github.com/Leganyst/saas-store/internal/config"
	"github.com/Leganyst/saas-store/internal/logger"
)

func main() {
	// 1. .env (если есть) и конфиги из env.
	if err := config.LoadEnvFile(); err != nil {
		log.Fatalf("load env: %v", err)
	}
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}

	// 2. Логгер.
	zlog, err := logger.NewLogger(appCfg.LogLevel, appCfg.LogFormat, appCfg.ServiceName)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. БД, кэш, сервисы.
	a, err := app.New(ctx, appCfg, dbCfg, zlog)
	if err != nil {
		zlog.Fatal("init app", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			zlog.Warn("close app", zap.Error(err))
		}
	}()

	// 4. Миграции моделей.
	if err := a.Migrate(); err != nil {
		zlog.Fatal("migrate", zap.Error(err))
	}

	// 5. HTTP + gRPC + напоминания до сигнала.
	zlog.Info("store core starting",
		zap.String("http_addr", appCfg.HTTPAddr),
		zap.String("grpc_addr", appCfg.GRPCAddr),
		zap.String("db_driver", dbCfg.Driver),
	)
	if err := a.Run(ctx); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
		return
	}
	zlog.Info("store core stopped")
}
