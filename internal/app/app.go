// Package app собирает зависимости сервиса из конфигурации.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/saas-store/internal/cache"
	"github.com/Leganyst/saas-store/internal/cascade"
	"github.com/Leganyst/saas-store/internal/config"
	"github.com/Leganyst/saas-store/internal/db"
	"github.com/Leganyst/saas-store/internal/grpcserver"
	"github.com/Leganyst/saas-store/internal/httpapi"
	"github.com/Leganyst/saas-store/internal/logger"
	"github.com/Leganyst/saas-store/internal/model"
	"github.com/Leganyst/saas-store/internal/notify"
	"github.com/Leganyst/saas-store/internal/repository"
	"github.com/Leganyst/saas-store/internal/service"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config *config.AppConfig
	DB     *gorm.DB
	Log    *zap.Logger

	Retouch   *service.RetouchService
	Holidays  *service.HolidayService
	Tenants   *service.TenantService
	Resolver  *service.TenantResolver
	Reminders *service.ReminderService

	redis *redis.Client
}

// New открывает БД и собирает сервисы. Сетевые серверы не запускаются.
func New(ctx context.Context, appCfg *config.AppConfig, dbCfg *config.DBConfig, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)

	gdb, err := db.NewGormDB(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	return Wire(ctx, appCfg, gdb, db.TxOptions(dbCfg.TxIsolation), log)
}

// Wire собирает сервисы поверх уже открытой БД.
func Wire(ctx context.Context, appCfg *config.AppConfig, gdb *gorm.DB, txOpts *sql.TxOptions, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)
	a := &App{Config: appCfg, DB: gdb, Log: log}

	if appCfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, every /api request will be rejected")
	}

	var kv cache.KVStore = cache.NoopStore{}
	if appCfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, appCfg.RedisAddr, appCfg.RedisPassword, appCfg.RedisDB)
		if err != nil {
			// без кэша сервис работает, просто чаще ходит в базу
			log.Warn("redis unavailable, tenant cache disabled", zap.String("addr", appCfg.RedisAddr), zap.Error(err))
		} else {
			a.redis = client
			kv = cache.NewRedisKVStore(client)
		}
	}

	tenants := repository.NewGormTenantRepository(gdb)
	customers := repository.NewGormCustomerRepository(gdb)
	holidays := repository.NewGormHolidayRepository(gdb)

	deleter, err := cascade.NewDeleter(gdb, cascade.DefaultPlan(), txOpts, log.Named("cascade"))
	if err != nil {
		return nil, fmt.Errorf("cascade plan: %w", err)
	}

	a.Resolver = service.NewTenantResolver(tenants, kv, appCfg.TenantCacheTTL, log.Named("resolver"))
	a.Retouch = service.NewRetouchService(
		tenants,
		customers,
		repository.NewGormVisitRepository(gdb),
		repository.NewGormServiceRepository(gdb),
		repository.NewGormRetouchConfigRepository(gdb, txOpts),
		holidays,
		log.Named("retouch"),
	)
	a.Holidays = service.NewHolidayService(holidays, log.Named("holidays"))
	a.Tenants = service.NewTenantService(
		tenants,
		deleter,
		a.Resolver,
		service.TenantPolicy{ReservedSlug: appCfg.ReservedTenantSlug},
		log.Named("tenants"),
	)
	a.Reminders = service.NewReminderService(tenants, customers, newNotifier(appCfg, log), appCfg.ReminderLeadDays, log.Named("reminders"))

	return a, nil
}

func newNotifier(cfg *config.AppConfig, log *zap.Logger) notify.Notifier {
	if cfg.TwilioEnabled() {
		return notify.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.TwilioWhatsAppFrom, log.Named("twilio"))
	}
	log.Info("twilio credentials not set, reminders are only logged")
	return notify.NewLogNotifier(log.Named("notify"))
}

func (a *App) Migrate() error {
	if err := model.AutoMigrate(a.DB); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Handler — HTTP-роутер приложения.
func (a *App) Handler() http.Handler {
	return httpapi.NewServer(
		a.Retouch,
		a.Holidays,
		a.Tenants,
		a.Resolver,
		httpapi.Config{JWTSecret: []byte(a.Config.JWTSecret), AdminEmails: a.Config.AdminEmails},
		a.Log.Named("http"),
	).Router()
}

// Run слушает адреса из конфигурации до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	httpLis, err := net.Listen("tcp", a.Config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.Config.HTTPAddr, err)
	}
	grpcLis, err := net.Listen("tcp", a.Config.GRPCAddr)
	if err != nil {
		_ = httpLis.Close()
		return fmt.Errorf("listen %s: %w", a.Config.GRPCAddr, err)
	}
	return a.Serve(ctx, httpLis, grpcLis)
}

// Serve обслуживает HTTP и gRPC на готовых listener'ах и запускает
// планировщик напоминаний. Возвращается после отмены ctx или падения сервера.
func (a *App) Serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	httpSrv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	grpcSrv := grpcserver.New(a.Log.Named("grpc"))

	if a.Config.ReminderEnabled {
		if err := a.Reminders.Start(a.Config.ReminderCron); err != nil {
			_ = httpLis.Close()
			_ = grpcLis.Close()
			return err
		}
		defer a.Reminders.Stop()
	}

	errCh := make(chan error, 2)
	go func() {
		a.Log.Info("http server listening", zap.String("addr", httpLis.Addr().String()))
		if err := httpSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()
	go func() {
		if err := grpcSrv.Serve(grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc serve: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	grpcSrv.Shutdown(shutdownCtx)
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("http shutdown: %w", err)
	}
	return runErr
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}
