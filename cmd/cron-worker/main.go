package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ostaapp/osta-backend/internal/accounts"
	"github.com/ostaapp/osta-backend/internal/bookings"
	"github.com/ostaapp/osta-backend/internal/cron"
	"github.com/ostaapp/osta-backend/internal/notifications"
	"github.com/ostaapp/osta-backend/internal/settings"
	"github.com/ostaapp/osta-backend/internal/verification"
	"github.com/ostaapp/osta-backend/internal/wallet"
	"github.com/ostaapp/osta-backend/pkg/config"
	"github.com/ostaapp/osta-backend/pkg/db"
	"github.com/ostaapp/osta-backend/pkg/logger"
	"github.com/ostaapp/osta-backend/pkg/metrics"
	"github.com/ostaapp/osta-backend/pkg/migrate"
	"github.com/ostaapp/osta-backend/pkg/outbox"
	"github.com/ostaapp/osta-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	bookingsSvc, err := buildBookingsService(cfg, logg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build booking engine", err)
		os.Exit(1)
	}

	sweepJob, err := cron.NewArrivalTimeoutJob(bookingsSvc, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sweep job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker:"+cfg.App.Env), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(sweepJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func buildBookingsService(cfg *config.Config, logg *logger.Logger, dbClient *db.Client) (bookings.Service, error) {
	gormDB := dbClient.DB()

	escrowID, err := uuid.Parse(cfg.Platform.EscrowAccountID)
	if err != nil {
		return nil, err
	}
	revenueID, err := uuid.Parse(cfg.Platform.RevenueAccountID)
	if err != nil {
		return nil, err
	}

	walletSvc, err := wallet.NewService(wallet.NewRepository(gormDB), dbClient)
	if err != nil {
		return nil, err
	}
	settingsSvc, err := settings.NewService(settings.NewRepository(gormDB), logg, cfg.Settlement.DefaultCommissionPercent)
	if err != nil {
		return nil, err
	}
	accountsSvc, err := accounts.NewService(accounts.NewRepository(gormDB))
	if err != nil {
		return nil, err
	}
	notificationsSvc, err := notifications.NewService(notifications.NewRepository(gormDB))
	if err != nil {
		return nil, err
	}
	verificationSvc, err := verification.NewService(verification.Options{
		Repo:     verification.NewRepository(gormDB),
		Tx:       dbClient,
		Notifier: notificationsSvc,
		Logger:   logg,
		Validity: cfg.Settlement.VerificationValidity,
	})
	if err != nil {
		return nil, err
	}

	return bookings.NewService(bookings.Deps{
		Repo:         bookings.NewRepository(gormDB),
		Tx:           dbClient,
		Wallet:       walletSvc,
		Settings:     settingsSvc,
		Accounts:     accountsSvc,
		Verification: verificationSvc,
		Notifier:     notificationsSvc,
		Events:       outbox.NewService(outbox.NewRepository(gormDB), logg),
		Metrics:      metrics.NewBookingMetrics(prometheus.DefaultRegisterer),
		Logger:       logg,
	}, bookings.Config{
		EscrowAccountID:   escrowID,
		RevenueAccountID:  revenueID,
		ArrivalWaitWindow: cfg.Settlement.ArrivalWaitWindow,
	})
}
