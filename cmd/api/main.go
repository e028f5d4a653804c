package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ostaapp/osta-backend/api/routes"
	"github.com/ostaapp/osta-backend/internal/accounts"
	"github.com/ostaapp/osta-backend/internal/bookings"
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

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	svcs, err := buildServices(cfg, logg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, svcs),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server shut down gracefully")
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client) (routes.Services, error) {
	gormDB := dbClient.DB()

	escrowID, err := uuid.Parse(cfg.Platform.EscrowAccountID)
	if err != nil {
		return routes.Services{}, err
	}
	revenueID, err := uuid.Parse(cfg.Platform.RevenueAccountID)
	if err != nil {
		return routes.Services{}, err
	}

	events := outbox.NewService(outbox.NewRepository(gormDB), logg)

	walletSvc, err := wallet.NewService(wallet.NewRepository(gormDB), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	settingsSvc, err := settings.NewService(settings.NewRepository(gormDB), logg, cfg.Settlement.DefaultCommissionPercent)
	if err != nil {
		return routes.Services{}, err
	}

	accountsSvc, err := accounts.NewService(accounts.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	notificationsSvc, err := notifications.NewService(notifications.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	verificationSvc, err := verification.NewService(verification.Options{
		Repo:     verification.NewRepository(gormDB),
		Tx:       dbClient,
		Events:   events,
		Notifier: notificationsSvc,
		Logger:   logg,
		Validity: cfg.Settlement.VerificationValidity,
	})
	if err != nil {
		return routes.Services{}, err
	}

	bookingsSvc, err := bookings.NewService(bookings.Deps{
		Repo:         bookings.NewRepository(gormDB),
		Tx:           dbClient,
		Wallet:       walletSvc,
		Settings:     settingsSvc,
		Accounts:     accountsSvc,
		Verification: verificationSvc,
		Notifier:     notificationsSvc,
		Events:       events,
		Metrics:      metrics.NewBookingMetrics(prometheus.DefaultRegisterer),
		Logger:       logg,
	}, bookings.Config{
		EscrowAccountID:   escrowID,
		RevenueAccountID:  revenueID,
		ArrivalWaitWindow: cfg.Settlement.ArrivalWaitWindow,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Bookings:      bookingsSvc,
		Wallet:        walletSvc,
		Notifications: notificationsSvc,
		Settings:      settingsSvc,
		Verification:  verificationSvc,
	}, nil
}
