package controllers

import (
	"context"
	"net/http"

	"github.com/ostaapp/osta-backend/api/responses"
	"github.com/ostaapp/osta-backend/pkg/config"
	"github.com/ostaapp/osta-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Osta-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks that the backing stores answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Osta-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		checks["db"] = checkPing(r.Context(), logg, "db", dbP, &healthy)
		checks["redis"] = checkPing(r.Context(), logg, "redis", redisP, &healthy)

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": readyLabel(healthy),
			"checks": checks,
		})
	}
}

func checkPing(ctx context.Context, logg *logger.Logger, name string, p pinger, healthy *bool) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		*healthy = false
		if logg != nil {
			logg.Error(logg.WithField(ctx, "dependency", name), "readiness check failed", err)
		}
		return "down"
	}
	return "ok"
}

func readyLabel(healthy bool) string {
	if healthy {
		return "ready"
	}
	return "degraded"
}
