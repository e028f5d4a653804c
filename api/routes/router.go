package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ostaapp/osta-backend/api/controllers"
	"github.com/ostaapp/osta-backend/api/middleware"
	"github.com/ostaapp/osta-backend/internal/bookings"
	"github.com/ostaapp/osta-backend/internal/notifications"
	"github.com/ostaapp/osta-backend/internal/settings"
	"github.com/ostaapp/osta-backend/internal/verification"
	"github.com/ostaapp/osta-backend/internal/wallet"
	"github.com/ostaapp/osta-backend/pkg/config"
	"github.com/ostaapp/osta-backend/pkg/db"
	"github.com/ostaapp/osta-backend/pkg/enums"
	"github.com/ostaapp/osta-backend/pkg/logger"
	"github.com/ostaapp/osta-backend/pkg/redis"
)

// Services bundles everything the router exposes over HTTP.
type Services struct {
	Bookings      bookings.Service
	Wallet        wallet.Service
	Notifications notifications.Service
	Settings      settings.Service
	Verification  verification.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})
	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Handle("/metrics", promhttp.Handler())

	var idempotencyStore redis.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisClient
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.ListBookings(svcs.Bookings, logg))
			r.Post("/", controllers.CreateBooking(svcs.Bookings, logg))
			r.Get("/{bookingId}", controllers.GetBooking(svcs.Bookings, logg))
			r.Post("/{bookingId}/quote", controllers.SubmitQuote(svcs.Bookings, logg))
			r.Post("/{bookingId}/transition", controllers.TransitionBooking(svcs.Bookings, logg))
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", controllers.WalletBalance(svcs.Wallet, logg))
			r.Get("/entries", controllers.WalletStatement(svcs.Wallet, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Route("/settings", func(r chi.Router) {
				r.Get("/commission", controllers.AdminGetCommission(svcs.Settings, logg))
				r.Put("/commission", controllers.AdminSetCommission(svcs.Settings, logg))
			})
			r.Route("/providers", func(r chi.Router) {
				r.Get("/{providerId}/verification", controllers.AdminGetProviderProfile(svcs.Verification, logg))
				r.Post("/{providerId}/verification", controllers.AdminVerificationDecision(svcs.Verification, logg))
			})
			r.Post("/bookings/{bookingId}/resolve", controllers.AdminResolveDispute(svcs.Bookings, logg))
		})
	})

	return r
}
