package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/docsai-app/docsai-backend/api/controllers"
	"github.com/docsai-app/docsai-backend/api/middleware"
	"github.com/docsai-app/docsai-backend/internal/auth"
	"github.com/docsai-app/docsai-backend/internal/documents"
	subscriptionsvc "github.com/docsai-app/docsai-backend/internal/subscriptions"
	"github.com/docsai-app/docsai-backend/pkg/auth/session"
	"github.com/docsai-app/docsai-backend/pkg/config"
	"github.com/docsai-app/docsai-backend/pkg/db"
	"github.com/docsai-app/docsai-backend/pkg/logger"
	"github.com/docsai-app/docsai-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager sessionManager,
	authService auth.Service,
	registerService auth.RegisterService,
	documentService documents.Service,
	subscriptionService subscriptionsvc.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(registerService, logg))
			r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
			r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
		})

		// Templates and single-document reads are public surfaces:
		// anonymous visitors browse read-only, signed-in callers get
		// their edit rights resolved from the optional token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, sessionManager, logg))
			r.Get("/templates", controllers.TemplateList(documentService, logg))
			r.Get("/documents/{documentID}", controllers.DocumentGet(documentService, logg))
			r.Get("/documents/{documentID}/form", controllers.DocumentForm(documentService, logg))
			r.Get("/documents/{documentID}/pdf", controllers.DocumentPDF(documentService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

			r.Get("/documents", controllers.DocumentList(documentService, logg))
			r.Post("/documents", controllers.DocumentCreate(documentService, logg))
			r.Put("/documents/{documentID}", controllers.DocumentSave(documentService, logg))
			r.Delete("/documents/{documentID}", controllers.DocumentDelete(documentService, logg))

			r.Get("/subscriptions/me", controllers.SubscriptionGet(subscriptionService, logg))
			r.Post("/subscriptions", controllers.SubscriptionCreate(subscriptionService, logg))
			r.Post("/subscriptions/cancel", controllers.SubscriptionCancel(subscriptionService, logg))
		})
	})

	return r
}
