package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/mahfuzhasan/officer-registry/internal/auth"
	"github.com/mahfuzhasan/officer-registry/internal/metrics"
	"github.com/mahfuzhasan/officer-registry/internal/office"
	"github.com/mahfuzhasan/officer-registry/internal/officer"
	"github.com/mahfuzhasan/officer-registry/internal/transport/middleware"
	"github.com/mahfuzhasan/officer-registry/internal/transport/swagger"
	"github.com/mahfuzhasan/officer-registry/internal/unmask"
	"github.com/mahfuzhasan/officer-registry/internal/user"
)

type RouterDeps struct {
	DB             *sql.DB
	AuthHandler    *auth.Handler
	UserHandler    *user.Handler
	OfficerHandler *officer.Handler
	OfficeHandler  *office.Handler
	UnmaskHandler  *unmask.Handler
	RoleAuth       *auth.RoleAuthorization
	MetricsEnabled bool
	Logger         *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	if deps.MetricsEnabled {
		router.Handle("/metrics", metrics.Handler())
	}

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if deps.AuthHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", deps.AuthHandler.Login)
				sr.Post("/refresh", deps.AuthHandler.RefreshToken)
				sr.Post("/logout", deps.AuthHandler.Logout)
			})
		}

		// Public office lookup (no auth required)
		if deps.OfficeHandler != nil {
			r.Get("/offices", deps.OfficeHandler.GetOffices)
		}

		if deps.AuthHandler == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.AuthMiddleware)

			// Current user
			if deps.UserHandler != nil {
				pr.Get("/users/me", deps.UserHandler.GetCurrentUser)
			}

			// Officer directory routes
			if deps.OfficerHandler != nil {
				pr.Route("/officers", func(or chi.Router) {
					or.Get("/", deps.OfficerHandler.ListOfficers)
					or.Get("/{id}", deps.OfficerHandler.GetOfficer)

					// Admin-only data management
					or.Group(func(ar chi.Router) {
						ar.Use(deps.RoleAuth.RequireAdmin())
						ar.Post("/", deps.OfficerHandler.CreateOfficer)
					})

					// Visibility tuning and audit trails need standing access
					or.Group(func(hr chi.Router) {
						hr.Use(deps.RoleAuth.RequireAdminOrHR())
						hr.Patch("/{id}/visibility", deps.OfficerHandler.UpdateVisibility)
						hr.Get("/{id}/access-logs", deps.OfficerHandler.GetAccessLogs)
						hr.Get("/export", deps.OfficerHandler.ExportOfficers)
					})
				})
			}

			// Unmask request workflow
			if deps.UnmaskHandler != nil {
				pr.Route("/unmask-requests", func(ur chi.Router) {
					ur.Post("/", deps.UnmaskHandler.CreateRequest)
					ur.Get("/mine", deps.UnmaskHandler.ListMyRequests)
					ur.Get("/{id}", deps.UnmaskHandler.GetRequest)

					ur.Group(func(ar chi.Router) {
						ar.Use(deps.RoleAuth.RequireAdminOrHR())
						ar.Get("/pending", deps.UnmaskHandler.ListPendingRequests)
						ar.Patch("/{id}/approve", deps.UnmaskHandler.ApproveRequest)
						ar.Patch("/{id}/deny", deps.UnmaskHandler.DenyRequest)
					})
				})
			}
		})
	})
}
