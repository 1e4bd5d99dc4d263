package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dfarias/fincontrol/internal/auth"
	authHandler "github.com/dfarias/fincontrol/internal/http/auth"
	"github.com/dfarias/fincontrol/internal/http/catalog"
	"github.com/dfarias/fincontrol/internal/http/dashboard"
	"github.com/dfarias/fincontrol/internal/http/entry"
	"github.com/dfarias/fincontrol/internal/observability"
)

func New(
	metrics *observability.Metrics,
	authSvc *auth.Service,
	authV1 *authHandler.Handler,
	entriesV1 *entry.Handler,
	dashboardV1 *dashboard.Handler,
	catalogV1 *catalog.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost", "http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/health", health)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", authV1.Routes)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(authSvc))

			r.Route("/entries", entriesV1.Routes)
			r.Route("/dashboard", dashboardV1.Routes)
			catalogV1.Routes(r)
		})
	})

	return router
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "active",
		"service": "fincontrol-api",
	})
}
