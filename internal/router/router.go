package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"inventario-api/internal/config"
	"inventario-api/internal/handler"
	"inventario-api/internal/metrics"
	"inventario-api/internal/middleware"
)

// New assembles the HTTP surface. The inventory routes are registered through
// the mountResources callback so the router stays ignorant of the entity
// catalogue; everything under /inventario sits behind bearer auth.
func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
	mountResources func(chi.Router),
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)
	if collector != nil {
		r.Use(collector.Middleware)
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"API de Inventarios"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))
	}

	r.Route("/auth", func(auth chi.Router) {
		auth.Post("/login", authHandler.Login)
	})

	r.Route("/inventario", func(inv chi.Router) {
		inv.Use(middleware.Timeout(cfg.RequestTimeout))
		inv.Use(authMiddleware.RequireAuth)
		mountResources(inv)
	})

	return r
}
