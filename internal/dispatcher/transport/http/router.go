package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beplic/chatapi-dispatcher/internal/dispatcher/provider"
)

// NewRouter assembles the dispatcher's full HTTP surface.
func NewRouter(p provider.Provider, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(chi_middleware.RequestID)
	r.Use(chi_middleware.RealIP)
	r.Use(chi_middleware.Recoverer)
	r.Use(chi_middleware.Timeout(60 * time.Second))
	r.Use(PrometheusMetricsMiddleware)

	NewMessageHandler(p, logger).RegisterRoutes(r)
	RegisterHealthRoutes(r)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
