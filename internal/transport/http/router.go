// Package httptransport assembles the HTTP surface: middleware, health
// probes, metrics and the person API.
package httptransport

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"registru/internal/person/handler"
	"registru/internal/platform/health"
	"registru/pkg/platform/middleware/request"
)

// NewRouter wires all endpoints behind the shared middleware chain.
func NewRouter(people *handler.Handler, healthHandler *health.Handler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(request.Logger(logger))
	r.Use(request.Timeout(30 * time.Second))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())
	people.Register(r)

	return r
}
