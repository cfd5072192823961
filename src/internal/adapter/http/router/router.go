package router

import (
	"net/http"

	"github.com/nttbank/msaccount/src/internal/adapter/http/middleware"
	"github.com/nttbank/msaccount/src/internal/metrics"
)

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

// New mounts the registrars behind authMiddleware. Swagger, health and metrics
// stay public.
func New(
	collector *metrics.Collector,
	authMiddleware func(http.Handler) http.Handler,
	registrars ...RouteRegistrar,
) http.Handler {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("GET /metrics", collector.Handler())

	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(mux, authMiddleware)
		}
	}

	return middleware.Metrics(collector)(mux)
}
