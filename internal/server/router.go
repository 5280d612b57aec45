package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/LdDl/osmroute"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Graph         *osmroute.Graph
	Metrics       *Metrics
	Gatherer      prometheus.Gatherer
	MaxExpansions int
}

// NewRouter wires the HTTP routes exposed by the route service.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	router := mux.NewRouter()

	handlers := &RouteHandlers{
		graph:         deps.Graph,
		metrics:       deps.Metrics,
		logger:        logger,
		maxExpansions: deps.MaxExpansions,
	}
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/route", handlers.handleRoute).Methods(http.MethodGet)
	router.HandleFunc("/api/route.geojson", handlers.handleRouteGeoJSON).Methods(http.MethodGet)
	router.HandleFunc("/api/graph/stats", handlers.handleGraphStats).Methods(http.MethodGet)
	if deps.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	router.Use(loggingMiddleware(logger))
	return router
}

func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"duration", time.Since(start),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
