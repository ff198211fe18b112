// Package api serves the cinema catalogue over HTTP.
//
// Every route under /api/v1 requires the X-API-Key header. Responses use
// the APIResponse envelope except GET /movies/{id}/raw, which returns the
// stored flat string as text/plain. /metrics is left open for scraping.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssargent/cinedb/pkg/query"
	"github.com/ssargent/cinedb/pkg/storage"
)

// NewRouter builds the HTTP routes for server. Metrics are exposed from
// gatherer at /metrics.
func NewRouter(server *Server, apiKey string, gatherer prometheus.Gatherer) http.Handler {
	metrics := server.metrics

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(server.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(apiKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Movies
		r.Get("/movies", metrics.InstrumentHandler("GET", "/api/v1/movies", server.handleMovies))
		r.Get("/movies/top-rated", metrics.InstrumentHandler("GET", "/api/v1/movies/top-rated", server.handleTopRated))
		r.Get("/movies/popular", metrics.InstrumentHandler("GET", "/api/v1/movies/popular", server.handlePopular))
		r.Get("/movies/{id}", metrics.InstrumentHandler("GET", "/api/v1/movies/{id}", server.handleMovie))
		r.Get("/movies/{id}/raw", metrics.InstrumentHandler("GET", "/api/v1/movies/{id}/raw", server.handleMovieRaw))
		r.Post("/movies/{id}/reviews", metrics.InstrumentHandler("POST", "/api/v1/movies/{id}/reviews", server.handleAddReview))
		r.Post("/movies/{id}/sales", metrics.InstrumentHandler("POST", "/api/v1/movies/{id}/sales", server.handleRecordSale))
		r.Get("/movies/{id}/showtimes", metrics.InstrumentHandler("GET", "/api/v1/movies/{id}/showtimes", server.handleShowtimes))

		// Cineplexes
		r.Get("/cineplexes", metrics.InstrumentHandler("GET", "/api/v1/cineplexes", server.handleCineplexes))
		r.Get("/cineplexes/{id}", metrics.InstrumentHandler("GET", "/api/v1/cineplexes/{id}", server.handleCineplex))
		r.Get("/cineplexes/{id}/showings", metrics.InstrumentHandler("GET", "/api/v1/cineplexes/{id}/showings", server.handleCineplexShowings))

		// Codec
		r.Post("/codec/parse", metrics.InstrumentHandler("POST", "/api/v1/codec/parse", server.handleParse))
		r.Get("/codec/types", metrics.InstrumentHandler("GET", "/api/v1/codec/types", server.handleTypes))
	})

	return r
}

// requestLogger logs one line per request
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// StartServer serves the API for store until ctx is cancelled, then shuts
// down gracefully.
func StartServer(ctx context.Context, store *storage.Store, config ServerConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("an API key is required to serve the API")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(registry)

	server := NewServer(query.NewMovieService(store), query.NewCineplexService(store), metrics, logger)
	httpServer := &http.Server{
		Addr:              config.Addr,
		Handler:           NewRouter(server, config.APIKey, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting cinedb API server", "addr", config.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", config.Addr, err)
	case <-ctx.Done():
	}

	logger.Info("shutting down cinedb API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
