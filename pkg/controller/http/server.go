package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wikimetrics/cohortview/pkg/domain/interfaces"
)

// DefaultPartialDetailLimit is the number of members returned by the
// detail endpoint unless full detail is requested
const DefaultPartialDetailLimit = 3

// ServerConfig holds optional server settings
type ServerConfig struct {
	allowedOrigins     []string
	partialDetailLimit int
}

// ServerOption is a functional option for configuring Server
type ServerOption func(*ServerConfig)

// WithAllowedOrigins enables CORS for the given origins
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(c *ServerConfig) {
		c.allowedOrigins = origins
	}
}

// WithPartialDetailLimit sets how many members a partial detail response holds
func WithPartialDetailLimit(n int) ServerOption {
	return func(c *ServerConfig) {
		c.partialDetailLimit = n
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates an HTTP server exposing the cohort endpoints backed by repo
func NewServer(ctx context.Context, addr string, repo interfaces.Repository, opts ...ServerOption) (*Server, error) {
	if repo == nil {
		return nil, goerr.New("repository is required")
	}

	config := &ServerConfig{
		partialDetailLimit: DefaultPartialDetailLimit,
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.partialDetailLimit <= 0 {
		return nil, goerr.New("partial detail limit must be positive",
			goerr.V("limit", config.partialDetailLimit))
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	if len(config.allowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: config.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	cohortHandler := NewCohortHandler(repo, config.partialDetailLimit)

	// Health check
	router.Get("/health", handleHealth)

	router.Route("/cohorts", func(r chi.Router) {
		r.Get("/list", cohortHandler.HandleList)
		r.Get("/list/", cohortHandler.HandleList)
		r.Get("/detail/{id}", cohortHandler.HandleDetail)
	})

	ctxlog.From(ctx).Debug("HTTP routes registered",
		"partial_detail_limit", config.partialDetailLimit,
		"allowed_origins", config.allowedOrigins,
	)

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "cohortview",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}
