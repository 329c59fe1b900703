// Package api provides the HTTP server and handlers for the ballplayer
// guessing game.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ntbapp/ntb-server/internal/game"
	"github.com/ntbapp/ntb-server/internal/ratelimit"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	manager      *game.Manager
	guessLimiter *ratelimit.KeyedRateLimiter
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(manager *game.Manager, guessLimiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		manager:      manager,
		guessLimiter: guessLimiter,
		router:       chi.NewRouter(),
		logger:       logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Name That Ballplayer API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerGameRoutes()
	s.setupWebRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupWebRoutes configures the plain chi routes that fall outside the
// JSON API: the game page and the PNG stat table.
func (s *Server) setupWebRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/stats_image", s.handleStatsImage)
}
