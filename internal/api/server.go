// Package api provides the HTTP API server and handlers for the Inkwell
// server.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/config"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// Version is the API version reported in the OpenAPI document.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         store.Store
	services      *Services
	tokenService  *auth.TokenService
	router        *chi.Mux
	api           huma.API
	logger        *slog.Logger
	refreshTTL    time.Duration
	secureCookies bool
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st store.Store, services *Services, tokenService *auth.TokenService, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Resolve bearer tokens up front; handlers decide whether auth is
	// required.
	router.Use(authMiddleware(tokenService))

	humaConfig := huma.DefaultConfig("Inkwell API", Version)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:         st,
		services:      services,
		tokenService:  tokenService,
		router:        router,
		api:           api,
		logger:        logger,
		refreshTTL:    cfg.Auth.RefreshTokenDuration,
		secureCookies: cfg.App.Environment == "production",
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerDomainRoutes()
	s.registerNoteRoutes()
	s.registerTagRoutes()
	s.registerSubscriptionRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
