package handlers

import (
	"cfb-trends-go/middleware"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterConfig collects the handlers and HTTP settings for NewRouter
type RouterConfig struct {
	Trends      *TrendsHandler
	Auth        *AuthHandler
	Health      *HealthHandler
	Admin       *middleware.AuthMiddleware
	CORSOrigins []string
	BehindProxy bool
	RateLimit   int
}

// NewRouter wires routes and the middleware stack
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.SecurityMiddleware(cfg.BehindProxy))

	limited := middleware.RateLimit(cfg.RateLimit, cfg.BehindProxy)

	r.HandleFunc("/health", cfg.Health.Health).Methods(http.MethodGet)
	r.Handle("/trends", limited(http.HandlerFunc(cfg.Trends.GetTrends))).Methods(http.MethodGet)
	r.Handle("/trends/refresh", limited(cfg.Admin.RequireAdmin(http.HandlerFunc(cfg.Trends.Refresh)))).Methods(http.MethodPost)
	r.Handle("/auth/token", limited(http.HandlerFunc(cfg.Auth.IssueToken))).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
	})
	return c.Handler(r)
}
