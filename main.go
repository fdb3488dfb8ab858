package main

import (
	"cfb-trends-go/config"
	"cfb-trends-go/database"
	"cfb-trends-go/handlers"
	"cfb-trends-go/interfaces"
	"cfb-trends-go/logging"
	"cfb-trends-go/middleware"
	"cfb-trends-go/services"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logging.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.Configure(cfg.ToLoggingConfig())
	defer logger.Close()
	cfg.LogConfiguration()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]interfaces.Pinger{}

	// Season cache; the service still works without one
	seasonCache, err := database.OpenSeasonCache(ctx, cfg.Database.Backend, cfg.ToDatabaseConfig())
	if err != nil {
		logger.Errorf("Season cache (%s) unavailable: %v", cfg.Database.Backend, err)
		logger.Warn("Continuing without season cache...")
		seasonCache = database.NoopSeasonCache{}
	}
	defer seasonCache.Close()
	if pinger, ok := seasonCache.(interfaces.Pinger); ok {
		checks["seasonCache"] = pinger
	}

	var reportCache services.ReportCache
	if cfg.Redis.URL != "" {
		redisCache, err := database.NewRedisReportCache(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Errorf("Redis report cache unavailable: %v", err)
		} else {
			defer redisCache.Close()
			reportCache = redisCache
			checks["redis"] = redisCache
		}
	}

	client := services.NewCFBDClient(cfg.Source)
	checks["cfbd"] = interfaces.PingFunc(client.HealthCheck)

	trendsService := services.NewTrendsService(client, seasonCache, reportCache,
		services.NewCachePolicy(cfg.Cache), cfg.Source.PreferredProvider)
	authService := services.NewAuthService(cfg.Auth)
	if !cfg.IsAdminConfigured() {
		logger.Warn("ADMIN_KEY_HASH not set; /trends/refresh is unreachable")
	}

	if cfg.App.RefresherEnabled {
		refresher := services.NewBackgroundRefresher(trendsService, cfg.App.CurrentSeason,
			cfg.App.RefreshConferences, cfg.App.RefreshInterval)
		refresher.Start(ctx)
		defer refresher.Stop()
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Trends:      handlers.NewTrendsHandler(trendsService, cfg.App.CurrentSeason),
		Auth:        handlers.NewAuthHandler(authService),
		Health:      handlers.NewHealthHandler(checks),
		Admin:       middleware.NewAuthMiddleware(authService),
		CORSOrigins: cfg.Server.CORSOrigins,
		BehindProxy: cfg.Server.BehindProxy,
		RateLimit:   cfg.Server.RateLimit,
	})

	server := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute, // a cold season fetch can take a while
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		var err error
		if cfg.Server.UseTLS && !cfg.Server.BehindProxy {
			logger.Infof("HTTPS server starting on %s", server.Addr)
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			logger.Infof("HTTP server starting on %s", server.Addr)
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}
