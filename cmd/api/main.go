package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/admin"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/kv"
	"server/internal/providers/solver"
	"server/internal/session"
)

func main() {
	// Muat .env (opsional)
	_ = godotenv.Load()

	// Konfigurasi & logger
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if cfg.UsesDefaultAdminPassword() {
		logger.Warn().Msg("ADMIN_PASSWORD not set, using built-in default; override it in any real deployment")
	}

	// Key-value store: Redis kalau ada REDIS_URL, selain itu in-memory
	ctx := context.Background()
	store, backend, err := kv.Open(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, falling back to in-memory store")
		store = kv.NewMemory()
		backend = "memory"
	}
	defer store.Close()
	logger.Info().Str("backend", backend).Msg("key-value store ready")

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip lookups disabled")
		geo = nil
	}

	var mathSolver handlers.Solver
	if cfg.GeminiAPIKey != "" {
		gemini, err := solver.NewGemini(solver.Options{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure solver")
		}
		mathSolver = gemini
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set, solve endpoint disabled")
	}

	// App container
	app := &handlers.App{
		Logger: logger,
		Tracker: session.NewTracker(session.TrackerOptions{
			Store:  store,
			Geo:    geo,
			Logger: logger,
			TTL:    cfg.SessionTTL,
		}),
		Stats: session.NewStats(session.StatsOptions{
			Store:  store,
			Logger: logger,
		}),
		Gate:         admin.NewGate(cfg.AdminPassword),
		Tokens:       admin.NewTokens(store),
		Solver:       mathSolver,
		StoreTimeout: cfg.StoreTimeout,
	}

	router := httpapi.NewRouter(app, cfg.CORSAllowedOrigins)

	// HTTP server wrapper dari infra
	server := infra.NewHTTPServer(cfg, router)

	// Start async
	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
