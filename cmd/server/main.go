// Package main Recipe Hub API.
//
// @title           Recipe Hub API
// @version         1.0
// @description     Recipe sharing backend: accounts, bearer-token sessions and author-owned recipes.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	_ "github.com/recipehub/recipe-api/docs"
	"github.com/recipehub/recipe-api/internal/api"
	"github.com/recipehub/recipe-api/internal/api/handler"
	"github.com/recipehub/recipe-api/internal/core/service"
	"github.com/recipehub/recipe-api/internal/infrastructure/config"
	"github.com/recipehub/recipe-api/internal/infrastructure/db/mongo"
	"github.com/recipehub/recipe-api/internal/infrastructure/db/redis"
	"github.com/recipehub/recipe-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "recipe-api"})
		l := logger.Get()
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "recipe-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Infrastructure ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongo.NewUserRepository(db)
	recipes := mongo.NewRecipeRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := recipes.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Services ---
	hasher, err := service.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := service.NewTokenService(cfg.JWTSecret, service.SystemClock{})
	if err != nil {
		return err
	}
	clock := service.SystemClock{}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e := api.NewRouter(api.Services{
		Auth:    service.NewAuthService(users, hasher, tokens, clock, logger.For("auth")),
		Recipes: service.NewRecipeService(recipes, clock, logger.For("recipes")),
		Users:   service.NewUserService(users, recipes, redis.NewStatsCache(rdb), cfg.StatsCacheTTL, clock, logger.For("users")),
		Guard:   service.NewGuard(tokens, users, logger.For("guard")),
	}, api.Options{
		Logger:   logger.For("http"),
		Registry: reg,
		Checks: map[string]handler.Check{
			"mongodb": mongo.Pinger(client),
			"redis":   redis.Pinger(rdb),
		},
		StaticDir: cfg.StaticDir,
		Docs:      !cfg.IsProduction(),
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
	}).Handler(e)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err, ok := <-errCh; ok && err != nil {
		return err
	}
	return nil
}

