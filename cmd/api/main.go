package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/api"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/server"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.Info().Str("env", string(config.GetEnvironment())).Msg("configuration loaded")

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional: without it there is no recommendation cache and no write rate limit.
	var (
		redisClient *redis.Client
		cache       service.RecommendationCache
		limiter     *middleware.RateLimiter
	)
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("Redis unavailable, continuing without cache and rate limiting")
		} else {
			defer redisClient.Close()
			cache = service.NewRedisRecommendationCache(redisClient, cfg.RecommendCacheTTL)
			limiter = middleware.NewRecipeWriteRateLimiter(redisClient)
		}
	}

	var signer service.ImageURLSigner
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("S3 unavailable, image URLs are served as stored")
		} else {
			signer = s3cfg
		}
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, service.RecommendSettings{
		MaxCandidates: cfg.RecommendMaxCandidates,
		Workers:       cfg.RecommendWorkers,
	}, cache, signer)

	srv := server.New(cfg, api.Dependencies{
		DB:      db,
		Auth:    authService,
		Recipes: recipeService,
		Limits: api.SimilarLimits{
			Default: cfg.RecommendLimit,
			Max:     cfg.RecommendMaxLimit,
		},
		WriteLimiter: limiter,
	})

	// Stop on an interrupt or terminate signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		logging.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
	logging.Info().Msg("server stopped")
}
