package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/xeralabs/rize-engine/docs"
	"github.com/xeralabs/rize-engine/internal/adapters/cache"
	adapterHTTP "github.com/xeralabs/rize-engine/internal/adapters/handler/http"
	"github.com/xeralabs/rize-engine/internal/adapters/repository"
	"github.com/xeralabs/rize-engine/internal/config"
	"github.com/xeralabs/rize-engine/internal/core/domain"
	"github.com/xeralabs/rize-engine/internal/core/services"
	"github.com/xeralabs/rize-engine/internal/core/workers"
)

// @title        RIZE Engine API
// @version      1.0
// @description  ARCs, traces, live stream sessions and monthly usage analytics.
// @BasePath     /api/v1
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	startTime := time.Now()

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	log.Info().Msg("connecting to database")

	db, err := sqlx.Connect("pgx", cfg.DatabaseDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info().Msg("database connected")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without rate limiting and session cache")
			rdb = nil
		}
	}

	userRepo := repository.NewPostgresUserRepository(db)
	arcRepo := repository.NewPostgresArcRepository(db)
	traceRepo := repository.NewPostgresTraceRepository(db)

	var streamRepo domain.StreamSessionRepository = repository.NewPostgresStreamRepository(db)
	if rdb != nil {
		streamRepo = repository.NewCachedStreamRepository(streamRepo, rdb)
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	streakWorker := workers.NewStreakWorker(arcRepo, traceRepo)
	streakWorker.Start(workerCtx)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, userRepo)
	arcService := services.NewArcService(arcRepo)
	traceService := services.NewTraceService(traceRepo, arcRepo, streakWorker)
	streamService := services.NewStreamService(streamRepo)

	seriesCache := services.NewSeriesCache(512, 6*time.Hour)
	analyticsService := services.NewAnalyticsService(traceRepo, streamRepo, seriesCache)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService, tokenService),
		ArcHandler:       adapterHTTP.NewArcHandler(arcService),
		TraceHandler:     adapterHTTP.NewTraceHandler(traceService),
		StreamHandler:    adapterHTTP.NewStreamHandler(streamService),
		AnalyticsHandler: adapterHTTP.NewAnalyticsHandler(analyticsService),
		TokenService:     tokenService,
		DB:               db,
		Redis:            rdb,
		StartTime:        startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("rize engine listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("stop signal received, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped gracefully")
}
