package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-wellness-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/catalog"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/config"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/clock"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/workers"
)

// appDeps is everything the HTTP surface needs, independent of where the
// repositories live.
type appDeps struct {
	Goals     domain.GoalRecordRepository
	Responses domain.SurveyResponseRepository
	Snapshots domain.ScoreSnapshotRepository
	Catalog   *catalog.Catalog
	Clock     clock.Clock
	Tokens    middleware.TokenValidator
	DB        *sqlx.DB
	Redis     *redis.Client
	Config    *config.Config
	StartTime time.Time
}

// buildRouter wires services, the snapshot worker and handlers. The worker is
// started on ctx.
func buildRouter(ctx context.Context, deps appDeps) *gin.Engine {
	scoreService := services.NewScoreService(deps.Responses, deps.Goals, deps.Snapshots, deps.Catalog)

	snapshotWorker := workers.NewSnapshotWorker(scoreService, deps.Snapshots, deps.Clock, deps.Config.Worker.SnapshotQueueSize)
	snapshotWorker.Start(ctx)

	goalService := services.NewGoalService(deps.Goals, deps.Catalog, deps.Clock, snapshotWorker)

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		ScoreHandler:    adapterHTTP.NewScoreHandler(scoreService),
		GoalHandler:     adapterHTTP.NewGoalHandler(goalService),
		TokenValidator:  deps.Tokens,
		DB:              deps.DB,
		Redis:           deps.Redis,
		RateLimit:       deps.Config.Server.RateLimit,
		RateLimitWindow: deps.Config.Server.RateLimitWindow,
		StartTime:       deps.StartTime,
	})
}

// @title        Kanso Wellness Engine API
// @version      1.0
// @description  Survey health scores and goal tracking.
// @BasePath     /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}

	questions, err := catalog.LoadFromFile(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Critical: Failed to load question catalog: %v", err)
	}
	log.Printf("Loaded %d survey categories from %s", len(questions.Categories()), cfg.Catalog.Path)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MaxConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := repository.RunMigrations(ctx, db, cfg.Database.MigrationsDir); err != nil {
		log.Fatalf("Critical: Failed to run migrations: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("Warning: Redis unavailable, running without cache and rate limiting: %v", err)
			rdb = nil
		} else {
			defer rdb.Close()
			log.Println("Redis connected successfully.")
		}
	}

	var goalRepo domain.GoalRecordRepository = repository.NewPostgresGoalRecordRepository(db)
	if rdb != nil {
		goalRepo = repository.NewCachedGoalRecordRepository(goalRepo, rdb, cfg.Redis.CacheTTL)
	}

	router := buildRouter(ctx, appDeps{
		Goals:     goalRepo,
		Responses: repository.NewPostgresSurveyResponseRepository(db),
		Snapshots: repository.NewPostgresSnapshotRepository(db),
		Catalog:   questions,
		Clock:     clock.Real{},
		Tokens:    services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, time.Hour),
		DB:        db,
		Redis:     rdb,
		Config:    cfg,
		StartTime: startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Wellness Engine running on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}
	cancel()

	log.Println("Server stopped gracefully.")
}
