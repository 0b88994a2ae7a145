package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/food-ratings/internal/auth"
	"github.com/ayush/food-ratings/internal/config"
	"github.com/ayush/food-ratings/internal/foods"
	"github.com/ayush/food-ratings/internal/server"
	"github.com/ayush/food-ratings/internal/store"
)

// backend is what both persistence implementations provide.
type backend interface {
	auth.UserStore
	foods.FoodStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// ── Persistence ──────────────────────────────────────────
	var db backend
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			fatal("postgres connect", err)
		}
		defer pgPool.Close()
		pgStore := store.NewPostgresStore(pgPool)
		if err := pgStore.Migrate(ctx); err != nil {
			fatal("postgres migrate", err)
		}
		db = pgStore
	default:
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
		if err != nil {
			fatal("mongo connect", err)
		}
		defer mongoClient.Disconnect(ctx)
		mongoStore := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			fatal("mongo indexes", err)
		}
		db = mongoStore
	}

	// ── Redis token cache (optional) ─────────────────────────
	var users auth.UserStore = db
	if cfg.RedisAddr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			fatal("redis connect", err)
		}
		defer rdb.Close()
		users = store.NewTokenCache(db, rdb, cfg.TokenCacheTTL)
	}

	// ── Services & router ────────────────────────────────────
	authSvc, err := auth.NewService(users, auth.NewBcryptHasher(cfg.BcryptCost), auth.RandomTokenIssuer{})
	if err != nil {
		fatal("auth service", err)
	}
	foodSvc := foods.NewService(db)
	handler := server.NewRouter(logger, cfg.CORSOrigins, authSvc, foodSvc)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		slog.Info("backend listening", "port", cfg.Port, "store", cfg.StoreBackend, "token_cache", cfg.RedisAddr != "")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal("server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
