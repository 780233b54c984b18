package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/nusapress/articles-api/internal/api"
	"github.com/nusapress/articles-api/internal/api/handler"
	"github.com/nusapress/articles-api/internal/core/ports"
	"github.com/nusapress/articles-api/internal/core/service"
	"github.com/nusapress/articles-api/internal/infrastructure/config"
	"github.com/nusapress/articles-api/internal/infrastructure/db/memory"
	mongostore "github.com/nusapress/articles-api/internal/infrastructure/db/mongo"
	redisstore "github.com/nusapress/articles-api/internal/infrastructure/db/redis"
	"github.com/nusapress/articles-api/internal/infrastructure/db/seed"
	"github.com/nusapress/articles-api/pkg/logger"
)

// @title        Articles API
// @version      1.0
// @description  Article publishing with token authentication and role-based authorization.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	secret, usingFallback := cfg.SecretOrFallback()
	if usingFallback {
		log.Warn().Msg("JWT_SECRET is not set; tokens are signed with the built-in fallback secret, do not run like this in production")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		userRepo    ports.UserRepository
		articleRepo ports.ArticleRepository
		mongoDB     *mongodriver.Database
	)

	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		users := mongostore.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		userRepo = users
		articleRepo = mongostore.NewArticleRepository(db)
		mongoDB = db
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")

	case config.StoreMemory:
		userRepo = memory.NewUserRepository()
		articleRepo = memory.NewArticleRepository()
		log.Info().Msg("using in-memory store; all data is discarded on restart")

	default:
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown store driver")
	}

	var (
		rdb   *goredis.Client
		cache service.PublishedCache
	)
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = client.Close()
		}()
		rdb = client
		cache = redisstore.NewListingCache(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("published-listing cache enabled")
	}

	if cfg.SeedDemoData {
		if err := seed.Demo(ctx, userRepo, articleRepo, log); err != nil {
			log.Fatal().Err(err).Msg("seeding demo data failed")
		}
	}

	tokens := service.NewTokenManager(secret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, log)
	articleService := service.NewArticleService(articleRepo, cache, log)

	e := api.NewRouter(api.RouterConfig{
		Tokens:    tokens,
		Users:     userRepo,
		Auth:      handler.NewAuthHandler(authService),
		Articles:  handler.NewArticleHandler(articleService),
		Docs:      handler.NewDocsHandler(),
		Health:    handler.NewHealthHandler(),
		Readiness: handler.NewReadinessHandler(mongoDB, rdb),
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
