package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/subhaneetshrestha/lereddit/internal/config"
	"github.com/subhaneetshrestha/lereddit/internal/domain/repository/postgres"
	repoRedis "github.com/subhaneetshrestha/lereddit/internal/domain/repository/redis"
	gqlHandler "github.com/subhaneetshrestha/lereddit/internal/handler/graphql"
	httpHandler "github.com/subhaneetshrestha/lereddit/internal/handler/http"
	"github.com/subhaneetshrestha/lereddit/internal/infrastructure/security"
	"github.com/subhaneetshrestha/lereddit/internal/service"
	"github.com/subhaneetshrestha/lereddit/internal/utils/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	dbPool, err := initDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize PostgreSQL connection pool", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatal("Failed to initialize Redis client", zap.Error(err))
	}
	defer redisClient.Close()

	userRepo := postgres.NewUserRepositoryPostgres(dbPool)
	postRepo := postgres.NewPostRepositoryPostgres(dbPool)
	sessionStore := repoRedis.NewSessionStoreRedis(redisClient, logger.WithComponent(log, "session_store"), cfg.Session.TTL)

	hasher, err := security.NewArgon2idHasher(security.Argon2idParams{
		Memory:      cfg.Security.PasswordHash.Memory,
		Iterations:  cfg.Security.PasswordHash.Iterations,
		Parallelism: cfg.Security.PasswordHash.Parallelism,
		SaltLength:  cfg.Security.PasswordHash.SaltLength,
		KeyLength:   cfg.Security.PasswordHash.KeyLength,
	})
	if err != nil {
		log.Fatal("Failed to initialize password hasher", zap.Error(err))
	}

	authService := service.NewAuthService(userRepo, sessionStore, hasher, logger.WithComponent(log, "auth_service"))
	postService := service.NewPostService(postRepo, logger.WithComponent(log, "post_service"))

	schema, err := gqlHandler.NewSchema(authService, postService)
	if err != nil {
		log.Fatal("Failed to build GraphQL schema", zap.Error(err))
	}

	router := httpHandler.SetupRouter(schema, cfg, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
