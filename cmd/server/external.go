package main

import (
	"errors"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/subhaneetshrestha/lereddit/internal/config"
	repoRedis "github.com/subhaneetshrestha/lereddit/internal/domain/repository/redis"
	infraPostgres "github.com/subhaneetshrestha/lereddit/internal/infrastructure/database/postgres"
)

func initDatabase(cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	if cfg.Database.AutoMigrate {
		logger.Info("Running database migrations")
		m, err := migrate.New("file://migrations", cfg.Database.URL())
		if err != nil {
			return nil, fmt.Errorf("create migration instance: %w", err)
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("Migrations applied")
	}

	return infraPostgres.NewDBPool(cfg.Database)
}

func initRedis(cfg *config.Config) (*goredis.Client, error) {
	return repoRedis.NewRedisClient(cfg.Redis)
}
