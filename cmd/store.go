package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/duynhne/brainstorm-service/config"
	database "github.com/duynhne/brainstorm-service/internal/core"
	"github.com/duynhne/brainstorm-service/internal/core/domain"
	"github.com/duynhne/brainstorm-service/internal/core/repository"
)

// openStore builds the session repository selected by STORE_DRIVER.
// The returned close func releases its connections.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (domain.SessionRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		if cfg.Database.Migrate {
			if err := database.Migrate(cfg.Database.URL); err != nil {
				return nil, nil, err
			}
			log.Info().Msg("Database migrations applied")
		}

		pool, err := database.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("Database connection pool established")

		return repository.NewSessionRepository(pool), pool.Close, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")

		return repository.NewRedisSessionRepository(rdb), func() { _ = rdb.Close() }, nil

	default:
		log.Info().Msg("Using in-memory session store")
		return repository.NewMemorySessionRepository(), func() {}, nil
	}
}
