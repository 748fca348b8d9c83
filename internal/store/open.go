package store

import (
	"context"
	"fmt"

	"github.com/voyagen/iptvindex/internal/config"
	"github.com/voyagen/iptvindex/internal/kv"
)

// Open returns the Store selected by cfg.Store. For postgres the schema
// migrations are applied before the pool is opened.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreFile, "":
		return NewFileStore(cfg.DataFile), nil
	case config.StoreRedis:
		rds, err := kv.New(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		if err := rds.Ping(ctx); err != nil {
			rds.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisStore(rds, cfg.RedisKey), nil
	case config.StorePostgres:
		if err := RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStore, cfg.Store)
	}
}
