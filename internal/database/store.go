package database

import (
	"context"
	"fmt"

	"pantry/internal/config"
	"pantry/internal/repository"

	"github.com/rs/zerolog"
)

// OpenStore connects to the configured storage driver and returns its repositories.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		store, err := repository.NewMongoStore(ctx, client.Database(cfg.Mongo.DB), logger)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return store, nil

	case config.DriverPostgres:
		pool, err := NewPool(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		store, err := repository.NewPostgresStore(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
