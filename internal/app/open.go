package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/4wadia/focusflow/internal/config"
	"github.com/4wadia/focusflow/internal/database"
	"github.com/4wadia/focusflow/internal/ownerlock"
	"github.com/redis/go-redis/v9"
)

// Open builds an App from configuration: the SQLite file at
// cfg.Database.Path (or the default path) and the configured owner lock.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	path := cfg.Database.Path
	if path == "" {
		var err error
		if path, err = database.DefaultPath(); err != nil {
			return nil, err
		}
	}

	db, err := database.InitDB(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	opts := []Option{WithMaxAttempts(cfg.Mutation.MaxAttempts)}

	if cfg.Lock.Backend == config.LockRedis {
		client, err := connectRedis(ctx, cfg.Lock.RedisURL)
		if err != nil {
			return nil, errors.Join(err, db.Close())
		}
		opts = append(opts,
			WithLocker(ownerlock.NewRedis(client, cfg.Lock.TTL)),
			WithCloser(client.Close),
		)
	}

	return New(db, opts...), nil
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid lock.redis_url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
