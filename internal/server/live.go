package server

import (
	"context"
	"fmt"
	"time"

	"icon-registry/internal/common/config"
	"icon-registry/internal/common/database"
	"icon-registry/internal/common/logger"
	"icon-registry/internal/icons/catalogue"
	"icon-registry/internal/supplier/cache"
	"icon-registry/internal/supplier/lucide"
	"icon-registry/internal/supplier/snapshot"
)

// retryWithBackoff runs operation until it succeeds or attempts run out,
// doubling the delay after every failure.
func retryWithBackoff(ctx context.Context, operation func() error, attempts int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < attempts; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < attempts-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxAttempts": attempts,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, attempts, err)
}

// LiveSource assembles the source consulted for names missing from the
// static registry: the SQL snapshot when configured, then the upstream
// client behind the Redis cache when enabled. Unreachable stores are left
// out. The returned func closes whatever was opened.
func LiveSource(ctx context.Context, cfg *config.Config, log logger.Logger) (catalogue.Source, func()) {
	log = logger.OrNoOp(log)
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if !cfg.Dispatch.LiveLookup {
		log.Info("live lookup disabled", nil)
		return nil, closeAll
	}

	var upstream catalogue.Source = lucide.NewClient(cfg.Catalogue, log)

	if cfg.Cache.Enabled {
		var rdb *database.RedisClient
		err := retryWithBackoff(ctx, func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			if err := rdb.Ping(pingCtx); err != nil {
				_ = rdb.Close()
				return err
			}
			return nil
		}, 3, 500*time.Millisecond, log, "Redis connection")

		if err != nil {
			log.Warn("redis unavailable, live lookups are uncached", map[string]interface{}{
				"redis": cfg.Database.Redis.String(),
				"error": err.Error(),
			})
		} else {
			closers = append(closers, func() { _ = rdb.Close() })
			ttl := time.Duration(cfg.Cache.TTL) * time.Second
			upstream = cache.New(rdb.Client, upstream, ttl, cfg.Cache.Prefix, log)
			log.Info("redis cache enabled", map[string]interface{}{"ttlSeconds": cfg.Cache.TTL})
		}
	}

	chain := catalogue.Chain{upstream}

	if cfg.Database.Snapshot.Enabled() {
		store, closeStore, err := OpenSnapshots(ctx, cfg.Database.Snapshot, log)
		if err != nil {
			log.Warn("snapshot store unavailable", map[string]interface{}{
				"driver": cfg.Database.Snapshot.Driver,
				"error":  err.Error(),
			})
		} else {
			closers = append(closers, closeStore)
			chain = catalogue.Chain{store, upstream}
		}
	}

	return chain, closeAll
}

// OpenSnapshots connects to the snapshot database and ensures its table.
func OpenSnapshots(ctx context.Context, cfg config.SnapshotConfig, log logger.Logger) (*snapshot.Store, func(), error) {
	client, err := database.NewSQL(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = client.Close() }

	if err := client.Ping(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}

	store, err := snapshot.NewFromClient(client, log)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}
