package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/guts/internal/config"
	"github.com/aretw0/guts/pkg/adapters/file"
	"github.com/aretw0/guts/pkg/adapters/memory"
	"github.com/aretw0/guts/pkg/adapters/redis"
	"github.com/aretw0/guts/pkg/persistence/middleware"
	"github.com/aretw0/guts/pkg/ports"
	"github.com/aretw0/guts/pkg/schema"
)

// Backend bundles a document store with the locker guarding it.
type Backend struct {
	Store  ports.DocumentStore
	Locker ports.DistributedLocker
	Close  func() error
}

// OpenBackend builds the configured store. Memory and file stores are
// single-process and use an in-process locker; Redis shares its client with
// a Redis locker so replicas coordinate.
func OpenBackend(ctx context.Context, cfg config.StoreConfig, reg *schema.Registry) (*Backend, error) {
	b, err := openBackend(ctx, cfg, reg)
	if err != nil {
		return nil, err
	}
	if len(cfg.Redact) > 0 {
		redact, err := middleware.NewRedactMiddleware(cfg.Redact)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		b.Store = middleware.Chain(b.Store, redact)
	}
	return b, nil
}

func openBackend(ctx context.Context, cfg config.StoreConfig, reg *schema.Registry) (*Backend, error) {
	nop := func() error { return nil }
	switch cfg.Backend {
	case "", "memory":
		return &Backend{Store: memory.NewStore(), Locker: memory.NewLocker(), Close: nop}, nil
	case "file":
		return &Backend{Store: file.New(cfg.Path, reg), Locker: memory.NewLocker(), Close: nop}, nil
	case "redis":
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
			redis.WithRegistry(reg),
		)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return &Backend{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), cfg.Redis.Prefix),
			Close:  store.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
