// Package db opens the slot backend selected by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agencyos/order-desk/internal/core/ports"
	badgerstore "github.com/agencyos/order-desk/internal/infrastructure/db/badger"
	"github.com/agencyos/order-desk/internal/infrastructure/db/memory"
	mongostore "github.com/agencyos/order-desk/internal/infrastructure/db/mongo"
	redisstore "github.com/agencyos/order-desk/internal/infrastructure/db/redis"
	"github.com/agencyos/order-desk/internal/pkg/config"
)

// Backend is an opened SlotStore together with the resources behind it.
type Backend struct {
	Name  string
	Slots ports.SlotStore
	close func(context.Context) error
}

// Close releases the underlying connection or database handle.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Open connects to the backend named by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendBadger:
		bdb, err := badgerstore.Open(cfg.Badger.Path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Badger.Path).Msg("badger slot store opened")
		return &Backend{
			Name:  cfg.StoreBackend,
			Slots: badgerstore.NewSlotStore(bdb),
			close: func(context.Context) error { return bdb.Close() },
		}, nil

	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Int("db", cfg.Redis.DB).Msg("redis slot store connected")
		return &Backend{
			Name:  cfg.StoreBackend,
			Slots: redisstore.NewSlotStore(client),
			close: func(context.Context) error { return client.Close() },
		}, nil

	case config.BackendMongo:
		client, mdb, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo slot store connected")
		return &Backend{
			Name:  cfg.StoreBackend,
			Slots: mongostore.NewSlotStore(mdb),
			close: client.Disconnect,
		}, nil

	case config.BackendMemory:
		log.Warn().Msg("memory slot store selected, data will not survive a restart")
		return &Backend{Name: cfg.StoreBackend, Slots: memory.NewSlotStore()}, nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
