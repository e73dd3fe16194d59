package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/agencyos/order-desk/internal/core/ports"
)

// SlotStore keeps record-store slots as plain Redis strings.
// Key format: orderdesk:slot:<name>
type SlotStore struct {
	client *redis.Client
}

// NewSlotStore wraps the given Redis client.
func NewSlotStore(client *redis.Client) *SlotStore {
	return &SlotStore{client: client}
}

func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

// PutAll writes every slot inside one MULTI/EXEC block.
func (s *SlotStore) PutAll(ctx context.Context, slots map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range slots {
			pipe.Set(ctx, s.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put: %w", err)
	}
	return nil
}

func (s *SlotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SlotStore) key(name string) string {
	return "orderdesk:slot:" + name
}
