package ports

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by SlotStore.Get when nothing was ever written
// under the key.
var ErrSlotEmpty = errors.New("slot is empty")

// SlotStore is a durable key-value store holding whole serialized documents
// under a handful of named slots.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// PutAll writes every slot in one go; backends use a single transaction
	// where they have one.
	PutAll(ctx context.Context, slots map[string][]byte) error
	Ping(ctx context.Context) error
}
