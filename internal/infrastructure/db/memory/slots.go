// Package memory is a process-local SlotStore for tests and throwaway demos.
package memory

import (
	"context"
	"sync"

	"github.com/agencyos/order-desk/internal/core/ports"
)

// SlotStore keeps slot values in a map. Values are copied on the way in and
// out.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
	// FailWith, when set, makes PutAll fail with this error.
	FailWith error
}

func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string][]byte)}
}

func (s *SlotStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	if !ok {
		return nil, ports.ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (s *SlotStore) PutAll(_ context.Context, slots map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}
	for k, v := range slots {
		s.slots[k] = append([]byte(nil), v...)
	}
	return nil
}

func (s *SlotStore) Ping(context.Context) error { return nil }
