// Package badger stores record-store slots in an embedded BadgerDB.
package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/agencyos/order-desk/internal/core/ports"
)

const keyPrefix = "slot:"

// Open opens (or creates) a Badger database in dir.
func Open(dir string) (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("badger open %s: %w", dir, err)
	}
	return db, nil
}

// SlotStore keeps each slot under "slot:<name>".
type SlotStore struct {
	db *badger.DB
}

func NewSlotStore(db *badger.DB) *SlotStore {
	return &SlotStore{db: db}
}

func (s *SlotStore) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ports.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("badger get %s: %w", key, err)
	}
	return out, nil
}

// PutAll writes all slots in a single transaction.
func (s *SlotStore) PutAll(_ context.Context, slots map[string][]byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for k, v := range slots {
			if err := txn.Set([]byte(keyPrefix+k), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger put: %w", err)
	}
	return nil
}

func (s *SlotStore) Ping(context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger: database is closed")
	}
	return nil
}

// Keys lists every stored slot name, used by the inspect command.
func (s *SlotStore) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return keys, err
}
