package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agencyos/order-desk/internal/core/ports"
)

const collectionSlots = "slots"

// slotDocument is one named slot. The payload is the JSON document the
// record store serialized, kept as an opaque string.
type slotDocument struct {
	Name      string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// SlotStore keeps record-store slots in a MongoDB collection, one document
// per slot.
type SlotStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewSlotStore(db *mongo.Database) *SlotStore {
	return &SlotStore{client: db.Client(), col: db.Collection(collectionSlots)}
}

func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc slotDocument
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ports.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get %s: %w", key, err)
	}
	return []byte(doc.Payload), nil
}

// PutAll upserts every slot. It runs inside a transaction when the
// deployment supports one (replica set) and falls back to plain upserts on a
// standalone server.
func (s *SlotStore) PutAll(ctx context.Context, slots map[string][]byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	write := func(ctx context.Context) error {
		now := time.Now().UTC()
		for k, v := range slots {
			doc := slotDocument{Name: k, Payload: string(v), UpdatedAt: now}
			_, err := s.col.ReplaceOne(ctx, bson.M{"_id": k}, doc, options.Replace().SetUpsert(true))
			if err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	session, sessErr := s.client.StartSession()
	if sessErr != nil {
		err = write(ctx)
	} else {
		defer session.EndSession(ctx)
		_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			return nil, write(sc)
		})
		if isTransactionUnsupported(err) {
			err = write(ctx)
		}
	}
	if err != nil {
		return fmt.Errorf("mongo put: %w", err)
	}
	return nil
}

func (s *SlotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// isTransactionUnsupported matches the IllegalOperation error a standalone
// mongod returns for multi-document transactions.
func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 20
	}
	return false
}
