package mongo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/agencyos/order-desk/internal/core/ports"
)

func TestSlotStore_Get(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("stored slot", func(mt *mtest.T) {
		store := NewSlotStore(mt.DB)
		ns := mt.DB.Name() + "." + collectionSlots
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "agency_logs"},
			{Key: "payload", Value: `[{"id":"l1"}]`},
		}))

		got, err := store.Get(context.Background(), "agency_logs")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != `[{"id":"l1"}]` {
			t.Fatalf("unexpected payload: %s", got)
		}
	})

	mt.Run("missing slot", func(mt *mtest.T) {
		store := NewSlotStore(mt.DB)
		ns := mt.DB.Name() + "." + collectionSlots
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := store.Get(context.Background(), "agency_os_data")
		if !errors.Is(err, ports.ErrSlotEmpty) {
			t.Fatalf("expected ErrSlotEmpty, got %v", err)
		}
	})
}

func TestSlotStore_PutAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	slots := map[string][]byte{
		"agency_os_data": []byte(`[{"id":"OS-1001"}]`),
		"agency_logs":    []byte(`[]`),
	}

	mt.Run("standalone falls back to plain upserts", func(mt *mtest.T) {
		store := NewSlotStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    20,
				Name:    "IllegalOperation",
				Message: "Transaction numbers are only allowed on a replica set member or mongos",
			}),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		if err := store.PutAll(context.Background(), slots); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	mt.Run("other command errors are returned", func(mt *mtest.T) {
		store := NewSlotStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad value"}),
			mtest.CreateSuccessResponse(),
		)

		err := store.PutAll(context.Background(), slots)
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.HasPrefix(err.Error(), "mongo put: ") {
			t.Fatalf("expected wrapped error, got %v", err)
		}
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Code != 2 {
			t.Fatalf("expected command error code 2, got %v", err)
		}
	})
}

func TestIsTransactionUnsupported(t *testing.T) {
	if isTransactionUnsupported(nil) {
		t.Fatal("nil error is not a transaction failure")
	}
	if !isTransactionUnsupported(mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}) {
		t.Fatal("code 20 should be reported as unsupported")
	}
	if isTransactionUnsupported(mongo.CommandError{Code: 11000, Message: "duplicate key"}) {
		t.Fatal("other command errors must not trigger the fallback")
	}
}
