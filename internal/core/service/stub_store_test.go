package service

import (
	"context"
	"testing"
	"time"

	"github.com/agencyos/order-desk/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub record store
// ---------------------------------------------------------------------------

type stubRecordStore struct {
	users     []domain.User
	orders    map[string]domain.ServiceOrder
	statusLog []string // "<order>:<status>:<actor>" per successful SetOrderStatus
	messages  []domain.Message
	created   []domain.ServiceOrder
	writeErr  error // if set, every mutation returns this error
}

func newStubRecordStore() *stubRecordStore {
	r := &stubRecordStore{
		users:  domain.SeedUsers(),
		orders: make(map[string]domain.ServiceOrder),
	}
	for _, o := range domain.SeedOrders(fixedNow) {
		r.orders[o.ID] = o
	}
	return r
}

func (r *stubRecordStore) Authenticate(email string) (domain.User, bool) {
	for _, u := range r.users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

func (r *stubRecordStore) FindUser(id string) (domain.User, bool) {
	for _, u := range r.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (r *stubRecordStore) ListUsers() []domain.User { return r.users }

func (r *stubRecordStore) ListDevelopers() []domain.User {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleDeveloper {
			out = append(out, u)
		}
	}
	return out
}

// ListOrders applies the same read rule the real store uses; map order is
// not stable, so callers compare sets.
func (r *stubRecordStore) ListOrders(actor domain.User) []domain.ServiceOrder {
	var out []domain.ServiceOrder
	for _, o := range r.orders {
		if actor.Role.SeesAllOrders() || o.IsAssignedTo(actor.ID) {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (r *stubRecordStore) FindOrder(actor domain.User, id string) (domain.ServiceOrder, error) {
	o, ok := r.orders[id]
	if !ok || !(actor.Role.SeesAllOrders() || o.IsAssignedTo(actor.ID)) {
		return domain.ServiceOrder{}, domain.ErrOrderNotFound
	}
	return o.Clone(), nil
}

func (r *stubRecordStore) SetOrderStatus(_ context.Context, id string, status domain.OrderStatus, actorID string) (domain.ServiceOrder, error) {
	if r.writeErr != nil {
		return domain.ServiceOrder{}, r.writeErr
	}
	o, ok := r.orders[id]
	if !ok {
		return domain.ServiceOrder{}, domain.ErrOrderNotFound
	}
	o.Status = status
	r.orders[id] = o
	r.statusLog = append(r.statusLog, id+":"+string(status)+":"+actorID)
	return o.Clone(), nil
}

func (r *stubRecordStore) AppendMessage(_ context.Context, id string, msg domain.Message) (domain.ServiceOrder, error) {
	if r.writeErr != nil {
		return domain.ServiceOrder{}, r.writeErr
	}
	o, ok := r.orders[id]
	if !ok {
		return domain.ServiceOrder{}, domain.ErrOrderNotFound
	}
	o.Messages = append(o.Messages, msg)
	r.orders[id] = o
	r.messages = append(r.messages, msg)
	return o.Clone(), nil
}

func (r *stubRecordStore) CreateOrder(_ context.Context, o domain.ServiceOrder) (domain.ServiceOrder, error) {
	if r.writeErr != nil {
		return domain.ServiceOrder{}, r.writeErr
	}
	if o.ID == "" {
		o.ID = "OS-1004"
	}
	if _, exists := r.orders[o.ID]; exists {
		return domain.ServiceOrder{}, domain.ErrDuplicateOrder
	}
	if o.AssignedToID != "" {
		if _, ok := r.FindUser(o.AssignedToID); !ok {
			return domain.ServiceOrder{}, domain.ErrUnknownUser
		}
	}
	r.orders[o.ID] = o
	r.created = append(r.created, o)
	return o.Clone(), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func mustUser(t testing.TB, r *stubRecordStore, id string) domain.User {
	t.Helper()
	u, ok := r.FindUser(id)
	if !ok {
		t.Fatalf("seed user %s missing", id)
	}
	return u
}
