// Package store holds the record store: the in-memory order list, user
// directory and audit log, loaded once from a SlotStore and written back in
// full after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/ports"
)

// Slot names in the backing key-value store.
const (
	SlotOrders = "agency_os_data"
	SlotLogs   = "agency_logs"
)

const (
	orderIDPrefix    = "OS-"
	firstOrderNumber = 1001
)

// Options tunes Open. Zero values pick the defaults.
type Options struct {
	Users  []domain.User    // defaults to domain.SeedUsers()
	Clock  func() time.Time // defaults to time.Now().UTC()
	NewID  func() string    // log id generator, defaults to uuid
	Logger zerolog.Logger
}

// RecordStore implements ports.RecordStore. Every operation holds the mutex
// for its whole read-modify-persist cycle; concurrent writers to one order
// are applied in arrival order and the last one wins.
type RecordStore struct {
	mu     sync.Mutex
	slots  ports.SlotStore
	users  []domain.User
	orders []domain.ServiceOrder
	logs   []domain.Log
	now    func() time.Time
	newID  func() string
	log    zerolog.Logger
}

var _ ports.RecordStore = (*RecordStore)(nil)

// Open loads orders and logs from slots. An empty order slot is replaced by
// the seed orders; nothing is written until the first mutation.
func Open(ctx context.Context, slots ports.SlotStore, opts Options) (*RecordStore, error) {
	s := &RecordStore{
		slots: slots,
		users: opts.Users,
		now:   opts.Clock,
		newID: opts.NewID,
		log:   opts.Logger,
	}
	if s.users == nil {
		s.users = domain.SeedUsers()
	}
	if err := domain.ValidateUsers(s.users); err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	seeded, err := loadSlot(ctx, slots, SlotOrders, &s.orders)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	if !seeded {
		s.orders = domain.SeedOrders(s.now())
		s.log.Info().Int("orders", len(s.orders)).Msg("order slot empty, using seed data")
	}
	if _, err := loadSlot(ctx, slots, SlotLogs, &s.logs); err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	if s.logs == nil {
		s.logs = []domain.Log{}
	}

	s.log.Debug().Int("orders", len(s.orders)).Int("logs", len(s.logs)).Msg("record store loaded")
	return s, nil
}

func loadSlot(ctx context.Context, slots ports.SlotStore, key string, dst any) (bool, error) {
	raw, err := slots.Get(ctx, key)
	if errors.Is(err, ports.ErrSlotEmpty) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read slot %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode slot %s: %w", key, err)
	}
	return true, nil
}

// Authenticate looks a user up by exact, case-sensitive email. The first
// match wins.
func (s *RecordStore) Authenticate(email string) (domain.User, bool) {
	return lo.Find(s.users, func(u domain.User) bool { return u.Email == email })
}

// FindUser resolves a user id.
func (s *RecordStore) FindUser(id string) (domain.User, bool) {
	return lo.Find(s.users, func(u domain.User) bool { return u.ID == id })
}

func (s *RecordStore) ListUsers() []domain.User {
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *RecordStore) ListDevelopers() []domain.User {
	return lo.Filter(s.users, func(u domain.User, _ int) bool { return u.Role == domain.RoleDeveloper })
}

// ListOrders returns copies of the orders actor may read: everything for
// administrators and managers, only their own assignments for developers.
func (s *RecordStore) ListOrders(actor domain.User) []domain.ServiceOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ServiceOrder, 0, len(s.orders))
	for _, o := range s.orders {
		if canRead(actor, o) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// FindOrder returns one order under the same read rule as ListOrders. An
// order the actor may not read is reported as not found.
func (s *RecordStore) FindOrder(actor domain.User, orderID string) (domain.ServiceOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(orderID)
	if i < 0 || !canRead(actor, s.orders[i]) {
		return domain.ServiceOrder{}, domain.ErrOrderNotFound
	}
	return s.orders[i].Clone(), nil
}

func canRead(actor domain.User, o domain.ServiceOrder) bool {
	if actor.Role.SeesAllOrders() {
		return true
	}
	return o.IsAssignedTo(actor.ID)
}

// SetOrderStatus overwrites the status of an order. Any transition is
// accepted.
func (s *RecordStore) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, actorID string) (domain.ServiceOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(orderID)
	if i < 0 {
		return domain.ServiceOrder{}, domain.ErrOrderNotFound
	}

	s.orders[i].Status = status
	s.appendLog(orderID, actorID, "changed status to "+string(status))

	if err := s.persist(ctx); err != nil {
		return domain.ServiceOrder{}, err
	}
	return s.orders[i].Clone(), nil
}

// AppendMessage adds msg to the end of the order's chat thread.
func (s *RecordStore) AppendMessage(ctx context.Context, orderID string, msg domain.Message) (domain.ServiceOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(orderID)
	if i < 0 {
		return domain.ServiceOrder{}, domain.ErrOrderNotFound
	}

	s.orders[i].Messages = append(s.orders[i].Messages, msg)

	if err := s.persist(ctx); err != nil {
		return domain.ServiceOrder{}, err
	}
	return s.orders[i].Clone(), nil
}

// CreateOrder appends a new order and logs its creation against CreatedBy.
// Ids must be unique and user references must resolve.
func (s *RecordStore) CreateOrder(ctx context.Context, order domain.ServiceOrder) (domain.ServiceOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == "" {
		order.ID = s.nextOrderID()
	} else if s.indexOf(order.ID) >= 0 {
		return domain.ServiceOrder{}, fmt.Errorf("%w: %s", domain.ErrDuplicateOrder, order.ID)
	}
	if _, ok := s.FindUser(order.CreatedBy); !ok {
		return domain.ServiceOrder{}, fmt.Errorf("%w: createdBy %q", domain.ErrUnknownUser, order.CreatedBy)
	}
	if order.AssignedToID != "" {
		if _, ok := s.FindUser(order.AssignedToID); !ok {
			return domain.ServiceOrder{}, fmt.Errorf("%w: assignedToId %q", domain.ErrUnknownUser, order.AssignedToID)
		}
	}
	if order.Messages == nil {
		order.Messages = []domain.Message{}
	}

	order = order.Clone()
	s.orders = append(s.orders, order)
	s.appendLog(order.ID, order.CreatedBy, "created service order")

	if err := s.persist(ctx); err != nil {
		return domain.ServiceOrder{}, err
	}
	return order.Clone(), nil
}

// Logs returns a copy of the audit trail.
func (s *RecordStore) Logs() []domain.Log {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Log, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *RecordStore) indexOf(orderID string) int {
	_, i, _ := lo.FindIndexOf(s.orders, func(o domain.ServiceOrder) bool { return o.ID == orderID })
	return i
}

// nextOrderID returns OS-<n> one above the highest numeric suffix in use.
func (s *RecordStore) nextOrderID() string {
	next := firstOrderNumber
	for _, o := range s.orders {
		n, err := strconv.Atoi(strings.TrimPrefix(o.ID, orderIDPrefix))
		if err != nil || !strings.HasPrefix(o.ID, orderIDPrefix) {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return orderIDPrefix + strconv.Itoa(next)
}

func (s *RecordStore) appendLog(orderID, userID, action string) {
	s.logs = append(s.logs, domain.Log{
		ID:        s.newID(),
		OrderID:   orderID,
		UserID:    userID,
		Action:    action,
		Timestamp: s.now(),
	})
}

// persist re-serializes both slots. A failure leaves the in-memory change in
// place.
func (s *RecordStore) persist(ctx context.Context) error {
	orders, err := json.Marshal(s.orders)
	if err != nil {
		return fmt.Errorf("%w: encode orders: %w", domain.ErrPersistence, err)
	}
	logs, err := json.Marshal(s.logs)
	if err != nil {
		return fmt.Errorf("%w: encode logs: %w", domain.ErrPersistence, err)
	}

	if err := s.slots.PutAll(ctx, map[string][]byte{SlotOrders: orders, SlotLogs: logs}); err != nil {
		s.log.Error().Err(err).Msg("failed to persist record store")
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}
