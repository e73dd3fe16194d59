package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/ports"
	"github.com/agencyos/order-desk/internal/pkg/metrics"
)

// defaultLeadTime is applied when an order is created without a deadline.
const defaultLeadTime = 7 * 24 * time.Hour

// OrderOption customises an order service.
type OrderOption func(*orderService)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) OrderOption {
	return func(s *orderService) { s.now = now }
}

// WithIDGenerator overrides the message id generator.
func WithIDGenerator(newID func() string) OrderOption {
	return func(s *orderService) { s.newID = newID }
}

type orderService struct {
	store ports.RecordStore
	now   func() time.Time
	newID func() string
	log   zerolog.Logger
}

// NewOrderService returns an OrderService implementation.
func NewOrderService(store ports.RecordStore, log zerolog.Logger, opts ...OrderOption) ports.OrderService {
	s := &orderService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *orderService) ListOrders(_ context.Context, actor domain.User) []domain.ServiceOrder {
	return s.store.ListOrders(actor)
}

// GetOrder returns the order with its assignee's name, or "Unassigned".
func (s *orderService) GetOrder(_ context.Context, actor domain.User, orderID string) (*ports.OrderDetail, error) {
	order, err := s.store.FindOrder(actor, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	detail := &ports.OrderDetail{Order: order, AssigneeName: "Unassigned"}
	if assignee, ok := s.store.FindUser(order.AssignedToID); ok && order.AssignedToID != "" {
		detail.AssigneeName = assignee.Name
	}
	return detail, nil
}

// ChangeStatus moves an order to any status of the enumeration.
func (s *orderService) ChangeStatus(ctx context.Context, actor domain.User, orderID string, status domain.OrderStatus) (domain.ServiceOrder, error) {
	if !status.Valid() {
		return domain.ServiceOrder{}, fmt.Errorf("change status: %w: %q", domain.ErrInvalidStatus, status)
	}

	order, err := s.store.SetOrderStatus(ctx, orderID, status, actor.ID)
	if err != nil {
		metrics.OrderErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		s.log.Error().Err(err).Str("order_id", orderID).Str("status", string(status)).Msg("failed to change status")
		return domain.ServiceOrder{}, fmt.Errorf("change status: %w", err)
	}

	metrics.OrderStatusChangesTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().
		Str("order_id", orderID).
		Str("status", string(status)).
		Str("user_id", actor.ID).
		Msg("order status changed")
	return order, nil
}

// SendMessage appends a chat line authored by actor. A file URL turns it
// into a file message. Content is stored as given; whitespace only counts
// when checking for a blank message.
func (s *orderService) SendMessage(ctx context.Context, actor domain.User, orderID string, in ports.SendMessageInput) (domain.ServiceOrder, error) {
	if strings.TrimSpace(in.Content) == "" {
		return domain.ServiceOrder{}, domain.ErrEmptyMessage
	}

	msg := domain.Message{
		ID:         s.newID(),
		SenderID:   actor.ID,
		SenderName: actor.Name,
		Content:    in.Content,
		Timestamp:  s.now(),
		Type:       domain.MessageText,
	}
	if in.FileURL != "" {
		msg.Type = domain.MessageFile
		msg.FileURL = in.FileURL
	}

	order, err := s.store.AppendMessage(ctx, orderID, msg)
	if err != nil {
		metrics.OrderErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		s.log.Error().Err(err).Str("order_id", orderID).Msg("failed to append message")
		return domain.ServiceOrder{}, fmt.Errorf("send message: %w", err)
	}

	metrics.OrderMessagesTotal.WithLabelValues(string(msg.Type)).Inc()
	s.log.Debug().Str("order_id", orderID).Str("user_id", actor.ID).Msg("message appended")
	return order, nil
}

// CreateOrder registers a new order on behalf of actor. Only roles that may
// create orders are accepted; new orders start in TODO.
func (s *orderService) CreateOrder(ctx context.Context, actor domain.User, in ports.CreateOrderInput) (domain.ServiceOrder, error) {
	if !actor.Role.CanCreateOrders() {
		return domain.ServiceOrder{}, fmt.Errorf("create order: %w", domain.ErrForbidden)
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return domain.ServiceOrder{}, fmt.Errorf("create order: %w: %q", domain.ErrInvalidPriority, priority)
	}

	now := s.now()
	deadline := in.Deadline.UTC()
	if in.Deadline.IsZero() {
		deadline = now.Add(defaultLeadTime)
	}

	order := domain.ServiceOrder{
		ID:           strings.TrimSpace(in.ID),
		Title:        in.Title,
		Client:       in.Client,
		Description:  in.Description,
		Priority:     priority,
		Status:       domain.StatusTodo,
		Type:         in.Type,
		CreatedAt:    now,
		Deadline:     deadline,
		AssignedToID: in.AssignedToID,
		CreatedBy:    actor.ID,
		Messages:     []domain.Message{},
		Price:        in.Price,
	}

	created, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		metrics.OrderErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		s.log.Error().Err(err).Str("order_id", order.ID).Msg("failed to create order")
		return domain.ServiceOrder{}, fmt.Errorf("create order: %w", err)
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(created.Priority)).Inc()
	s.log.Info().
		Str("order_id", created.ID).
		Str("client", created.Client).
		Str("user_id", actor.ID).
		Msg("order created")
	return created, nil
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicateOrder):
		return "duplicate"
	case errors.Is(err, domain.ErrUnknownUser):
		return "unknown_user"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	default:
		return "other"
	}
}
