//go:generate go run go.uber.org/mock/mockgen -source=order_service.go -destination=../../../mocks/mock_order_service.go -package=mocks

package ports

import (
	"context"
	"time"

	"github.com/agencyos/order-desk/internal/core/domain"
)

// CreateOrderInput carries the caller-supplied fields of a new order.
// ID is optional; an OS-<n> id is generated when empty.
type CreateOrderInput struct {
	ID           string
	Title        string
	Client       string
	Description  string
	Priority     domain.Priority
	Type         string
	Deadline     time.Time
	AssignedToID string
	Price        *float64
}

// SendMessageInput is a chat line posted on an order. A non-empty FileURL
// makes it a file message.
type SendMessageInput struct {
	Content string
	FileURL string
}

// OrderDetail is an order with its assignee resolved for display.
type OrderDetail struct {
	Order        domain.ServiceOrder
	AssigneeName string
}

// OrderService defines the use-case operations on service orders.
type OrderService interface {
	ListOrders(ctx context.Context, actor domain.User) []domain.ServiceOrder
	GetOrder(ctx context.Context, actor domain.User, orderID string) (*OrderDetail, error)
	ChangeStatus(ctx context.Context, actor domain.User, orderID string, status domain.OrderStatus) (domain.ServiceOrder, error)
	SendMessage(ctx context.Context, actor domain.User, orderID string, in SendMessageInput) (domain.ServiceOrder, error)
	CreateOrder(ctx context.Context, actor domain.User, in CreateOrderInput) (domain.ServiceOrder, error)
}
