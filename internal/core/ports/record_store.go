package ports

import (
	"context"

	"github.com/agencyos/order-desk/internal/core/domain"
)

// RecordStore is the single source of truth for users, service orders and
// the audit log. ListOrders and FindOrder enforce the role-based read rule.
type RecordStore interface {
	Authenticate(email string) (domain.User, bool)
	FindUser(id string) (domain.User, bool)
	ListUsers() []domain.User
	ListDevelopers() []domain.User

	ListOrders(actor domain.User) []domain.ServiceOrder
	FindOrder(actor domain.User, orderID string) (domain.ServiceOrder, error)

	SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, actorID string) (domain.ServiceOrder, error)
	AppendMessage(ctx context.Context, orderID string, msg domain.Message) (domain.ServiceOrder, error)
	// CreateOrder assigns an OS-<n> id when order.ID is empty.
	CreateOrder(ctx context.Context, order domain.ServiceOrder) (domain.ServiceOrder, error)
}
