//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../../../mocks/mock_auth_service.go -package=mocks

package ports

import (
	"context"

	"github.com/agencyos/order-desk/internal/core/domain"
)

// AuthService resolves team members. There are no passwords: a known email
// is enough to sign in.
type AuthService interface {
	Login(ctx context.Context, email string) (domain.User, error)
	Resolve(ctx context.Context, userID string) (domain.User, error)
	Users(ctx context.Context) []domain.User
	Developers(ctx context.Context) []domain.User
}
