package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/agencyos/order-desk/internal/core/domain"
)

const (
	// HeaderUserID carries the id of the signed-in user on every /v1 request.
	HeaderUserID = "X-User-ID"
	// UserKey is the echo context key holding the resolved domain.User.
	UserKey = "user"
	// RoleKey is the echo context key holding the user's role.
	RoleKey = "role"
)

// UserResolver maps a user id to a team member.
type UserResolver interface {
	Resolve(ctx context.Context, userID string) (domain.User, error)
}

// Identify resolves the X-User-ID header and injects the user and role into
// context. Requests without a resolvable user are rejected with 401.
func Identify(users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderUserID+" header")
			}

			user, err := users.Resolve(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}

			c.Set(UserKey, user)
			c.Set(RoleKey, user.Role)

			return next(c)
		}
	}
}

// UserFrom returns the user injected by Identify.
func UserFrom(c echo.Context) (domain.User, bool) {
	u, ok := c.Get(UserKey).(domain.User)
	return u, ok
}
