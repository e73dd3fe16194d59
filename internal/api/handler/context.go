package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencyos/order-desk/internal/api/middleware"
	"github.com/agencyos/order-desk/internal/core/domain"
)

// ctxUser returns the acting user injected by the Identify middleware. A
// missing user means the route was mounted without Identify; reject with 401.
func ctxUser(c echo.Context) (domain.User, error) {
	user, ok := middleware.UserFrom(c)
	if !ok || user.ID == "" {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "missing acting user")
	}
	return user, nil
}
