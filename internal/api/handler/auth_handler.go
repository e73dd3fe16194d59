package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencyos/order-desk/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login signs a team member in by email. The returned id is sent back as the
// X-User-ID header on subsequent requests.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login email"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Users handles GET /v1/users.
//
// @Summary      List team members
// @Tags         users
// @Produce      json
// @Param        X-User-ID  header    string  true  "Acting user id"
// @Success      200        {object}  listUsersResponse
// @Failure      401        {object}  errorResponse
// @Router       /v1/users [get]
func (h *AuthHandler) Users(c echo.Context) error {
	users := h.authService.Users(c.Request().Context())
	return c.JSON(http.StatusOK, listUsersResponse{Data: toUserResponses(users)})
}

// Developers handles GET /v1/users/developers.
//
// @Summary      List developers
// @Tags         users
// @Produce      json
// @Param        X-User-ID  header    string  true  "Acting user id"
// @Success      200        {object}  listUsersResponse
// @Failure      401        {object}  errorResponse
// @Router       /v1/users/developers [get]
func (h *AuthHandler) Developers(c echo.Context) error {
	devs := h.authService.Developers(c.Request().Context())
	return c.JSON(http.StatusOK, listUsersResponse{Data: toUserResponses(devs)})
}
