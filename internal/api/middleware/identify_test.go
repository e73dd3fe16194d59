package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/agencyos/order-desk/internal/core/domain"
)

type stubResolver map[string]domain.User

func (s stubResolver) Resolve(_ context.Context, id string) (domain.User, error) {
	u, ok := s[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

var team = stubResolver{
	"u1": {ID: "u1", Name: "Carlos Dono", Role: domain.RoleAdmin},
}

func TestIdentify_InjectsUser(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
	req.Header.Set(HeaderUserID, "u1")
	c := e.NewContext(req, httptest.NewRecorder())

	var got domain.User
	handler := Identify(team)(func(c echo.Context) error {
		got, _ = UserFrom(c)
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("expected u1 in context, got %+v", got)
	}
	if role, _ := c.Get(RoleKey).(domain.Role); role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN role in context, got %v", c.Get(RoleKey))
	}
}

func TestIdentify_Rejects(t *testing.T) {
	for name, header := range map[string]string{"missing": "", "unknown": "u42"} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
			if header != "" {
				req.Header.Set(HeaderUserID, header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			handler := Identify(team)(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			err := handler(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 HTTPError, got %v", err)
			}
		})
	}
}
