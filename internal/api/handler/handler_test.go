package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agencyos/order-desk/internal/api/middleware"
	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/ports"
	"github.com/agencyos/order-desk/mocks"
)

var (
	fixedNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	manager  = domain.User{ID: "u2", Name: "Mariana Gestora", Role: domain.RoleManager}
	dev      = domain.User{ID: "u3", Name: "João Dev", Role: domain.RoleDeveloper}
)

func newContext(method, target, body string, actor *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.UserKey, *actor)
		c.Set(middleware.RoleKey, actor.Role)
	}
	return c, rec
}

func pricedOrder() domain.ServiceOrder {
	p := 5000.0
	return domain.ServiceOrder{
		ID:           "OS-1001",
		Title:        "E-commerce Redesign",
		Priority:     domain.PriorityHigh,
		Status:       domain.StatusInProgress,
		Deadline:     fixedNow.Add(-time.Hour),
		AssignedToID: "u3",
		Price:        &p,
		Messages:     []domain.Message{{ID: "m1", SenderID: "u2", Content: "urgent", Type: domain.MessageText}},
	}
}

// ---------------------------------------------------------------------------
// AuthHandler
// ---------------------------------------------------------------------------

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthService(ctrl)
	svc.EXPECT().Login(gomock.Any(), gomock.Any()).Times(0)

	c, _ := newContext(http.MethodPost, "/auth/login", "not-json", nil)
	err := NewAuthHandler(svc).Login(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAuthHandler_Login_MissingEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthService(ctrl)
	svc.EXPECT().Login(gomock.Any(), gomock.Any()).Times(0)

	c, _ := newContext(http.MethodPost, "/auth/login", `{}`, nil)
	err := NewAuthHandler(svc).Login(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnprocessableEntity, he.Code)
	require.Equal(t, "email is required", he.Message)
}

func TestAuthHandler_Developers(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthService(ctrl)
	svc.EXPECT().Developers(gomock.Any()).Return([]domain.User{dev})

	c, rec := newContext(http.MethodGet, "/v1/users/developers", "", &manager)
	require.NoError(t, NewAuthHandler(svc).Developers(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listUsersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "Developer", resp.Data[0].RoleLabel)
}

// ---------------------------------------------------------------------------
// OrderHandler
// ---------------------------------------------------------------------------

func TestOrderHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)
	svc.EXPECT().GetOrder(gomock.Any(), manager, "OS-1001").
		Return(&ports.OrderDetail{Order: pricedOrder(), AssigneeName: "João Dev"}, nil)

	h := NewOrderHandler(svc)
	h.now = func() time.Time { return fixedNow }

	c, rec := newContext(http.MethodGet, "/v1/orders/OS-1001", "", &manager)
	c.SetParamNames("id")
	c.SetParamValues("OS-1001")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "João Dev", resp["assignee_name"])
	require.Equal(t, "High", resp["priority_label"])
	require.Equal(t, true, resp["delayed"])
	require.Equal(t, 5000.0, resp["price"])
	require.Len(t, resp["messages"], 1)
}

func TestOrderHandler_List_HidesPricesFromDevelopers(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)
	svc.EXPECT().ListOrders(gomock.Any(), dev).Return([]domain.ServiceOrder{pricedOrder()})

	c, rec := newContext(http.MethodGet, "/v1/orders", "", &dev)
	require.NoError(t, NewOrderHandler(svc).List(c))

	var resp listOrdersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	require.Nil(t, resp.Data[0].Price)
}

func TestOrderHandler_SendMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)
	svc.EXPECT().
		SendMessage(gomock.Any(), dev, "OS-1001", ports.SendMessageInput{Content: "done!", FileURL: "https://cdn.example.com/a.png"}).
		Return(pricedOrder(), nil)

	c, rec := newContext(http.MethodPost, "/v1/orders/OS-1001/messages", `{"content":"done!","file_url":"https://cdn.example.com/a.png"}`, &dev)
	c.SetParamNames("id")
	c.SetParamValues("OS-1001")

	require.NoError(t, NewOrderHandler(svc).SendMessage(c))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestOrderHandler_SendMessage_BadFileURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)
	svc.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	c, _ := newContext(http.MethodPost, "/v1/orders/OS-1001/messages", `{"content":"x","file_url":"not a url"}`, &dev)
	err := NewOrderHandler(svc).SendMessage(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnprocessableEntity, he.Code)
}

func TestOrderHandler_Create_MapsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)

	deadline := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	price := 1200.0
	want := ports.CreateOrderInput{
		Title:        "Logo",
		Client:       "Bakery",
		Priority:     domain.PriorityLow,
		Deadline:     deadline,
		AssignedToID: "u4",
		Price:        &price,
	}
	svc.EXPECT().CreateOrder(gomock.Any(), manager, want).Return(domain.ServiceOrder{ID: "OS-1004"}, nil)

	body := `{"title":"Logo","client":"Bakery","priority":"LOW","deadline":"2026-06-30T00:00:00Z","assigned_to_id":"u4","price":1200}`
	c, rec := newContext(http.MethodPost, "/v1/orders", body, &manager)

	require.NoError(t, NewOrderHandler(svc).Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestOrderHandler_RequiresIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)

	c, _ := newContext(http.MethodGet, "/v1/orders", "", nil)
	err := NewOrderHandler(svc).List(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

// ---------------------------------------------------------------------------
// ViewHandler
// ---------------------------------------------------------------------------

func TestViewHandler_Dashboard_Developer(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)
	svc.EXPECT().ListOrders(gomock.Any(), dev).Return([]domain.ServiceOrder{pricedOrder()})

	c, rec := newContext(http.MethodGet, "/v1/dashboard", "", &dev)
	require.NoError(t, NewViewHandler(svc, time.Second, zerolog.Nop()).Dashboard(c))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Development dashboard", resp["title"])
	require.NotContains(t, resp, "revenue")
	require.Len(t, resp["my_orders"], 1)
}

func TestViewHandler_Board(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)
	svc.EXPECT().ListOrders(gomock.Any(), manager).Return([]domain.ServiceOrder{pricedOrder()})

	c, rec := newContext(http.MethodGet, "/v1/board", "", &manager)
	require.NoError(t, NewViewHandler(svc, time.Second, zerolog.Nop()).Board(c))

	var resp boardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Columns, 3)
	require.Equal(t, "TODO", resp.Columns[0].Status)
	require.Equal(t, 1, resp.Columns[1].Count)
	require.Equal(t, "OS-1001", resp.Columns[1].Orders[0].ID)
}

func TestViewHandler_BoardStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	reads := 0
	svc.EXPECT().ListOrders(gomock.Any(), manager).DoAndReturn(func(context.Context, domain.User) []domain.ServiceOrder {
		reads++
		if reads == 2 {
			cancel()
		}
		return []domain.ServiceOrder{pricedOrder()}
	}).MinTimes(2)

	c, rec := newContext(http.MethodGet, "/v1/board/stream", "", &manager)
	c.SetRequest(c.Request().WithContext(ctx))

	done := make(chan error, 1)
	go func() { done <- NewViewHandler(svc, 5*time.Millisecond, zerolog.Nop()).BoardStream(c) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("stream did not end after the client went away")
	}

	require.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	require.GreaterOrEqual(t, strings.Count(rec.Body.String(), "event: board\n"), 1)
	require.Contains(t, rec.Body.String(), `"status":"IN_PROGRESS"`)
}
