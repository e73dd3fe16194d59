package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/ports"
)

// OrderHandler handles HTTP requests for service order operations.
type OrderHandler struct {
	service ports.OrderService
	now     func() time.Time
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service, now: time.Now}
}

// List handles GET /v1/orders.
//
// @Summary      List service orders visible to the acting user
// @Tags         orders
// @Produce      json
// @Param        X-User-ID  header    string  true  "Acting user id"
// @Success      200        {object}  listOrdersResponse
// @Failure      401        {object}  errorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	orders := h.service.ListOrders(c.Request().Context(), user)
	return c.JSON(http.StatusOK, listOrdersResponse{
		Data:  toOrderResponses(orders, user, h.now()),
		Total: len(orders),
	})
}

// Get handles GET /v1/orders/:id.
//
// @Summary      Get a service order with its chat thread
// @Tags         orders
// @Produce      json
// @Param        X-User-ID  header    string  true  "Acting user id"
// @Param        id         path      string  true  "Order id (e.g. OS-1001)"
// @Success      200        {object}  orderDetailResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetOrder(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orderDetailResponse{
		orderResponse: toOrderResponse(detail.Order, user, h.now()),
		AssigneeName:  detail.AssigneeName,
	})
}

// Create handles POST /v1/orders.
//
// @Summary      Create a service order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string              true  "Acting user id"
// @Param        body       body      createOrderRequest  true  "Order details"
// @Success      201        {object}  orderResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.CreateOrder(c.Request().Context(), user, toCreateOrderInput(req))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/orders/"+order.ID)
	return c.JSON(http.StatusCreated, toOrderResponse(order, user, h.now()))
}

// UpdateStatus handles PATCH /v1/orders/:id/status.
//
// @Summary      Move a service order to another status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string               true  "Acting user id"
// @Param        id         path      string               true  "Order id"
// @Param        body       body      updateStatusRequest  true  "New status"
// @Success      200        {object}  orderResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.ChangeStatus(c.Request().Context(), user, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderResponse(order, user, h.now()))
}

// SendMessage handles POST /v1/orders/:id/messages.
//
// @Summary      Post a chat message on a service order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string              true  "Acting user id"
// @Param        id         path      string              true  "Order id"
// @Param        body       body      sendMessageRequest  true  "Message"
// @Success      201        {object}  orderResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/orders/{id}/messages [post]
func (h *OrderHandler) SendMessage(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.SendMessage(c.Request().Context(), user, c.Param("id"), ports.SendMessageInput{
		Content: req.Content,
		FileURL: req.FileURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toOrderResponse(order, user, h.now()))
}
