package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/ports"
	"github.com/agencyos/order-desk/internal/core/view"
	"github.com/agencyos/order-desk/internal/pkg/metrics"
)

// ViewHandler serves the derived dashboard and kanban views.
type ViewHandler struct {
	service      ports.OrderService
	pollInterval time.Duration
	now          func() time.Time
	log          zerolog.Logger
}

func NewViewHandler(service ports.OrderService, pollInterval time.Duration, log zerolog.Logger) *ViewHandler {
	return &ViewHandler{service: service, pollInterval: pollInterval, now: time.Now, log: log}
}

// Dashboard handles GET /v1/dashboard.
//
// @Summary      Dashboard figures for the acting user
// @Tags         views
// @Produce      json
// @Param        X-User-ID  header    string  true  "Acting user id"
// @Success      200        {object}  view.Dashboard
// @Failure      401        {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *ViewHandler) Dashboard(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	orders := h.service.ListOrders(c.Request().Context(), user)
	return c.JSON(http.StatusOK, view.BuildDashboard(user, orders, h.now()))
}

// Board handles GET /v1/board.
//
// @Summary      Kanban board for the acting user
// @Tags         views
// @Produce      json
// @Param        X-User-ID  header    string  true  "Acting user id"
// @Success      200        {object}  boardResponse
// @Failure      401        {object}  errorResponse
// @Router       /v1/board [get]
func (h *ViewHandler) Board(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	orders := h.service.ListOrders(c.Request().Context(), user)
	return c.JSON(http.StatusOK, toBoardResponse(view.BuildBoard(orders), user, h.now()))
}

// BoardStream handles GET /v1/board/stream. It sends the board as a
// server-sent "board" event immediately and again every poll interval until
// the client goes away.
//
// @Summary      Stream kanban board refreshes
// @Tags         views
// @Produce      text/event-stream
// @Param        X-User-ID  header    string  true  "Acting user id"
// @Success      200        {object}  boardResponse
// @Failure      401        {object}  errorResponse
// @Router       /v1/board/stream [get]
func (h *ViewHandler) BoardStream(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	metrics.BoardStreamClients.Inc()
	defer metrics.BoardStreamClients.Dec()

	ctx := c.Request().Context()
	poller := view.NewPoller(h.pollInterval,
		func(ctx context.Context) []domain.ServiceOrder { return h.service.ListOrders(ctx, user) },
		func(orders []domain.ServiceOrder) {
			if err := writeEvent(res, "board", toBoardResponse(view.BuildBoard(orders), user, h.now())); err != nil {
				h.log.Debug().Err(err).Str("user_id", user.ID).Msg("board stream write failed")
			}
		},
		h.log,
	)
	poller.Start(ctx)
	defer poller.Stop()

	<-ctx.Done()
	return nil
}

func writeEvent(res *echo.Response, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
