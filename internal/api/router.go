package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/agencyos/order-desk/docs"
	"github.com/agencyos/order-desk/internal/api/handler"
	"github.com/agencyos/order-desk/internal/api/middleware"
	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built on.
type Deps struct {
	Auth         ports.AuthService
	Orders       ports.OrderService
	Slots        ports.SlotStore
	Backend      string
	PollInterval time.Duration
	Logger       zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry, which also holds the domain counters.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(requestLoggerConfig(deps.Logger)))
	e.Use(metricsMiddleware(deps.Registry))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	viewHandler := handler.NewViewHandler(deps.Orders, deps.PollInterval, deps.Logger)
	identify := middleware.Identify(deps.Auth)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Team ---
	users := e.Group("/v1/users", identify)
	users.GET("", authHandler.Users)
	users.GET("/developers", authHandler.Developers)

	// --- Service orders ---
	orders := e.Group("/v1/orders", identify)
	orders.GET("", orderHandler.List)
	orders.POST("", orderHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)
	orders.POST("/:id/messages", orderHandler.SendMessage)

	// --- Views ---
	v1 := e.Group("/v1", identify)
	v1.GET("/dashboard", viewHandler.Dashboard)
	v1.GET("/board", viewHandler.Board)
	v1.GET("/board/stream", viewHandler.BoardStream)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Backend, deps.Slots)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the slot backend up?

	// --- Ops ---
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware("orderdesk")
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "orderdesk",
		Registerer: reg,
	})
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

func requestLoggerConfig(log zerolog.Logger) echomiddleware.RequestLoggerConfig {
	return echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}
}
