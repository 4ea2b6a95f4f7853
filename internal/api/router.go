package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bistroboss/ordering-system/docs"
	"github.com/bistroboss/ordering-system/internal/api/handler"
	"github.com/bistroboss/ordering-system/internal/api/middleware"
	"github.com/bistroboss/ordering-system/internal/core/ports"
)

// Dependencies carries everything the HTTP layer needs. Services are built
// by the caller so the router never owns a store connection.
type Dependencies struct {
	Log       zerolog.Logger
	Tokens    ports.TokenService
	Users     ports.UserService
	Carts     ports.CartService
	Payments  ports.PaymentService
	Checkouts ports.CheckoutService
	Health    map[string]handler.DependencyCheck
	// GuardPromotion puts PATCH /users/admin/:id behind the auth and role gates.
	GuardPromotion bool
	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(traceRequests())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORS())
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "ordering",
		Registerer: registerer,
	}))

	authGate := middleware.Auth(deps.Tokens)
	adminGate := middleware.RequireAdmin(deps.Users, deps.Log)

	authHandler := handler.NewAuthHandler(deps.Tokens)
	userHandler := handler.NewUserHandler(deps.Users)
	cartHandler := handler.NewCartHandler(deps.Carts)
	paymentHandler := handler.NewPaymentHandler(deps.Payments, deps.Checkouts)
	healthHandler := handler.NewHealthHandler(deps.Health)

	// --- Identity ---
	e.POST("/jwt", authHandler.IssueToken)

	// --- Users ---
	e.GET("/users", userHandler.List, authGate, adminGate)
	e.POST("/users", userHandler.Create)
	e.GET("/users/admin/:email", userHandler.AdminStatus, authGate)
	if deps.GuardPromotion {
		e.PATCH("/users/admin/:id", userHandler.Promote, authGate, adminGate)
	} else {
		e.PATCH("/users/admin/:id", userHandler.Promote)
	}

	// --- Menu & carts ---
	e.GET("/allMenus", cartHandler.Menu)
	e.GET("/carts", cartHandler.List, authGate)
	e.GET("/carts/:id", cartHandler.Get)
	e.POST("/carts", cartHandler.Add)
	e.DELETE("/carts/:id", cartHandler.Remove)

	// --- Payments ---
	e.POST("/create-payment-intent", paymentHandler.CreateIntent, authGate)
	e.POST("/payment", paymentHandler.Finalize, authGate)

	// --- Ops (no auth required) ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			if id := traceID(c); id != "" {
				evt = evt.Str("trace_id", id)
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
	})
}
