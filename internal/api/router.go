package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/estateview/realty-api/docs"
	"github.com/estateview/realty-api/internal/api/handler"
	"github.com/estateview/realty-api/internal/api/middleware"
	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/ports"
	"github.com/estateview/realty-api/internal/core/session"
	"github.com/estateview/realty-api/internal/infrastructure/config"
)

// Deps carries everything the router wires into handlers and middleware.
type Deps struct {
	Config   *config.Config
	Log      zerolog.Logger
	Codec    *session.Codec
	Auth     ports.AuthService
	Users    ports.UserService
	Listings ports.ListingService
	// Readiness lists the dependencies probed by /health/ready.
	Readiness map[string]handler.Pinger
	// Registerer receives the per-route HTTP metrics. Defaults to the
	// global Prometheus registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	cfg := d.Config

	origins, err := middleware.NewOriginPolicy(middleware.OriginConfig{
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		CredentialsEnabled: cfg.CORS.CredentialsEnabled,
		MaxAge:             cfg.CORS.MaxAge,
	}, d.Log)
	if err != nil {
		return nil, err
	}

	httpMetrics, err := echoprometheus.MiddlewareConfig{
		Namespace:  "realty",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Origin gate: before routing, body parsing and authentication ---
	e.Pre(origins.Middleware())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(httpMetrics)

	// --- Dependencies ---
	sessions := handler.NewSessionIssuer(d.Codec, handler.CookiePolicyFor(cfg.Mode() == config.ModeProduction))
	verifier := middleware.NewVerifier(d.Codec, middleware.NewExtractor(cfg.Auth.AllowQueryToken), d.Log)
	requireSession := verifier.Middleware()

	authHandler := handler.NewAuthHandler(d.Auth, sessions)
	userHandler := handler.NewUserHandler(d.Users, sessions)
	listingHandler := handler.NewListingHandler(d.Listings)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup/buyer", authHandler.SignupBuyer)
	auth.POST("/signup/seller", authHandler.SignupSeller)
	auth.POST("/signin", authHandler.Signin)
	auth.POST("/google", authHandler.Google)
	auth.GET("/signout", authHandler.Signout)

	// --- User routes: ownership is decided per operation in the user service ---
	user := e.Group("/api/user", requireSession)
	user.GET("/:id", userHandler.GetUser)
	user.PUT("/update/:id", userHandler.UpdateUser)
	user.POST("/upload/:id", userHandler.UploadAvatar)
	user.DELETE("/delete/:id", userHandler.DeleteUser)

	// --- Listing and offer routes ---
	e.DELETE("/api/listing/delete/:id", listingHandler.DeleteListing,
		requireSession, middleware.RBAC(domain.RoleSeller, domain.RoleAdmin))
	e.GET("/api/buying/user/:id", listingHandler.ListBuyings, requireSession)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
