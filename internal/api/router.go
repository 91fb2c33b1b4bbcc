package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devmanager/dev-manager/internal/api/handler"
	"github.com/devmanager/dev-manager/internal/api/middleware"
	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
	healthhandlers "github.com/devmanager/dev-manager/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Auth     ports.AuthService
	Clients  ports.ClientService
	Projects ports.ProjectService
	Activity ports.ActivityService
	Recorder ports.ActivityRecorder

	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("devmanager"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	clientHandler := handler.NewClientHandler(deps.Clients)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	activityHandler := handler.NewActivityHandler(deps.Activity)

	authMW := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	auditMW := middleware.ActivityLog(deps.Recorder)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register, authMW, adminOnly, auditMW)
	auth.GET("/profile", authHandler.Profile, authMW)
	auth.POST("/change-password", authHandler.ChangePassword, authMW, auditMW)
	auth.GET("/activities", activityHandler.List, authMW)

	// --- Client routes ---
	clients := e.Group("/api/clients", authMW, auditMW)
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Project routes ---
	projects := e.Group("/api/projects", authMW, auditMW)
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	// --- Health endpoints (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler(deps.Mongo)
	readinessHandler := healthhandlers.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/api/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/api/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
