// Package server assembles the demo backend: an echo application serving
// the same REST contract as the production booking API over seeded data.
// It exists as a feature-flagged stand-in for local work and tests and is
// wired in explicitly, never as a silent fallback inside the login path.
package server

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/demo/auth"
	"github.com/barberbook/admin-console/internal/demo/middleware"
	"github.com/barberbook/admin-console/internal/demo/store"
)

// Deps carries everything the router needs. Mongo and Redis clients are nil
// when the demo server runs fully in-memory.
type Deps struct {
	Auth      *auth.Service
	Store     store.Store
	JWTSecret string
	Log       zerolog.Logger

	Mongo *mongo.Client
	Redis *redis.Client
}

// managerRoles may mutate every resource; bookings additionally allow
// stylists, mirroring the console's two-tier capability split.
var (
	staffRoles   = []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleStylist}
	managerRoles = []domain.Role{domain.RoleAdmin, domain.RoleManager}
	bookingRoles = staffRoles
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("barberbook"))

	authMW := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	authHandler := NewAuthHandler(deps.Auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout, authMW)
	e.GET("/auth/me", authHandler.Me, authMW)

	// --- Resource routes ---
	v1 := e.Group("/v1", authMW)
	mountResource(v1, NewResourceHandler(deps.Store, "bookings").WithUpdateGuard(bookingTransitionGuard), bookingRoles)
	mountResource(v1, NewResourceHandler(deps.Store, "customers"), managerRoles)
	mountResource(v1, NewResourceHandler(deps.Store, "payments"), managerRoles)
	mountResource(v1, NewResourceHandler(deps.Store, "reviews"), managerRoles)
	mountResource(v1, NewResourceHandler(deps.Store, "services"), managerRoles)
	mountResource(v1, NewResourceHandler(deps.Store, "stylists"), managerRoles)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := NewHealthHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// mountResource registers the list/get routes for all staff and the mutation
// routes behind the given role set.
func mountResource(g *echo.Group, h *ResourceHandler, mutators []domain.Role) {
	rbac := middleware.RBAC(mutators...)

	g.GET("/"+h.name, h.List, middleware.RBAC(staffRoles...))
	g.GET("/"+h.name+"/:id", h.Get, middleware.RBAC(staffRoles...))
	g.POST("/"+h.name, h.Create, rbac)
	g.PUT("/"+h.name+"/:id", h.Update, rbac)
	g.DELETE("/"+h.name+"/:id", h.Delete, rbac)
}

// bookingTransitionGuard rejects status changes the booking lifecycle does
// not allow. Updates that keep the status untouched pass through.
func bookingTransitionGuard(existing, update store.Doc) error {
	next, ok := update["status"].(string)
	if !ok || next == "" {
		return nil
	}
	current, _ := existing["status"].(string)
	if next == current {
		return nil
	}
	if !domain.BookingStatus(current).CanTransitionTo(domain.BookingStatus(next)) {
		return fmt.Errorf("booking status cannot change from %s to %s", current, next)
	}
	return nil
}
