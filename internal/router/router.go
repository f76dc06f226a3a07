package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/workshop-registration/internal/config"
	"github.com/iliyamo/workshop-registration/internal/handler"
	"github.com/iliyamo/workshop-registration/internal/middleware"
	"github.com/iliyamo/workshop-registration/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// The health check is used by load balancers to verify the service is
// up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login and the refresh flows live under /api/v1/auth and need no
// session; /api/v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh token in the body, so it works without
	// the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/api/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints.  The
// upcoming-workshops list is the hot read path and sits behind the
// Redis response cache; with a nil client the cache is a no-op.
func RegisterPublic(e *echo.Echo, w *handler.WorkshopHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/api/v1/workshops/upcoming", w.ListUpcoming, cache)
}

// RegisterWorkshops registers workshop management endpoints.
// Everything except the single-workshop read is admin-only.
func RegisterWorkshops(e *echo.Echo, w *handler.WorkshopHandler, jwtSecret string) {
	auth := e.Group("/api/v1", middleware.JWTAuth(jwtSecret))

	admin := middleware.RequireRole(model.RoleAdmin)
	any := middleware.RequireRole(model.RoleAdmin, model.RoleUser)

	auth.GET("/workshops", w.ListAll, admin)
	auth.POST("/workshops", w.Create, admin)
	auth.GET("/workshops/:code", w.GetByCode, any)
	auth.PUT("/workshops/:code", w.Update, admin)
	auth.DELETE("/workshops/:code", w.Delete, admin)
}

// RegisterRegistrations registers the admission endpoints.  Users
// register themselves; administration of registrations is admin-only.
func RegisterRegistrations(e *echo.Echo, r *handler.RegistrationHandler, jwtSecret string) {
	auth := e.Group("/api/v1", middleware.JWTAuth(jwtSecret))

	admin := middleware.RequireRole(model.RoleAdmin)
	user := middleware.RequireRole(model.RoleUser)

	auth.GET("/registrations", r.ListAll, admin)
	auth.GET("/registrations/:code", r.ListByWorkshop, admin)
	auth.POST("/registrations", r.Register, user)
	auth.DELETE("/registrations/:id", r.Unregister, admin)
	auth.GET("/user/registrations", r.ListMine, user)
}
