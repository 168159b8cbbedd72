package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"userdir/internal/auth"
	"userdir/internal/db"
	"userdir/internal/handler"
	"userdir/internal/metrics"
	"userdir/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	mongo *db.Mongo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	m := metrics.New("userdir")
	e.Use(m.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		if err := mongo.Ping(c.Request().Context()); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "store unreachable")
		}
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	authGroup := e.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Secured routes (require JWT authentication)
	users := e.Group("/users", auth.Guard(jwtService))

	adminOnly := auth.RequireRoles(model.RoleAdmin)
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// Admin-or-self is enforced in the service layer.
	users.GET("/:id", userHandler.Get)
}
