package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"userdir/internal/model"
)

// ContextKey is where the guard stores the decoded claims on the request
// context.
const ContextKey = "user"

// Guard returns the access-control middleware for protected routes.
// A request without a bearer token is rejected 401 "Unauthorized"; a
// request whose token fails verification is rejected 401 "Invalid Token".
// On success the decoded claims are attached to the request context.
func Guard(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, ErrInvalidToken) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Token")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		},
	})
}

// RequireRoles gates a route to callers whose decoded role is in the
// allowed set. An empty set admits any authenticated identity.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			if len(roles) == 0 {
				return next(c)
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Forbidden: Insufficient privileges")
		}
	}
}

// ClaimsFrom extracts the decoded claims the guard stored on the context.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok
}
