package auth

import (
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mkotelnikov/inventory_service/internal/service"
	"github.com/mkotelnikov/inventory_service/pkg/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Middleware resolves the bearer token into caller id and role on the echo
// context. Token issuance happens elsewhere; this only verifies.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication token required")
			}

			claims, err := tokens.AccessClaimsFromToken(tokenStr, secret)
			if err != nil || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}

func RequireRole(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing role")
			}
			if !slices.Contains(required, role) {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}

// CallerIdentity rebuilds the caller from the context values set by
// Middleware.
func CallerIdentity(c echo.Context) (service.Identity, error) {
	sub, _ := c.Get(CtxUserID).(string)
	role, _ := c.Get(CtxRole).(string)

	id, err := uuid.Parse(sub)
	if err != nil || role == "" {
		return service.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid caller identity")
	}
	return service.Identity{ID: id, Role: role}, nil
}
