package middleware

import (
	"net/http"
	"strings"

	"github.com/kikelara/kikelara-backend-go/utils"
	"github.com/labstack/echo/v4"
)

// RequireAdmin gates admin-only routes behind the signed bearer token.
// Missing, malformed, tampered or expired tokens all produce 401 so the
// client can discard its cached token and return to login.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "Unauthorized"})
		}

		claims, err := utils.ValidateAdminToken(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "Unauthorized"})
		}

		c.Set("admin", claims)
		return next(c)
	}
}
