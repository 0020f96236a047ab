package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health reports process liveness and uptime in seconds.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"ok":     true,
		"uptime": time.Since(startedAt).Seconds(),
	})
}
