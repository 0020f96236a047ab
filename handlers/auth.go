package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/kikelara/kikelara-backend-go/config"
	"github.com/kikelara/kikelara-backend-go/metrics"
	"github.com/kikelara/kikelara-backend-go/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Code string `json:"code"`
}

// codeMatches checks the submitted admin code. When ADMIN_CODE_HASH is
// configured the stored value is a bcrypt hash; otherwise the plain
// ADMIN_CODE is compared in constant time.
func codeMatches(code string) bool {
	if hash := config.GetEnv("ADMIN_CODE_HASH", ""); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
	}
	want := config.GetEnv("ADMIN_CODE", "4567")
	return subtle.ConstantTimeCompare([]byte(code), []byte(want)) == 1
}

// AdminLogin exchanges the shared admin code for a signed bearer token.
func AdminLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid payload"})
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Missing code"})
	}

	if !codeMatches(code) {
		metrics.AdminLogins.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid code"})
	}

	token, err := utils.GenerateAdminToken(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to sign admin token")
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to issue token"})
	}

	metrics.AdminLogins.WithLabelValues("accepted").Inc()
	return c.JSON(http.StatusOK, map[string]any{"success": true, "token": token})
}

// AdminMe is the token liveness check the admin pages poll on load.
func AdminMe(c echo.Context) error {
	claims, ok := c.Get("admin").(*utils.AdminClaims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "admin": claims})
}
