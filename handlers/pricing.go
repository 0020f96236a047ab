package handlers

import (
	"net/http"
	"time"

	"github.com/kikelara/kikelara-backend-go/metrics"
	"github.com/kikelara/kikelara-backend-go/models"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// GetDeliveryPricing is the public read the checkout page depends on.
func GetDeliveryPricing(c echo.Context) error {
	return c.JSON(http.StatusOK, store.Pricing(DefaultDeliveryFee))
}

// AdminGetPricing returns the pricing document for the admin editor.
func AdminGetPricing(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"pricing": store.Pricing(DefaultDeliveryFee),
	})
}

// AdminPutPricing replaces the whole pricing document. The payload is
// re-normalized and the updatedAt timestamp refreshed on every write.
func AdminPutPricing(c echo.Context) error {
	var payload models.PricingPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid payload"})
	}

	doc := models.PricingFromPayload(payload, DefaultDeliveryFee)
	doc.Touch(time.Now())

	if err := store.WritePricing(doc); err != nil {
		log.Error().Err(err).Msg("failed to save pricing")
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to save pricing"})
	}

	metrics.PricingUpdates.Inc()
	return c.JSON(http.StatusOK, map[string]any{"success": true, "pricing": doc})
}

type seedRequest struct {
	Fee *float64 `json:"fee"`
}

// AdminSeedPricing replaces the document with the canonical Nigeria
// state/capital list, every entry at the requested fee.
func AdminSeedPricing(c echo.Context) error {
	var req seedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid payload"})
	}

	fee := DefaultDeliveryFee
	if req.Fee != nil && *req.Fee >= 0 {
		fee = int(*req.Fee + 0.5)
	}

	doc := models.SeedNigeriaPricing(fee)
	doc.Touch(time.Now())

	if err := store.WritePricing(doc); err != nil {
		log.Error().Err(err).Msg("failed to seed pricing")
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to save pricing"})
	}

	metrics.PricingUpdates.Inc()
	return c.JSON(http.StatusOK, map[string]any{"success": true, "pricing": doc})
}
