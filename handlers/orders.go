package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kikelara/kikelara-backend-go/metrics"
	"github.com/kikelara/kikelara-backend-go/models"
	"github.com/kikelara/kikelara-backend-go/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SubmitOrder is the public checkout endpoint. The payload is adapted
// into the canonical order shape and appended to the orders document.
func SubmitOrder(c echo.Context) error {
	var payload models.OrderPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid payload"})
	}

	now := time.Now()
	order := models.OrderFromPayload(payload, utils.NewID(now), now)

	orders := store.Orders()
	orders = append(orders, order)
	if err := store.WriteOrders(orders); err != nil {
		log.Error().Err(err).Str("reference", order.Reference).Msg("failed to save order")
		metrics.OrdersSubmitted.WithLabelValues("failed").Inc()
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to save order"})
	}

	log.Info().Str("reference", order.Reference).Int("total", order.Total).Msg("order received")
	metrics.OrdersSubmitted.WithLabelValues("saved").Inc()
	return c.JSON(http.StatusOK, map[string]any{"success": true, "order": order})
}

// ListOrders returns orders for the admin dashboard, optionally filtered
// by exact status and a free-text query over reference/name/phone/email.
func ListOrders(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	q := strings.TrimSpace(c.QueryParam("q"))

	out := []models.Order{}
	for _, o := range store.Orders() {
		if status != "" && string(o.Status) != status {
			continue
		}
		if !o.MatchesQuery(q) {
			continue
		}
		out = append(out, o)
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateOrderStatus moves an order through its lifecycle. Status is the
// only mutable field of a stored order.
func UpdateOrderStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Missing orderId or status"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Missing orderId or status"})
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid status"})
	}

	orders := store.Orders()
	for i := range orders {
		if orders[i].ID != orderID {
			continue
		}
		orders[i].Status = status
		if err := store.WriteOrders(orders); err != nil {
			log.Error().Err(err).Int64("orderId", orderID).Msg("failed to update order status")
			return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to update status"})
		}
		return c.JSON(http.StatusOK, map[string]any{"success": true, "order": orders[i]})
	}

	return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "Order not found"})
}
