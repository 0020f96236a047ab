package checkout

import (
	"context"
	"encoding/json"
	"os"

	"github.com/kikelara/kikelara-backend-go/models"
	"github.com/rs/zerolog/log"
)

// SubmitResult reports how an order reached safety.
type SubmitResult struct {
	// Saved is true when the backend accepted the order.
	Saved bool
	// BackedUp is true when the backend was unreachable and the order
	// was appended to the local backup file instead.
	BackedUp bool
	// ServerOrder is the order echoed back by the backend when Saved.
	ServerOrder models.Order
}

// SubmitOrder sends the order to the backend. When the backend is down
// the order is appended to the local backup file for manual
// reconciliation and the flow still counts as a success: by this point
// payment has already happened, so customer data must not be lost and
// checkout must not block. An error is returned only when both the
// backend and the local backup fail.
func (c *Client) SubmitOrder(ctx context.Context, order models.Order) (SubmitResult, error) {
	var res struct {
		Success bool         `json:"success"`
		Order   models.Order `json:"order"`
	}
	err := c.postJSON(ctx, c.BaseURL+"/orders", order, &res)
	if err == nil {
		return SubmitResult{Saved: true, ServerOrder: res.Order}, nil
	}

	log.Warn().Err(err).Str("reference", order.Reference).Msg("backend failed, saving local backup")
	if err := c.appendBackup(order); err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{BackedUp: true}, nil
}

func (c *Client) appendBackup(order models.Order) error {
	backups := []models.Order{}
	if raw, err := os.ReadFile(c.backupPath()); err == nil {
		// Best effort: a corrupt backup file starts over rather than
		// losing the current order.
		_ = json.Unmarshal(raw, &backups)
	}
	backups = append(backups, order)
	return c.writeLocal(c.backupPath(), backups)
}

// BackedUpOrders returns orders waiting for manual reconciliation.
func (c *Client) BackedUpOrders() []models.Order {
	backups := []models.Order{}
	if raw, err := os.ReadFile(c.backupPath()); err == nil {
		_ = json.Unmarshal(raw, &backups)
	}
	return backups
}
