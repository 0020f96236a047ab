package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kikelara/kikelara-backend-go/mailer"
	"github.com/kikelara/kikelara-backend-go/storage"
)

// DefaultDeliveryFee is the server-side fee applied when the pricing
// document has no answer and when seeding a fresh data dir.
const DefaultDeliveryFee = 5000

var (
	store     *storage.Store
	mail      *mailer.Mailer
	startedAt = time.Now()
)

// Init wires the handlers to their collaborators. Must be called before
// any route is served.
func Init(s *storage.Store, m *mailer.Mailer) {
	store = s
	mail = m
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
