package utils

import (
	"fmt"
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// NewID returns a millisecond-timestamp identifier, nudged forward when
// two calls land on the same millisecond so ids stay unique within a
// process. Matches the id scheme used across the stored documents.
func NewID(now time.Time) int64 {
	ms := now.UnixMilli()
	for {
		prev := lastID.Load()
		if ms <= prev {
			ms = prev + 1
		}
		if lastID.CompareAndSwap(prev, ms) {
			return ms
		}
	}
}

// NewOrderReference builds a storefront order reference, e.g.
// KIKELARA_1706371200000. Time-based, not cryptographically unique;
// collisions are accepted as negligible at human-paced order volume.
func NewOrderReference(now time.Time) string {
	return fmt.Sprintf("KIKELARA_%d", now.UnixMilli())
}
