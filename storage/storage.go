package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kikelara/kikelara-backend-go/models"
	"github.com/rs/zerolog/log"
)

// Store is the flat-file JSON persistence layer. One file per document
// type, rewritten atomically (write temp, rename) on every mutation.
// There is no cross-writer locking: last writer wins, which is acceptable
// at a single admin plus occasional checkouts.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating it if needed and seeding
// the document files that must exist at boot.
func New(dir string, seedFee int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dir: dir}

	if err := ensureFile(s.ordersPath(), []models.Order{}); err != nil {
		return nil, err
	}
	if err := ensureFile(s.messagesPath(), []models.Message{}); err != nil {
		return nil, err
	}
	if err := ensureFile(s.productsPath(), []models.Product{}); err != nil {
		return nil, err
	}
	if err := ensureFile(s.pricingPath(), models.SeedNigeriaPricing(seedFee)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ordersPath() string   { return filepath.Join(s.dir, "orders.json") }
func (s *Store) pricingPath() string  { return filepath.Join(s.dir, "deliveryPricing.json") }
func (s *Store) messagesPath() string { return filepath.Join(s.dir, "messages.json") }
func (s *Store) productsPath() string { return filepath.Join(s.dir, "products.json") }

func ensureFile(path string, defaultValue any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return writeJSONAtomic(path, defaultValue)
}

// readJSON decodes path into out. A missing or corrupt file is not an
// error: out is left at the caller-supplied fallback value instead.
func readJSON(path string, out any) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn().Str("file", path).Err(err).Msg("corrupt json document, using fallback")
	}
}

// writeJSONAtomic writes the document to a temp file in the same
// directory and renames it over the target, so readers never observe a
// partially written file.
func writeJSONAtomic(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Orders returns all stored orders, oldest first.
func (s *Store) Orders() []models.Order {
	orders := []models.Order{}
	readJSON(s.ordersPath(), &orders)
	return orders
}

// WriteOrders replaces the orders document.
func (s *Store) WriteOrders(orders []models.Order) error {
	return writeJSONAtomic(s.ordersPath(), orders)
}

// Pricing returns the stored pricing document, already normalized. A
// missing or corrupt file yields the Nigeria seed at the given fee.
func (s *Store) Pricing(fallbackFee int) models.PricingDocument {
	doc := models.SeedNigeriaPricing(fallbackFee)
	readJSON(s.pricingPath(), &doc)
	return models.NormalizePricing(doc, fallbackFee)
}

// WritePricing replaces the pricing document.
func (s *Store) WritePricing(doc models.PricingDocument) error {
	return writeJSONAtomic(s.pricingPath(), doc)
}

// Messages returns all stored contact messages.
func (s *Store) Messages() []models.Message {
	messages := []models.Message{}
	readJSON(s.messagesPath(), &messages)
	return messages
}

// WriteMessages replaces the messages document.
func (s *Store) WriteMessages(messages []models.Message) error {
	return writeJSONAtomic(s.messagesPath(), messages)
}

// Products returns the product catalog.
func (s *Store) Products() []models.Product {
	products := []models.Product{}
	readJSON(s.productsPath(), &products)
	return products
}

// WriteProducts replaces the product catalog.
func (s *Store) WriteProducts(products []models.Product) error {
	return writeJSONAtomic(s.productsPath(), products)
}
