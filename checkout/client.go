// Package checkout is the storefront-side counterpart of the backend:
// it loads delivery pricing through a fallback chain that keeps checkout
// working during backend outages, builds validated order records, and
// submits them with a local backup when the server cannot be reached.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/kikelara/kikelara-backend-go/models"
	"github.com/rs/zerolog/log"
)

// FallbackDefaultFee is charged when every pricing source is down and
// the synthesized document has no answer.
const FallbackDefaultFee = 2000

// DefaultDatasetURL is the public states -> localities dataset used as
// the third rung of the fallback chain. It returns a JSON object mapping
// each state name to its list of localities.
const DefaultDatasetURL = "https://nga-states-lga.onrender.com/fetch"

// Client talks to the storefront backend and keeps local backup files
// (the pricing cache and the failed-order backup) under StateDir.
type Client struct {
	BaseURL    string
	DatasetURL string
	StateDir   string
	HTTPClient *http.Client
}

// NewClient builds a checkout client keeping its cache and backups
// under stateDir.
func NewClient(baseURL, stateDir string) *Client {
	return &Client{
		BaseURL:    baseURL,
		DatasetURL: DefaultDatasetURL,
		StateDir:   stateDir,
		HTTPClient: http.DefaultClient,
	}
}

func (c *Client) cachePath() string  { return filepath.Join(c.StateDir, "deliveryPricing_backup.json") }
func (c *Client) backupPath() string { return filepath.Join(c.StateDir, "orders_backup.json") }

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-store")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("POST %s: status %d", url, res.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) writeLocal(path string, v any) error {
	if err := os.MkdirAll(c.StateDir, 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (c *Client) saveCache(doc models.PricingDocument) {
	if err := c.writeLocal(c.cachePath(), doc); err != nil {
		log.Warn().Err(err).Msg("could not save pricing backup")
	}
}

// LoadPricing walks the fallback chain until one source yields a
// document: server -> local cache -> public dataset -> hardcoded
// default. Every successful fetch overwrites the local cache for next
// time. It never returns an error: checkout must not block on pricing
// downtime.
func (c *Client) LoadPricing(ctx context.Context) models.PricingDocument {
	var payload models.PricingPayload
	err := c.getJSON(ctx, c.BaseURL+"/delivery-pricing", &payload)
	if err == nil {
		doc := models.PricingFromPayload(payload, FallbackDefaultFee)
		c.saveCache(doc)
		return doc
	}
	log.Warn().Err(err).Msg("pricing server failed, trying backup")

	if doc, ok := c.loadCache(); ok {
		return doc
	}

	doc, err := c.pricingFromDataset(ctx)
	if err == nil {
		c.saveCache(doc)
		return doc
	}
	log.Warn().Err(err).Msg("geo dataset failed, using hardcoded default")

	return models.NormalizePricing(models.PricingDocument{DefaultFee: FallbackDefaultFee}, FallbackDefaultFee)
}

func (c *Client) loadCache() (models.PricingDocument, bool) {
	raw, err := os.ReadFile(c.cachePath())
	if err != nil {
		return models.PricingDocument{}, false
	}
	var doc models.PricingDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.PricingDocument{}, false
	}
	return models.NormalizePricing(doc, FallbackDefaultFee), true
}

// pricingFromDataset synthesizes a pricing document from the public
// states -> localities dataset, every locality at the fallback fee.
func (c *Client) pricingFromDataset(ctx context.Context) (models.PricingDocument, error) {
	dataset := map[string][]string{}
	if err := c.getJSON(ctx, c.DatasetURL, &dataset); err != nil {
		return models.PricingDocument{}, err
	}

	doc := models.PricingDocument{DefaultFee: FallbackDefaultFee}
	for state, localities := range dataset {
		st := models.State{Name: state}
		for _, l := range localities {
			st.Cities = append(st.Cities, models.City{Name: l, Fee: FallbackDefaultFee})
		}
		doc.States = append(doc.States, st)
	}
	return models.NormalizePricing(doc, FallbackDefaultFee), nil
}
