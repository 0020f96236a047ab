package checkout_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kikelara/kikelara-backend-go/checkout"
	"github.com/kikelara/kikelara-backend-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serverPricing = `{
	"defaultFee": 3000,
	"states": [
		{"name":"Lagos","cities":[{"name":"Ikeja","fee":1500}]},
		{"name":"Oyo","cities":[{"name":"Ibadan","fee":2200}]}
	]
}`

func pricingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/delivery-pricing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(serverPricing))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func deadServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadPricingFromServer(t *testing.T) {
	srv := pricingServer(t)
	dir := t.TempDir()
	c := checkout.NewClient(srv.URL, dir)

	doc := c.LoadPricing(context.Background())

	assert.Equal(t, 3000, doc.DefaultFee)
	assert.Equal(t, 1500, doc.ResolveDeliveryFee("delivery", "Lagos", "Ikeja"))

	_, err := os.Stat(filepath.Join(dir, "deliveryPricing_backup.json"))
	assert.NoError(t, err, "successful fetch overwrites the local cache")
}

func TestLoadPricingFallsBackToCache(t *testing.T) {
	dir := t.TempDir()

	// First load against a healthy server populates the cache.
	srv := pricingServer(t)
	c := checkout.NewClient(srv.URL, dir)
	c.LoadPricing(context.Background())

	// Then the server goes away, but checkout still prices correctly.
	dead := deadServer(t)
	c2 := checkout.NewClient(dead.URL, dir)
	c2.DatasetURL = dead.URL + "/dataset"

	doc := c2.LoadPricing(context.Background())
	assert.Equal(t, 1500, doc.ResolveDeliveryFee("delivery", "Lagos", "Ikeja"))
	assert.Equal(t, 3000, doc.DefaultFee)
}

func TestLoadPricingFallsBackToDataset(t *testing.T) {
	dead := deadServer(t)
	dataset := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Lagos":["Ikeja","Yaba"],"Kano":["Dala"]}`))
	}))
	t.Cleanup(dataset.Close)

	c := checkout.NewClient(dead.URL, t.TempDir())
	c.DatasetURL = dataset.URL

	doc := c.LoadPricing(context.Background())

	require.Len(t, doc.States, 2)
	assert.Equal(t, "Kano", doc.States[0].Name, "synthesized document is sorted")
	assert.Equal(t, checkout.FallbackDefaultFee, doc.ResolveDeliveryFee("delivery", "Lagos", "Yaba"),
		"every synthesized locality carries the fallback fee")
	assert.Equal(t, checkout.FallbackDefaultFee, doc.DefaultFee)
}

func TestLoadPricingTotalFailure(t *testing.T) {
	dead := deadServer(t)
	c := checkout.NewClient(dead.URL, t.TempDir())
	c.DatasetURL = dead.URL + "/dataset"

	doc := c.LoadPricing(context.Background())

	assert.Empty(t, doc.States)
	assert.Equal(t, checkout.FallbackDefaultFee, doc.DefaultFee)
	assert.Equal(t, checkout.FallbackDefaultFee, doc.ResolveDeliveryFee("delivery", "Anywhere", "At all"))
	assert.Equal(t, 0, doc.ResolveDeliveryFee("pickup", "", ""), "pickup stays free even fully degraded")
}

func validContact() checkout.ContactInfo {
	return checkout.ContactInfo{Name: "Ada Obi", Email: "ada@example.com", Phone: "+234 801 234 5678"}
}

func sampleCart() []checkout.CartItem {
	return []checkout.CartItem{
		{ID: 1, Name: "Shea Butter", Price: 10000, Qty: 2},
		{ID: 2, Name: "Body Oil", Price: 5000, Qty: 1},
	}
}

func lagosPricing() models.PricingDocument {
	return models.NormalizePricing(models.PricingDocument{
		DefaultFee: 3000,
		States: []models.State{
			{Name: "Lagos", Cities: []models.City{{Name: "Ikeja", Fee: 1500}}},
		},
	}, 3000)
}

func TestBuildOrderTotals(t *testing.T) {
	shipping := checkout.ShippingSelection{Type: "delivery", State: "Lagos", City: "Ikeja", Address: "12 Allen Avenue"}

	order, err := checkout.BuildOrder(validContact(), shipping, sampleCart(), lagosPricing())
	require.NoError(t, err)

	assert.Equal(t, 25000, order.Subtotal)
	assert.Equal(t, 1500, order.DeliveryFee)
	assert.Equal(t, 26500, order.Total)
	assert.Equal(t, order.Subtotal+order.DeliveryFee, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Regexp(t, `^KIKELARA_\d+$`, order.Reference)
	require.Len(t, order.Cart, 2)
	assert.Equal(t, 20000, order.Cart[0].Total)
}

func TestBuildOrderPickupIsFree(t *testing.T) {
	order, err := checkout.BuildOrder(validContact(), checkout.ShippingSelection{Type: "pickup"}, sampleCart(), lagosPricing())
	require.NoError(t, err)
	assert.Equal(t, 0, order.DeliveryFee)
	assert.Equal(t, 25000, order.Total)
}

func TestBuildOrderValidation(t *testing.T) {
	delivery := checkout.ShippingSelection{Type: "delivery", State: "Lagos", City: "Ikeja", Address: "12 Allen Avenue"}

	tests := []struct {
		name      string
		contact   checkout.ContactInfo
		shipping  checkout.ShippingSelection
		cart      []checkout.CartItem
		wantField string
	}{
		{"missing_name", checkout.ContactInfo{Email: "a@b.com", Phone: "+2348012345678"}, delivery, sampleCart(), "name"},
		{"bad_email", checkout.ContactInfo{Name: "Ada", Email: "not-an-email", Phone: "+2348012345678"}, delivery, sampleCart(), "email"},
		{"short_phone", checkout.ContactInfo{Name: "Ada", Email: "a@b.com", Phone: "12345"}, delivery, sampleCart(), "phone"},
		{"alpha_phone", checkout.ContactInfo{Name: "Ada", Email: "a@b.com", Phone: "+23480abc5678"}, delivery, sampleCart(), "phone"},
		{"empty_cart", validContact(), delivery, nil, "cart"},
		{"delivery_needs_state", validContact(), checkout.ShippingSelection{Type: "delivery", City: "Ikeja", Address: "x"}, sampleCart(), "state"},
		{"delivery_needs_city", validContact(), checkout.ShippingSelection{Type: "delivery", State: "Lagos", Address: "x"}, sampleCart(), "city"},
		{"delivery_needs_address", validContact(), checkout.ShippingSelection{Type: "delivery", State: "Lagos", City: "Ikeja"}, sampleCart(), "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := checkout.BuildOrder(tt.contact, tt.shipping, tt.cart, lagosPricing())
			require.Error(t, err)
			var verr *checkout.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestBuildOrderPhoneAllowsSpaces(t *testing.T) {
	contact := validContact()
	contact.Phone = "0801 234 5678"

	_, err := checkout.BuildOrder(contact, checkout.ShippingSelection{Type: "pickup"}, sampleCart(), lagosPricing())
	assert.NoError(t, err, "whitespace is stripped before the phone check")
}

func TestSubmitOrderSuccessWritesNoBackup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"order":{"id":99,"reference":"KIKELARA_1"}}`))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	c := checkout.NewClient(srv.URL, dir)

	res, err := c.SubmitOrder(context.Background(), models.Order{Reference: "KIKELARA_1"})
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.False(t, res.BackedUp)
	assert.Equal(t, int64(99), res.ServerOrder.ID)

	_, statErr := os.Stat(filepath.Join(dir, "orders_backup.json"))
	assert.True(t, os.IsNotExist(statErr), "no backup on success")
}

func TestSubmitOrderFailureAppendsBackup(t *testing.T) {
	dead := deadServer(t)
	dir := t.TempDir()
	c := checkout.NewClient(dead.URL, dir)

	order := models.Order{Reference: "KIKELARA_2", Total: 26500}
	res, err := c.SubmitOrder(context.Background(), order)
	require.NoError(t, err, "the flow still succeeds for the customer")
	assert.False(t, res.Saved)
	assert.True(t, res.BackedUp)

	backups := c.BackedUpOrders()
	require.Len(t, backups, 1, "exactly one backup record")
	assert.Equal(t, "KIKELARA_2", backups[0].Reference)

	// A second failed submission appends rather than overwrites.
	_, err = c.SubmitOrder(context.Background(), models.Order{Reference: "KIKELARA_3"})
	require.NoError(t, err)
	assert.Len(t, c.BackedUpOrders(), 2)
}
