package models

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Shipping types accepted at checkout.
const (
	ShippingPickup   = "pickup"
	ShippingDelivery = "delivery"
)

// City is a city (or LGA) entry with its delivery fee in naira.
type City struct {
	Name string `json:"name"`
	Fee  int    `json:"fee"`
}

// State groups cities under a Nigerian state.
type State struct {
	Name   string `json:"name"`
	Cities []City `json:"cities"`
}

// PricingDocument is the full state -> city -> fee structure plus a
// default fee, treated as a single versioned unit.
type PricingDocument struct {
	DefaultFee int     `json:"defaultFee"`
	UpdatedAt  *string `json:"updatedAt,omitempty"`
	States     []State `json:"states"`
}

// PricingPayload is the loose wire shape accepted from admin clients.
// Fees arrive as arbitrary JSON numbers and are coerced during
// normalization; everything else mirrors PricingDocument.
type PricingPayload struct {
	DefaultFee *float64       `json:"defaultFee"`
	UpdatedAt  *string        `json:"updatedAt,omitempty"`
	States     []StatePayload `json:"states"`
}

// StatePayload is the loose wire shape of a state entry.
type StatePayload struct {
	Name   string        `json:"name"`
	Cities []CityPayload `json:"cities"`
}

// CityPayload is the loose wire shape of a city entry.
type CityPayload struct {
	Name string   `json:"name"`
	Fee  *float64 `json:"fee"`
}

// PricingFromPayload adapts the loose wire shape into a normalized
// document. Cities without a usable fee are dropped; a missing or
// negative default fee falls back to fallbackFee.
func PricingFromPayload(p PricingPayload, fallbackFee int) PricingDocument {
	doc := PricingDocument{DefaultFee: fallbackFee, UpdatedAt: p.UpdatedAt}
	if p.DefaultFee != nil {
		doc.DefaultFee = clampFee(*p.DefaultFee, fallbackFee)
	}
	for _, s := range p.States {
		st := State{Name: s.Name}
		for _, c := range s.Cities {
			if c.Fee == nil || math.IsNaN(*c.Fee) || math.IsInf(*c.Fee, 0) || *c.Fee < 0 {
				continue
			}
			st.Cities = append(st.Cities, City{Name: c.Name, Fee: clampFee(*c.Fee, 0)})
		}
		doc.States = append(doc.States, st)
	}
	return NormalizePricing(doc, fallbackFee)
}

// NormalizePricing cleans a pricing document received from any source
// (admin PUT, disk, cache, dataset) into canonical form: names trimmed
// and required non-empty, fees rounded and clamped to >= 0, near-duplicate
// names merged case-insensitively (first occurrence keeps its spelling),
// states and cities sorted by name. Running it twice yields the same
// document.
func NormalizePricing(raw PricingDocument, fallbackFee int) PricingDocument {
	out := PricingDocument{
		DefaultFee: clampFee(float64(raw.DefaultFee), fallbackFee),
		UpdatedAt:  raw.UpdatedAt,
		States:     []State{},
	}

	seenStates := map[string]int{}
	for _, s := range raw.States {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)

		idx, ok := seenStates[key]
		if !ok {
			out.States = append(out.States, State{Name: name, Cities: []City{}})
			idx = len(out.States) - 1
			seenStates[key] = idx
		}

		st := &out.States[idx]
		seenCities := map[string]bool{}
		for _, c := range st.Cities {
			seenCities[strings.ToLower(c.Name)] = true
		}
		for _, c := range s.Cities {
			cityName := strings.TrimSpace(c.Name)
			if cityName == "" {
				continue
			}
			cityKey := strings.ToLower(cityName)
			if seenCities[cityKey] {
				continue
			}
			seenCities[cityKey] = true
			st.Cities = append(st.Cities, City{
				Name: cityName,
				Fee:  clampFee(float64(c.Fee), 0),
			})
		}
	}

	sort.Slice(out.States, func(i, j int) bool {
		return strings.ToLower(out.States[i].Name) < strings.ToLower(out.States[j].Name)
	})
	for i := range out.States {
		cities := out.States[i].Cities
		sort.Slice(cities, func(a, b int) bool {
			return strings.ToLower(cities[a].Name) < strings.ToLower(cities[b].Name)
		})
	}

	return out
}

func clampFee(fee float64, fallback int) int {
	if math.IsNaN(fee) || math.IsInf(fee, 0) {
		return fallback
	}
	n := int(math.Round(fee))
	if n < 0 {
		return fallback
	}
	return n
}

// FindState returns the state whose name matches after trimming, ignoring
// case, or nil.
func (d *PricingDocument) FindState(name string) *State {
	want := strings.ToLower(strings.TrimSpace(name))
	for i := range d.States {
		if strings.ToLower(strings.TrimSpace(d.States[i].Name)) == want {
			return &d.States[i]
		}
	}
	return nil
}

// FindCity returns the matching city within the state, or nil.
func (s *State) FindCity(name string) *City {
	if s == nil {
		return nil
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for i := range s.Cities {
		if strings.ToLower(strings.TrimSpace(s.Cities[i].Name)) == want {
			return &s.Cities[i]
		}
	}
	return nil
}

// ResolveDeliveryFee returns the fee to charge for an order. Pickup is
// always free. Delivery looks up state then city; any miss at either
// level falls back to the document's default fee. Pure in-memory lookup,
// no I/O.
func (d *PricingDocument) ResolveDeliveryFee(shippingType, state, city string) int {
	if shippingType != ShippingDelivery {
		return 0
	}
	if c := d.FindState(state).FindCity(city); c != nil {
		return c.Fee
	}
	return d.DefaultFee
}

// Touch refreshes the document's updatedAt timestamp.
func (d *PricingDocument) Touch(now time.Time) {
	ts := now.UTC().Format(time.RFC3339)
	d.UpdatedAt = &ts
}

// nigeriaStates is the canonical seed list: every state paired with its
// capital city.
var nigeriaStates = []struct {
	Name string
	City string
}{
	{"Abia", "Umuahia"},
	{"Adamawa", "Yola"},
	{"Akwa Ibom", "Uyo"},
	{"Anambra", "Awka"},
	{"Bauchi", "Bauchi"},
	{"Bayelsa", "Yenagoa"},
	{"Benue", "Makurdi"},
	{"Borno", "Maiduguri"},
	{"Cross River", "Calabar"},
	{"Delta", "Asaba"},
	{"Ebonyi", "Abakaliki"},
	{"Edo", "Benin City"},
	{"Ekiti", "Ado-Ekiti"},
	{"Enugu", "Enugu"},
	{"FCT", "Abuja"},
	{"Gombe", "Gombe"},
	{"Imo", "Owerri"},
	{"Jigawa", "Dutse"},
	{"Kaduna", "Kaduna"},
	{"Kano", "Kano"},
	{"Katsina", "Katsina"},
	{"Kebbi", "Birnin Kebbi"},
	{"Kogi", "Lokoja"},
	{"Kwara", "Ilorin"},
	{"Lagos", "Ikeja"},
	{"Nasarawa", "Lafia"},
	{"Niger", "Minna"},
	{"Ogun", "Abeokuta"},
	{"Ondo", "Akure"},
	{"Osun", "Osogbo"},
	{"Oyo", "Ibadan"},
	{"Plateau", "Jos"},
	{"Rivers", "Port Harcourt"},
	{"Sokoto", "Sokoto"},
	{"Taraba", "Jalingo"},
	{"Yobe", "Damaturu"},
	{"Zamfara", "Gusau"},
}

// SeedNigeriaPricing builds a pricing document covering every Nigerian
// state with its capital, all at the given fee.
func SeedNigeriaPricing(fee int) PricingDocument {
	if fee < 0 {
		fee = 0
	}
	doc := PricingDocument{DefaultFee: fee, States: make([]State, 0, len(nigeriaStates))}
	for _, s := range nigeriaStates {
		doc.States = append(doc.States, State{
			Name:   s.Name,
			Cities: []City{{Name: s.City, Fee: fee}},
		})
	}
	doc.Touch(time.Now())
	return NormalizePricing(doc, fee)
}
