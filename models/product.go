package models

import "time"

// Product is a catalog entry served to the storefront.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       int      `json:"price"`
	Category    string   `json:"category,omitempty"`
	Images      []string `json:"images,omitempty"`
	InStock     bool     `json:"inStock"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// TouchTimestamps stamps createdAt (when empty) and updatedAt.
func (p *Product) TouchTimestamps(now time.Time) {
	ts := now.UTC().Format(time.RFC3339)
	if p.CreatedAt == "" {
		p.CreatedAt = ts
	}
	p.UpdatedAt = ts
}
