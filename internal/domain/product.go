// Package domain provides domain models used across the application.
package domain

import (
	"time"
)

// Product lifecycle statuses. Statuses beyond these three may appear in
// legacy rows; the stats breakdown ignores them.
const (
	ProductStatusDraft    = "draft"
	ProductStatusUploaded = "uploaded"
	ProductStatusError    = "error"
)

// DefaultCategory is applied when a scraped record carries no category path.
const DefaultCategory = "General"

// SourcingTypeScraped marks rows created by the ingestion pipeline.
const SourcingTypeScraped = "scraped"

// Product represents a persisted marketplace product row. Rows are
// deduplicated by external_id: re-ingesting the same external ID updates the
// existing row in place.
type Product struct {
	ID           string      `db:"id"            json:"id"`
	UserID       string      `db:"user_id"       json:"user_id"`
	ExternalID   string      `db:"external_id"   json:"external_id"`
	SourceURL    string      `db:"source_url"    json:"source_url"`
	Title        string      `db:"title"         json:"title"`
	Description  string      `db:"description"   json:"description"`
	Images       StringList  `db:"images"        json:"images"`
	Variants     VariantList `db:"variants"      json:"variants,omitempty"`
	SourcingType string      `db:"sourcing_type" json:"sourcing_type"`
	CostPrice    float64     `db:"cost_price"    json:"cost_price"`
	MarginRate   float64     `db:"margin_rate"   json:"margin_rate"`
	SalePrice    float64     `db:"sale_price"    json:"sale_price"`
	Status       string      `db:"status"        json:"status"`
	ErrorMessage *string     `db:"error_message" json:"error_message,omitempty"`
	Category     string      `db:"category"      json:"category"`
	ReviewCount  *int        `db:"review_count"  json:"review_count,omitempty"`
	Rating       *float64    `db:"rating"        json:"rating,omitempty"`
	Brand        *string     `db:"brand"         json:"brand,omitempty"`
	Weight       *string     `db:"weight"        json:"weight,omitempty"`
	CreatedAt    time.Time   `db:"created_at"    json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"    json:"updated_at"`
}
