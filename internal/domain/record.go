package domain

// ScrapedRecord is a raw product record harvested from an external
// marketplace. It has no identity beyond ExternalID and is passed by value
// into the ingestion pipeline.
type ScrapedRecord struct {
	ExternalID   string   `json:"external_id"`
	SourceURL    string   `json:"source_url"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Images       []string `json:"images,omitempty"`
	Variants     []string `json:"variants,omitempty"`
	CostPrice    float64  `json:"cost_price"`
	CategoryPath string   `json:"category_path,omitempty"`
	ReviewCount  *int     `json:"review_count,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Brand        *string  `json:"brand,omitempty"`
	Weight       *string  `json:"weight,omitempty"`
}

// TableTarget selects which product table variant an ingestion writes to.
type TableTarget string

const (
	// TableTargetV1 writes to the original products table.
	TableTargetV1 TableTarget = "v1"
	// TableTargetV2 writes to the second-generation products table.
	TableTargetV2 TableTarget = "v2"
)

// TableName returns the SQL table for the target. Unknown values fall back
// to the V1 table.
func (t TableTarget) TableName() string {
	if t == TableTargetV2 {
		return "products_v2"
	}
	return "products"
}
