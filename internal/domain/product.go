package domain

import "time"

// Product availability values.
const (
	AvailabilityShow = "show"
	AvailabilityHide = "hide"
)

// Catalog update sources.
const (
	SourceDashboard = "dashboard"
	SourceSheet     = "sheet"
)

// UnlimitedStock is the sentinel stock value meaning "do not track stock".
const UnlimitedStock = -1

// Product is one catalog entry. Price is in minor currency units.
// Stock of UnlimitedStock disables stock checks entirely.
type Product struct {
	ID            string    `json:"id"`
	StoreID       string    `json:"-"`
	Name          string    `json:"name"`
	Category      string    `json:"category,omitempty"`
	Price         int64     `json:"price"`
	Description   string    `json:"description,omitempty"`
	Sizes         []string  `json:"sizes"`
	Colors        []string  `json:"colors"`
	Tags          []string  `json:"tags,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Stock         int       `json:"stock"`
	Availability  string    `json:"availability"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	ImageURLs     []string  `json:"image_urls"`
	SheetRowIndex *int      `json:"sheet_row_index,omitempty"`
	UpdatedSource string    `json:"last_updated_source"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// InStock reports whether qty units can be sold.
func (p Product) InStock(qty int) bool {
	return p.Stock == UnlimitedStock || p.Stock >= qty
}

// Visible reports whether the product appears on the public storefront.
func (p Product) Visible() bool {
	return p.Availability == AvailabilityShow
}
