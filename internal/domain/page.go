package domain

import "time"

// Page is a merchant-authored custom page rendered on the storefront.
type Page struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
