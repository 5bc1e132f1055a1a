package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

type productSeed struct {
	Row         int
	Name        string
	Category    string
	Description string
	Price       int64
	Stock       int
	Sizes       []string
	Colors      []string
}

// Apply inserts basic seed data for manual testing: a demo merchant, the
// "demo" store, and a handful of products. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	merchantID, err := ensureMerchant(ctx, pool, "demo@mywabiz.in", "demo-password", "Demo Merchant")
	if err != nil {
		return fmt.Errorf("ensure merchant: %w", err)
	}

	storeID, err := ensureStore(ctx, pool, merchantID, "Demo Store", "demo", "+91 98765 43210")
	if err != nil {
		return fmt.Errorf("ensure store: %w", err)
	}

	products := []productSeed{
		{
			Row:         2,
			Name:        "Masala Chai",
			Category:    "Drinks",
			Description: "House blend with cardamom and ginger",
			Price:       20000,
			Stock:       50,
		},
		{
			Row:         3,
			Name:        "Cotton Kurta",
			Category:    "Clothing",
			Description: "Handloom cotton, relaxed fit",
			Price:       129900,
			Stock:       domain.UnlimitedStock,
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"Blue", "White"},
		},
		{
			Row:         4,
			Name:        "Ceramic Mug",
			Category:    "Homeware",
			Description: "Hand-glazed 300ml mug",
			Price:       45000,
			Stock:       12,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, storeID, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureMerchant(ctx context.Context, pool *pgxpool.Pool, email, password, name string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	const q = `
INSERT INTO merchants (email, password_hash, name)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, email, string(hash), name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureStore(ctx context.Context, pool *pgxpool.Pool, ownerID, name, slug, whatsapp string) (string, error) {
	defaults := domain.DefaultStore()

	branding, _ := json.Marshal(defaults.Branding)
	sections, _ := json.Marshal(defaults.Sections)
	premium, _ := json.Marshal(defaults.Premium)
	shipping, _ := json.Marshal(domain.ShippingConfig{
		PickupEnabled:   true,
		PickupAddress:   "14 MG Road, Bengaluru",
		DeliveryEnabled: true,
		DeliveryFee:     5000,
	})
	payments, _ := json.Marshal(defaults.Payments)
	sheets, _ := json.Marshal(defaults.Sheets)

	const q = `
INSERT INTO stores (owner_id, name, slug, whatsapp_number, language, template, theme, currency,
                    branding, sections, premium, shipping, payments, sheets_config)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    whatsapp_number = EXCLUDED.whatsapp_number
RETURNING id::text
`
	var id string
	err := pool.QueryRow(ctx, q, ownerID, name, slug, whatsapp,
		defaults.Language, defaults.Template, defaults.Theme, defaults.Currency,
		branding, sections, premium, shipping, payments, sheets).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, storeID string, p productSeed) error {
	const q = `
INSERT INTO products (store_id, name, category, price, description, sizes, colors, stock, sheet_row_index)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (store_id, sheet_row_index) WHERE sheet_row_index IS NOT NULL DO UPDATE
SET name = EXCLUDED.name,
    category = EXCLUDED.category,
    price = EXCLUDED.price,
    description = EXCLUDED.description,
    sizes = EXCLUDED.sizes,
    colors = EXCLUDED.colors,
    stock = EXCLUDED.stock
`
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}
	_, err := pool.Exec(ctx, q, storeID, p.Name, p.Category, p.Price, p.Description, sizes, colors, p.Stock, p.Row)
	return err
}
