package product

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `
id::text, store_id::text, name, category, price, description, sizes, colors, tags, brand,
stock, availability, thumbnail_url, image_urls, sheet_row_index, last_updated_source,
created_at, updated_at
`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.StoreID, &p.Name, &p.Category, &p.Price, &p.Description, &p.Sizes, &p.Colors, &p.Tags, &p.Brand,
		&p.Stock, &p.Availability, &p.ThumbnailURL, &p.ImageURLs, &p.SheetRowIndex, &p.UpdatedSource,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (store_id, name, category, price, description, sizes, colors, tags, brand,
                      stock, availability, thumbnail_url, image_urls, sheet_row_index, last_updated_source)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING ` + productColumns
	created, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.StoreID, p.Name, p.Category, p.Price, p.Description, textArray(p.Sizes), textArray(p.Colors), textArray(p.Tags), p.Brand,
		p.Stock, p.Availability, p.ThumbnailURL, textArray(p.ImageURLs), p.SheetRowIndex, p.UpdatedSource,
	))
	if err != nil {
		r.logger.Printf("product repo: create store_id=%s name=%q error=%v", p.StoreID, p.Name, err)
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 AND id = $2`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, storeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get store_id=%s id=%s error=%v", storeID, id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string, f ListFilter) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1`
	args := []interface{}{storeID}
	q, args = applyFilter(q, args, f)
	q += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
		args = append(args, f.Limit, (page-1)*f.Limit)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list store_id=%s error=%v", storeID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) CountByStore(ctx context.Context, storeID string, f ListFilter) (int, error) {
	q := `SELECT COUNT(*) FROM products WHERE store_id = $1`
	args := []interface{}{storeID}
	q, args = applyFilter(q, args, f)

	var count int
	if err := r.pool.QueryRow(ctx, q, args...).Scan(&count); err != nil {
		r.logger.Printf("product repo: count store_id=%s error=%v", storeID, err)
		return 0, err
	}
	return count, nil
}

func (r *postgresRepo) Categories(ctx context.Context, storeID string) ([]string, error) {
	const q = `
SELECT DISTINCT category FROM products
WHERE store_id = $1 AND availability = 'show' AND category <> ''
ORDER BY category
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $3, category = $4, price = $5, description = $6, sizes = $7, colors = $8, tags = $9,
    brand = $10, stock = $11, availability = $12, thumbnail_url = $13, image_urls = $14,
    last_updated_source = $15, updated_at = now()
WHERE store_id = $1 AND id = $2
RETURNING ` + productColumns
	updated, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.StoreID, p.ID, p.Name, p.Category, p.Price, p.Description, textArray(p.Sizes), textArray(p.Colors), textArray(p.Tags),
		p.Brand, p.Stock, p.Availability, p.ThumbnailURL, textArray(p.ImageURLs), p.UpdatedSource,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update store_id=%s id=%s error=%v", p.StoreID, p.ID, err)
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id string) error {
	const q = `DELETE FROM products WHERE store_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, q, storeID, id)
	if err != nil {
		r.logger.Printf("product repo: delete store_id=%s id=%s error=%v", storeID, id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock subtracts qty from tracked stock. Products with the
// unlimited sentinel are left untouched.
func (r *postgresRepo) DecrementStock(ctx context.Context, storeID, id string, qty int) error {
	const q = `
UPDATE products
SET stock = GREATEST(stock - $3, 0), updated_at = now()
WHERE store_id = $1 AND id = $2 AND stock <> -1
`
	_, err := r.pool.Exec(ctx, q, storeID, id, qty)
	if err != nil {
		r.logger.Printf("product repo: decrement store_id=%s id=%s error=%v", storeID, id, err)
	}
	return err
}

// Upsert inserts or replaces a catalog row keyed by (store, sheet row).
// Used by the CSV importer; rows without a sheet row index always insert.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.SheetRowIndex == nil {
		return r.Create(ctx, p)
	}
	const q = `
INSERT INTO products (store_id, name, category, price, description, sizes, colors, tags, brand,
                      stock, availability, thumbnail_url, image_urls, sheet_row_index, last_updated_source)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (store_id, sheet_row_index) WHERE sheet_row_index IS NOT NULL DO UPDATE SET
    name = EXCLUDED.name,
    category = EXCLUDED.category,
    price = EXCLUDED.price,
    description = EXCLUDED.description,
    sizes = EXCLUDED.sizes,
    colors = EXCLUDED.colors,
    tags = EXCLUDED.tags,
    brand = EXCLUDED.brand,
    stock = EXCLUDED.stock,
    availability = EXCLUDED.availability,
    thumbnail_url = EXCLUDED.thumbnail_url,
    image_urls = EXCLUDED.image_urls,
    last_updated_source = EXCLUDED.last_updated_source,
    updated_at = now()
RETURNING ` + productColumns
	upserted, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.StoreID, p.Name, p.Category, p.Price, p.Description, textArray(p.Sizes), textArray(p.Colors), textArray(p.Tags), p.Brand,
		p.Stock, p.Availability, p.ThumbnailURL, textArray(p.ImageURLs), p.SheetRowIndex, p.UpdatedSource,
	))
	if err != nil {
		r.logger.Printf("product repo: upsert store_id=%s row=%d error=%v", p.StoreID, *p.SheetRowIndex, err)
		return nil, err
	}
	return upserted, nil
}

func applyFilter(q string, args []interface{}, f ListFilter) (string, []interface{}) {
	if f.VisibleOnly {
		q += ` AND availability = 'show'`
	}
	if f.Category != "" {
		q += ` AND category = $` + strconv.Itoa(len(args)+1)
		args = append(args, f.Category)
	}
	return q, args
}

// textArray normalizes nil slices so empty lists round-trip as '{}'.
func textArray(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
