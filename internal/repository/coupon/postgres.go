package coupon

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const couponColumns = `
id::text, store_id::text, code, type, value, status, start_at, end_at,
usage_limit, used_count, min_order_amount, created_at, updated_at
`

func scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var c domain.Coupon
	err := row.Scan(
		&c.ID, &c.StoreID, &c.Code, &c.Type, &c.Value, &c.Status, &c.StartAt, &c.EndAt,
		&c.UsageLimit, &c.UsedCount, &c.MinOrderAmount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	const q = `
INSERT INTO coupons (store_id, code, type, value, status, start_at, end_at, usage_limit, min_order_amount)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + couponColumns
	created, err := scanCoupon(r.pool.QueryRow(ctx, q,
		c.StoreID, c.Code, c.Type, c.Value, c.Status, c.StartAt, c.EndAt, c.UsageLimit, c.MinOrderAmount,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("coupon repo: create store_id=%s code=%s error=%v", c.StoreID, c.Code, err)
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Coupon, error) {
	const q = `SELECT ` + couponColumns + ` FROM coupons WHERE store_id = $1 AND id = $2`
	c, err := scanCoupon(r.pool.QueryRow(ctx, q, storeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) GetByCode(ctx context.Context, storeID, code string) (*domain.Coupon, error) {
	const q = `SELECT ` + couponColumns + ` FROM coupons WHERE store_id = $1 AND code = $2`
	c, err := scanCoupon(r.pool.QueryRow(ctx, q, storeID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Coupon, error) {
	const q = `SELECT ` + couponColumns + ` FROM coupons WHERE store_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		r.logger.Printf("coupon repo: list store_id=%s error=%v", storeID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	const q = `
UPDATE coupons
SET code = $3, type = $4, value = $5, status = $6, start_at = $7, end_at = $8,
    usage_limit = $9, min_order_amount = $10, updated_at = now()
WHERE store_id = $1 AND id = $2
RETURNING ` + couponColumns
	updated, err := scanCoupon(r.pool.QueryRow(ctx, q,
		c.StoreID, c.ID, c.Code, c.Type, c.Value, c.Status, c.StartAt, c.EndAt, c.UsageLimit, c.MinOrderAmount,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("coupon repo: update store_id=%s id=%s error=%v", c.StoreID, c.ID, err)
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id string) error {
	const q = `DELETE FROM coupons WHERE store_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, q, storeID, id)
	if err != nil {
		r.logger.Printf("coupon repo: delete store_id=%s id=%s error=%v", storeID, id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) IncrementUsage(ctx context.Context, storeID, code string) error {
	const q = `
UPDATE coupons
SET used_count = used_count + 1, updated_at = now()
WHERE store_id = $1 AND code = $2
`
	_, err := r.pool.Exec(ctx, q, storeID, code)
	if err != nil {
		r.logger.Printf("coupon repo: increment store_id=%s code=%s error=%v", storeID, code, err)
	}
	return err
}
