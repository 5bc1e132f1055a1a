package order

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"
	"time"

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

const orderColumns = `
id::text, store_id::text, order_number, customer, items, currency, subtotal, shipping_method,
shipping_fee, discount_amount, coupon_code, total, payment_method, payment_status, status,
track_token, whatsapp_message, created_at, updated_at
`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.StoreID, &o.OrderNumber, &o.Customer, &o.Items, &o.Currency, &o.Subtotal, &o.ShippingMethod,
		&o.ShippingFee, &o.DiscountAmount, &o.CouponCode, &o.Total, &o.PaymentMethod, &o.PaymentStatus, &o.Status,
		&o.TrackToken, &o.WhatsAppMessage, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (store_id, order_number, customer, items, currency, subtotal, shipping_method,
                    shipping_fee, discount_amount, coupon_code, total, payment_method, payment_status,
                    status, track_token, whatsapp_message)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING ` + orderColumns
	created, err := scanOrder(r.pool.QueryRow(ctx, q,
		o.StoreID, o.OrderNumber, o.Customer, o.Items, o.Currency, o.Subtotal, o.ShippingMethod,
		o.ShippingFee, o.DiscountAmount, o.CouponCode, o.Total, o.PaymentMethod, o.PaymentStatus,
		o.Status, o.TrackToken, o.WhatsAppMessage,
	))
	if err != nil {
		r.logger.Printf("order repo: create store_id=%s number=%s error=%v", o.StoreID, o.OrderNumber, err)
		return nil, err
	}
	r.logger.Printf("order repo: created store_id=%s number=%s id=%s", created.StoreID, created.OrderNumber, created.ID)
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE store_id = $1 AND id = $2`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, storeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get store_id=%s id=%s error=%v", storeID, id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) GetByTrackToken(ctx context.Context, token string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE track_token = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: track error=%v", err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string, f ListFilter) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE store_id = $1`
	args := []interface{}{storeID}
	if f.Status != "" {
		q += ` AND status = $2`
		args = append(args, f.Status)
	}
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
		r.logger.Printf("order repo: list store_id=%s error=%v", storeID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, rows.Err()
}

func (r *postgresRepo) SetStatus(ctx context.Context, storeID, id, status, paymentStatus string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = COALESCE(NULLIF($3, ''), status),
    payment_status = COALESCE(NULLIF($4, ''), payment_status),
    updated_at = now()
WHERE store_id = $1 AND id = $2
RETURNING ` + orderColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, q, storeID, id, status, paymentStatus))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: set status store_id=%s id=%s error=%v", storeID, id, err)
		return nil, err
	}
	return o, nil
}

// LastOrderNumber returns the most recently created order number for the
// store, or empty when the store has no orders yet.
func (r *postgresRepo) LastOrderNumber(ctx context.Context, storeID string) (string, error) {
	const q = `
SELECT order_number FROM orders
WHERE store_id = $1
ORDER BY created_at DESC
LIMIT 1
`
	var number string
	err := r.pool.QueryRow(ctx, q, storeID).Scan(&number)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		r.logger.Printf("order repo: last number store_id=%s error=%v", storeID, err)
		return "", err
	}
	return number, nil
}

// StatsByStore aggregates order count and sales total since the given time.
func (r *postgresRepo) StatsByStore(ctx context.Context, storeID string, since time.Time) (StoreStats, error) {
	const q = `
SELECT COUNT(*), COALESCE(SUM(total), 0) FROM orders
WHERE store_id = $1 AND created_at >= $2
`
	var stats StoreStats
	if err := r.pool.QueryRow(ctx, q, storeID, since).Scan(&stats.OrdersCount, &stats.SalesTotal); err != nil {
		r.logger.Printf("order repo: stats store_id=%s error=%v", storeID, err)
		return StoreStats{}, err
	}
	return stats, nil
}
