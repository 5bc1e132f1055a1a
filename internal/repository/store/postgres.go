package store

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

const storeColumns = `
id::text, owner_id::text, name, slug, whatsapp_number, language, template, theme, currency,
branding, sections, premium, shipping, payments, sheets_config, created_at, updated_at
`

func scanStore(row pgx.Row) (*domain.Store, error) {
	var s domain.Store
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Slug, &s.WhatsAppNumber, &s.Language, &s.Template, &s.Theme, &s.Currency,
		&s.Branding, &s.Sections, &s.Premium, &s.Shipping, &s.Payments, &s.Sheets, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) Create(ctx context.Context, s domain.Store) (*domain.Store, error) {
	const q = `
INSERT INTO stores (owner_id, name, slug, whatsapp_number, language, template, theme, currency,
                    branding, sections, premium, shipping, payments, sheets_config)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + storeColumns
	created, err := scanStore(r.pool.QueryRow(ctx, q,
		s.OwnerID, s.Name, s.Slug, s.WhatsAppNumber, s.Language, s.Template, s.Theme, s.Currency,
		s.Branding, s.Sections, s.Premium, s.Shipping, s.Payments, s.Sheets,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Printf("store repo: create slug=%s conflict", s.Slug)
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("store repo: create slug=%s error=%v", s.Slug, err)
		return nil, err
	}
	r.logger.Printf("store repo: created slug=%s id=%s", created.Slug, created.ID)
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	const q = `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	s, err := scanStore(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("store repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	const q = `SELECT ` + storeColumns + ` FROM stores WHERE slug = $1`
	s, err := scanStore(r.pool.QueryRow(ctx, q, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("store repo: get slug=%s error=%v", slug, err)
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Store, error) {
	const q = `SELECT ` + storeColumns + ` FROM stores WHERE owner_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		r.logger.Printf("store repo: list owner_id=%s error=%v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, s domain.Store) (*domain.Store, error) {
	const q = `
UPDATE stores
SET name = $2, whatsapp_number = $3, language = $4, template = $5, theme = $6, currency = $7,
    branding = $8, sections = $9, premium = $10, shipping = $11, payments = $12, sheets_config = $13,
    updated_at = now()
WHERE id = $1
RETURNING ` + storeColumns
	updated, err := scanStore(r.pool.QueryRow(ctx, q,
		s.ID, s.Name, s.WhatsAppNumber, s.Language, s.Template, s.Theme, s.Currency,
		s.Branding, s.Sections, s.Premium, s.Shipping, s.Payments, s.Sheets,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("store repo: update id=%s error=%v", s.ID, err)
		return nil, err
	}
	return updated, nil
}
