package page

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

const pageColumns = `id::text, store_id::text, title, slug, content, published, created_at, updated_at`

func scanPage(row pgx.Row) (*domain.Page, error) {
	var p domain.Page
	err := row.Scan(&p.ID, &p.StoreID, &p.Title, &p.Slug, &p.Content, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Page) (*domain.Page, error) {
	const q = `
INSERT INTO pages (store_id, title, slug, content, published)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + pageColumns
	created, err := scanPage(r.pool.QueryRow(ctx, q, p.StoreID, p.Title, p.Slug, p.Content, p.Published))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("page repo: create store_id=%s slug=%s error=%v", p.StoreID, p.Slug, err)
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Page, error) {
	const q = `SELECT ` + pageColumns + ` FROM pages WHERE store_id = $1 AND id = $2`
	p, err := scanPage(r.pool.QueryRow(ctx, q, storeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, storeID, slug string) (*domain.Page, error) {
	const q = `SELECT ` + pageColumns + ` FROM pages WHERE store_id = $1 AND slug = $2`
	p, err := scanPage(r.pool.QueryRow(ctx, q, storeID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Page, error) {
	const q = `SELECT ` + pageColumns + ` FROM pages WHERE store_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		r.logger.Printf("page repo: list store_id=%s error=%v", storeID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Page) (*domain.Page, error) {
	const q = `
UPDATE pages
SET title = $3, slug = $4, content = $5, published = $6, updated_at = now()
WHERE store_id = $1 AND id = $2
RETURNING ` + pageColumns
	updated, err := scanPage(r.pool.QueryRow(ctx, q, p.StoreID, p.ID, p.Title, p.Slug, p.Content, p.Published))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("page repo: update store_id=%s id=%s error=%v", p.StoreID, p.ID, err)
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id string) error {
	const q = `DELETE FROM pages WHERE store_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, q, storeID, id)
	if err != nil {
		r.logger.Printf("page repo: delete store_id=%s id=%s error=%v", storeID, id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
