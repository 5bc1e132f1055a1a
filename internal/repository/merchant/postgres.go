package merchant

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

func (r *postgresRepo) Create(ctx context.Context, m domain.Merchant) (*domain.Merchant, error) {
	const q = `
INSERT INTO merchants (email, password_hash, name)
VALUES ($1, $2, $3)
RETURNING id::text, email, password_hash, name, created_at
`
	var created domain.Merchant
	err := r.pool.QueryRow(ctx, q, m.Email, m.PasswordHash, m.Name).Scan(
		&created.ID, &created.Email, &created.PasswordHash, &created.Name, &created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("merchant repo: create email=%s error=%v", m.Email, err)
		return nil, err
	}
	return &created, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	const q = `SELECT id::text, email, password_hash, name, created_at FROM merchants WHERE email = $1`
	var m domain.Merchant
	err := r.pool.QueryRow(ctx, q, email).Scan(&m.ID, &m.Email, &m.PasswordHash, &m.Name, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	const q = `SELECT id::text, email, password_hash, name, created_at FROM merchants WHERE id = $1`
	var m domain.Merchant
	err := r.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.Email, &m.PasswordHash, &m.Name, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
