package store

import (
	"context"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, s domain.Store) (*domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Store, error)
	Update(ctx context.Context, s domain.Store) (*domain.Store, error)
}
