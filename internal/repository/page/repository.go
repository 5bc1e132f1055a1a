package page

import (
	"context"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.Page) (*domain.Page, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Page, error)
	GetBySlug(ctx context.Context, storeID, slug string) (*domain.Page, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Page, error)
	Update(ctx context.Context, p domain.Page) (*domain.Page, error)
	Delete(ctx context.Context, storeID, id string) error
}
