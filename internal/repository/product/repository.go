package product

import (
	"context"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

// ListFilter narrows catalog queries. VisibleOnly restricts to products with
// availability "show" (the public storefront view).
type ListFilter struct {
	Category    string
	VisibleOnly bool
	Page        int
	Limit       int
}

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Product, error)
	ListByStore(ctx context.Context, storeID string, f ListFilter) ([]domain.Product, error)
	CountByStore(ctx context.Context, storeID string, f ListFilter) (int, error)
	Categories(ctx context.Context, storeID string) ([]string, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, storeID, id string) error
	DecrementStock(ctx context.Context, storeID, id string, qty int) error
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
