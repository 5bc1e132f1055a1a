package coupon

import (
	"context"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Coupon, error)
	GetByCode(ctx context.Context, storeID, code string) (*domain.Coupon, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Coupon, error)
	Update(ctx context.Context, c domain.Coupon) (*domain.Coupon, error)
	Delete(ctx context.Context, storeID, id string) error
	IncrementUsage(ctx context.Context, storeID, code string) error
}
