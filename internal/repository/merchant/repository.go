package merchant

import (
	"context"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, m domain.Merchant) (*domain.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Merchant, error)
	GetByID(ctx context.Context, id string) (*domain.Merchant, error)
}
