package order

import (
	"context"
	"time"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

// ListFilter narrows merchant order listings.
type ListFilter struct {
	Status string
	Page   int
	Limit  int
}

// StoreStats aggregates orders placed since a point in time.
type StoreStats struct {
	OrdersCount int
	SalesTotal  int64
}

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Order, error)
	GetByTrackToken(ctx context.Context, token string) (*domain.Order, error)
	ListByStore(ctx context.Context, storeID string, f ListFilter) ([]domain.Order, error)
	SetStatus(ctx context.Context, storeID, id, status, paymentStatus string) (*domain.Order, error)
	LastOrderNumber(ctx context.Context, storeID string) (string, error)
	StatsByStore(ctx context.Context, storeID string, since time.Time) (StoreStats, error)
}
