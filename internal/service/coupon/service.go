package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	couponrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/coupon"
	storerepo "github.com/prabhatlnct2008/mywabiz/internal/repository/store"
	"github.com/prabhatlnct2008/mywabiz/internal/whatsapp"
)

// Service manages store discount codes. Creating and editing coupons is a
// paid feature; redeeming an existing coupon at checkout is not.
type Service struct {
	repo   couponrepo.Repository
	stores storerepo.Repository
	now    func() time.Time
}

func New(repo couponrepo.Repository, stores storerepo.Repository) *Service {
	return &Service{repo: repo, stores: stores, now: time.Now}
}

// Input is the merchant create/update payload.
type Input struct {
	Code           string     `json:"code"`
	Type           string     `json:"type"`
	Value          int64      `json:"value"`
	Status         string     `json:"status,omitempty"`
	StartAt        *time.Time `json:"start_at,omitempty"`
	EndAt          *time.Time `json:"end_at,omitempty"`
	UsageLimit     *int       `json:"usage_limit,omitempty"`
	MinOrderAmount int64      `json:"min_order_amount"`
}

// Validation is the public checkout response for a coupon code.
type Validation struct {
	Valid    bool   `json:"valid"`
	Message  string `json:"message,omitempty"`
	Discount int64  `json:"discount"`
	Code     string `json:"code,omitempty"`
}

func (s *Service) Create(ctx context.Context, merchantID, storeID string, in Input) (*domain.Coupon, error) {
	if _, err := s.ownedPremiumStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}
	c, err := fromInput(storeID, in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *c)
}

func (s *Service) List(ctx context.Context, merchantID, storeID string) ([]domain.Coupon, error) {
	if _, err := s.ownedStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}
	return s.repo.ListByStore(ctx, storeID)
}

func (s *Service) Get(ctx context.Context, merchantID, storeID, id string) (*domain.Coupon, error) {
	if _, err := s.ownedStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, storeID, id)
}

func (s *Service) Update(ctx context.Context, merchantID, storeID, id string, in Input) (*domain.Coupon, error) {
	if _, err := s.ownedPremiumStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	c, err := fromInput(storeID, in)
	if err != nil {
		return nil, err
	}
	c.ID = existing.ID
	c.UsedCount = existing.UsedCount
	return s.repo.Update(ctx, *c)
}

func (s *Service) Delete(ctx context.Context, merchantID, storeID, id string) error {
	if _, err := s.ownedPremiumStore(ctx, merchantID, storeID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, storeID, id)
}

// Validate answers the public "can I use this code" question. Invalid codes
// produce a shopper-facing message, never an error.
func (s *Service) Validate(ctx context.Context, storeID, code string, orderTotal int64) (*Validation, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return &Validation{Valid: false, Message: "Invalid coupon code"}, nil
	}
	c, err := s.repo.GetByCode(ctx, storeID, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &Validation{Valid: false, Message: "Invalid coupon code"}, nil
		}
		return nil, err
	}
	if msg := s.rejectReason(c, orderTotal); msg != "" {
		return &Validation{Valid: false, Message: msg}, nil
	}
	return &Validation{
		Valid:    true,
		Discount: c.Discount(orderTotal),
		Code:     c.Code,
	}, nil
}

// Check is the order-creation hook: it returns the discount a code grants
// on orderTotal, or an error carrying the rejection message.
func (s *Service) Check(ctx context.Context, storeID, code string, orderTotal int64) (int64, error) {
	v, err := s.Validate(ctx, storeID, code, orderTotal)
	if err != nil {
		return 0, err
	}
	if !v.Valid {
		return 0, domain.Invalid(v.Message)
	}
	return v.Discount, nil
}

// Redeem records one usage of a code after an order is placed with it.
func (s *Service) Redeem(ctx context.Context, storeID, code string) error {
	return s.repo.IncrementUsage(ctx, storeID, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *Service) rejectReason(c *domain.Coupon, orderTotal int64) string {
	if c.Status != domain.CouponActive {
		return "This coupon is not active"
	}
	now := s.now()
	if c.StartAt != nil && now.Before(*c.StartAt) {
		return "This coupon is not active yet"
	}
	if c.EndAt != nil && now.After(*c.EndAt) {
		return "This coupon has expired"
	}
	if c.Exhausted() {
		return "This coupon has reached its usage limit"
	}
	if orderTotal < c.MinOrderAmount {
		return fmt.Sprintf("Minimum order amount of %s required", whatsapp.FormatAmount(c.MinOrderAmount))
	}
	return ""
}

func (s *Service) ownedStore(ctx context.Context, merchantID, storeID string) (*domain.Store, error) {
	st, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != merchantID {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

func (s *Service) ownedPremiumStore(ctx context.Context, merchantID, storeID string) (*domain.Store, error) {
	st, err := s.ownedStore(ctx, merchantID, storeID)
	if err != nil {
		return nil, err
	}
	if !st.Premium.CouponsEnabled {
		return nil, fmt.Errorf("coupons require a paid plan: %w", domain.ErrForbidden)
	}
	return st, nil
}

func fromInput(storeID string, in Input) (*domain.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return nil, domain.Invalid("coupon code required")
	}
	switch in.Type {
	case domain.CouponFlat, domain.CouponPercent:
	default:
		return nil, domain.Invalid("coupon type must be flat or percent")
	}
	if in.Value <= 0 {
		return nil, domain.Invalid("coupon value must be positive")
	}
	if in.Type == domain.CouponPercent && in.Value > 100 {
		return nil, domain.Invalid("percent discount cannot exceed 100")
	}
	if in.MinOrderAmount < 0 {
		return nil, domain.Invalid("minimum order amount cannot be negative")
	}
	status := in.Status
	if status == "" {
		status = domain.CouponActive
	}
	switch status {
	case domain.CouponActive, domain.CouponExpired, domain.CouponDisabled:
	default:
		return nil, domain.Invalid("unknown coupon status")
	}
	if in.StartAt != nil && in.EndAt != nil && in.EndAt.Before(*in.StartAt) {
		return nil, domain.Invalid("coupon end date precedes start date")
	}
	limit := domain.UnlimitedUsage
	if in.UsageLimit != nil {
		if *in.UsageLimit == 0 || *in.UsageLimit < domain.UnlimitedUsage {
			return nil, domain.Invalid("usage limit must be -1 or a positive count")
		}
		limit = *in.UsageLimit
	}
	return &domain.Coupon{
		StoreID:        storeID,
		Code:           code,
		Type:           in.Type,
		Value:          in.Value,
		Status:         status,
		StartAt:        in.StartAt,
		EndAt:          in.EndAt,
		UsageLimit:     limit,
		MinOrderAmount: in.MinOrderAmount,
	}, nil
}
