package domain

import "time"

// Coupon types and statuses.
const (
	CouponFlat    = "flat"
	CouponPercent = "percent"

	CouponActive   = "active"
	CouponExpired  = "expired"
	CouponDisabled = "disabled"
)

// UnlimitedUsage is the sentinel UsageLimit meaning the coupon never runs
// out. Only positive limits are enforced as caps.
const UnlimitedUsage = -1

// Coupon is a store-scoped discount code. Value is a flat amount in minor
// units for CouponFlat and a percentage for CouponPercent. MinOrderAmount
// is in minor units.
type Coupon struct {
	ID             string     `json:"id"`
	StoreID        string     `json:"store_id"`
	Code           string     `json:"code"`
	Type           string     `json:"type"`
	Value          int64      `json:"value"`
	Status         string     `json:"status"`
	StartAt        *time.Time `json:"start_at,omitempty"`
	EndAt          *time.Time `json:"end_at,omitempty"`
	UsageLimit     int        `json:"usage_limit"`
	UsedCount      int        `json:"used_count"`
	MinOrderAmount int64      `json:"min_order_amount"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Discount returns the discount this coupon grants on orderTotal. Flat
// discounts never exceed the order total; percent discounts truncate to
// whole minor units.
func (c Coupon) Discount(orderTotal int64) int64 {
	switch c.Type {
	case CouponFlat:
		if c.Value > orderTotal {
			return orderTotal
		}
		return c.Value
	case CouponPercent:
		return orderTotal * c.Value / 100
	}
	return 0
}

// Exhausted reports whether the usage limit has been reached. Limits of
// UnlimitedUsage (or zero) are never enforced.
func (c Coupon) Exhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}
