package domain

import "time"

// Order statuses. The happy path is linear; cancelled is reachable from any
// non-terminal status. Delivered and cancelled are terminal.
const (
	StatusInitiated      = "initiated"
	StatusSentToWhatsApp = "sent_to_whatsapp"
	StatusConfirmed      = "confirmed"
	StatusShipped        = "shipped"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// Shipping methods.
const (
	ShippingPickup   = "pickup"
	ShippingDelivery = "delivery"
)

// Payment methods and statuses.
const (
	PaymentCash   = "cash"
	PaymentPayPal = "paypal"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// orderTransitions is the full transition table. A status may only move to
// one of the listed targets; anything else is rejected.
var orderTransitions = map[string][]string{
	StatusInitiated:      {StatusSentToWhatsApp, StatusCancelled},
	StatusSentToWhatsApp: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TerminalStatus reports whether no further transitions exist from s.
func TerminalStatus(s string) bool {
	return len(orderTransitions[s]) == 0
}

// OrderCustomer is the buyer contact block captured at checkout.
type OrderCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// OrderItem is a server-priced line snapshot. UnitPrice and LineTotal are
// computed from the live product at creation time, never taken from the
// client.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

// Order is a placed order. WhatsAppMessage is the formatted merchant
// notification; the wa.me deep-link built from it is returned once at
// creation and never persisted.
type Order struct {
	ID              string        `json:"id"`
	StoreID         string        `json:"store_id"`
	OrderNumber     string        `json:"order_number"`
	Customer        OrderCustomer `json:"customer"`
	Items           []OrderItem   `json:"items"`
	Currency        string        `json:"currency"`
	Subtotal        int64         `json:"subtotal"`
	ShippingMethod  string        `json:"shipping_method"`
	ShippingFee     int64         `json:"shipping_fee"`
	DiscountAmount  int64         `json:"discount_amount"`
	CouponCode      string        `json:"coupon_code,omitempty"`
	Total           int64         `json:"total"`
	PaymentMethod   string        `json:"payment_method"`
	PaymentStatus   string        `json:"payment_status"`
	Status          string        `json:"status"`
	TrackToken      string        `json:"track_token"`
	WhatsAppMessage string        `json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
