// Package checkout computes order totals and validates the contact form
// before a cart is submitted.
package checkout

import (
	"regexp"
	"strings"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	"github.com/prabhatlnct2008/mywabiz/internal/storefront/cart"
)

var (
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Customer is the checkout contact form.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// Totals is the priced summary shown before submission.
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shipping_fee"`
	Discount    int64 `json:"discount"`
	Total       int64 `json:"total"`
}

// Compute derives the order totals from the cart and the store's shipping
// configuration. Delivery adds the store's flat fee; pickup is free. The
// total never goes below zero.
func Compute(lines []cart.Line, method string, shipping domain.ShippingConfig, discount int64) Totals {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.Price * int64(l.Quantity)
	}
	var fee int64
	if method == domain.ShippingDelivery {
		fee = shipping.DeliveryFee
	}
	total := subtotal + fee - discount
	if total < 0 {
		total = 0
	}
	return Totals{Subtotal: subtotal, ShippingFee: fee, Discount: discount, Total: total}
}

// DefaultMethod picks the shipping method a fresh checkout starts with:
// pickup when the store offers it, else delivery.
func DefaultMethod(shipping domain.ShippingConfig) string {
	if shipping.PickupEnabled {
		return domain.ShippingPickup
	}
	return domain.ShippingDelivery
}

// Validate checks the whole form and returns every violation, so the caller
// can show all of them at once. An empty slice means the draft is ready to
// submit.
func Validate(c Customer, method string, lines []cart.Line) []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "Please enter your name")
	}
	phone := strings.Join(strings.Fields(c.Phone), "")
	if !phonePattern.MatchString(phone) {
		errs = append(errs, "Please enter a valid 10-digit phone number")
	}
	if email := strings.TrimSpace(c.Email); email != "" && !emailPattern.MatchString(email) {
		errs = append(errs, "Please enter a valid email address")
	}
	if method == domain.ShippingDelivery && strings.TrimSpace(c.Address) == "" {
		errs = append(errs, "Please enter your delivery address")
	}
	if len(lines) == 0 {
		errs = append(errs, "Your cart is empty")
	}
	return errs
}
