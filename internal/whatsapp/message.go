// Package whatsapp formats the merchant order notification and builds the
// one-time wa.me deep-link returned at order creation.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

// BuildMessage renders the order notification in the store's language.
// baseHost is the storefront domain (slug.<baseHost> hosts the shop and the
// tracking page).
func BuildMessage(o domain.Order, s domain.Store, baseHost string) string {
	l, ok := labelsByLanguage[s.Language]
	if !ok {
		l = labelsByLanguage["en"]
	}
	sym := currencySymbol(o.Currency)

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	storeURL := s.Slug + "." + baseHost
	line("%s %s", l.OrderFrom, storeURL)
	line("")
	line("%s: %s", l.OrderNumber, o.OrderNumber)
	line("%s: %s", l.Date, o.CreatedAt.Format("02/01/2006"))
	line("")
	line("%s: %s", l.Name, o.Customer.Name)
	if o.Customer.Email != "" {
		line("%s: %s", l.Email, o.Customer.Email)
	}
	line("%s: %s", l.Phone, o.Customer.Phone)
	line("")

	line("%s:", l.Products)
	for _, item := range o.Items {
		var variants []string
		if item.Size != "" {
			variants = append(variants, l.Size+" - "+item.Size)
		}
		if item.Color != "" {
			variants = append(variants, l.Color+" - "+item.Color)
		}
		variantInfo := ""
		if len(variants) > 0 {
			variantInfo = " ( " + strings.Join(variants, ", ") + " )"
		}
		line("%d x %s%s", item.Quantity, item.Name, variantInfo)
	}
	line("")

	shippingLabel := l.Pickup
	if o.ShippingMethod == domain.ShippingDelivery {
		shippingLabel = l.Delivery
	}
	line("%s: %s", l.Shipping, shippingLabel)
	if o.Customer.Address != "" && o.ShippingMethod == domain.ShippingDelivery {
		line("%s: %s", l.Address, o.Customer.Address)
	}
	line("")

	paymentLabel := l.Cash
	if o.PaymentMethod == domain.PaymentPayPal {
		paymentLabel = l.PayPal
	}
	line("%s: %s", l.PaymentMethod, paymentLabel)
	line("")

	line("%s: %s%s", l.Subtotal, sym, FormatAmount(o.Subtotal))
	if o.ShippingFee > 0 {
		line("%s: %s%s", l.ShippingFee, sym, FormatAmount(o.ShippingFee))
	}
	if o.DiscountAmount > 0 {
		couponInfo := ""
		if o.CouponCode != "" {
			couponInfo = " (" + l.Coupon + ": " + o.CouponCode + ")"
		}
		line("%s: -%s%s%s", l.Discount, sym, FormatAmount(o.DiscountAmount), couponInfo)
	}
	line("%s: %s%s", l.Total, sym, FormatAmount(o.Total))
	line("")

	trackURL := "https://" + storeURL + "/orders/" + o.TrackToken
	fmt.Fprintf(&b, "%s %s", l.TrackOrder, trackURL)

	return b.String()
}

// DeepLink builds the wa.me URL that opens the message pre-filled in the
// merchant's WhatsApp chat.
func DeepLink(whatsappNumber, message string) string {
	number := strings.NewReplacer("+", "", " ", "", "-", "").Replace(whatsappNumber)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

// FormatAmount renders a minor-unit amount with two decimal places.
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

func currencySymbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return sym
	}
	return code
}
