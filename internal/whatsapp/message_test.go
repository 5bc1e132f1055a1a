package whatsapp

import (
	"strings"
	"testing"
	"time"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		OrderNumber: "10001",
		Customer: domain.OrderCustomer{
			Name:    "Asha",
			Phone:   "9876543210",
			Address: "12 MG Road, Pune",
		},
		Items: []domain.OrderItem{
			{Name: "Cotton Kurta", Size: "M", Color: "Blue", Quantity: 2, UnitPrice: 20000, LineTotal: 40000},
			{Name: "Plain Mug", Quantity: 1, UnitPrice: 5000, LineTotal: 5000},
		},
		Currency:       "INR",
		Subtotal:       45000,
		ShippingMethod: domain.ShippingDelivery,
		ShippingFee:    5000,
		Total:          50000,
		PaymentMethod:  domain.PaymentCash,
		TrackToken:     "tok-123",
		CreatedAt:      time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC),
	}
}

func sampleStore() domain.Store {
	s := domain.DefaultStore()
	s.Slug = "demo"
	s.WhatsAppNumber = "+91 98765 43210"
	return s
}

func TestBuildMessageEnglish(t *testing.T) {
	msg := BuildMessage(sampleOrder(), sampleStore(), "mywabiz.in")

	for _, want := range []string{
		"Order from demo.mywabiz.in",
		"Order Number: 10001",
		"Date: 07/03/2025",
		"Name: Asha",
		"Phone: 9876543210",
		"2 x Cotton Kurta ( Size - M, Color - Blue )",
		"1 x Plain Mug",
		"Shipping: Delivery",
		"Address: 12 MG Road, Pune",
		"Payment Method: Cash",
		"Subtotal: ₹450.00",
		"Shipping Fee: ₹50.00",
		"Total: ₹500.00",
		"You can track your order at https://demo.mywabiz.in/orders/tok-123",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}

	if strings.Contains(msg, "Email:") {
		t.Fatalf("empty email must be omitted")
	}
	if strings.Contains(msg, "Discount:") {
		t.Fatalf("zero discount must be omitted")
	}
}

func TestBuildMessagePickupOmitsAddress(t *testing.T) {
	o := sampleOrder()
	o.ShippingMethod = domain.ShippingPickup
	o.ShippingFee = 0
	o.Total = 45000

	msg := BuildMessage(o, sampleStore(), "mywabiz.in")
	if !strings.Contains(msg, "Shipping: Pickup") {
		t.Fatalf("expected pickup label:\n%s", msg)
	}
	if strings.Contains(msg, "Address:") {
		t.Fatalf("pickup orders must not include the address line")
	}
	if strings.Contains(msg, "Shipping Fee:") {
		t.Fatalf("zero shipping fee must be omitted")
	}
}

func TestBuildMessageDiscountWithCoupon(t *testing.T) {
	o := sampleOrder()
	o.DiscountAmount = 2500
	o.CouponCode = "SAVE25"
	o.Total = 47500

	msg := BuildMessage(o, sampleStore(), "mywabiz.in")
	if !strings.Contains(msg, "Discount: -₹25.00 (Coupon: SAVE25)") {
		t.Fatalf("expected discount line with coupon:\n%s", msg)
	}
}

func TestBuildMessageLocalized(t *testing.T) {
	s := sampleStore()
	s.Language = "hi"
	msg := BuildMessage(sampleOrder(), s, "mywabiz.in")
	if !strings.Contains(msg, "ऑर्डर नंबर: 10001") {
		t.Fatalf("expected hindi labels:\n%s", msg)
	}

	s.Language = "xx" // unknown language falls back to English
	msg = BuildMessage(sampleOrder(), s, "mywabiz.in")
	if !strings.Contains(msg, "Order Number: 10001") {
		t.Fatalf("expected english fallback:\n%s", msg)
	}
}

func TestDeepLink(t *testing.T) {
	got := DeepLink("+91 98765-43210", "Hello there!")
	if !strings.HasPrefix(got, "https://wa.me/919876543210?text=") {
		t.Fatalf("unexpected deep link: %s", got)
	}
	if strings.ContainsAny(got, " !") {
		t.Fatalf("message must be url-encoded: %s", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		0:     "0.00",
		5:     "0.05",
		45000: "450.00",
		10101: "101.01",
		-250:  "-2.50",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Fatalf("FormatAmount(%d) = %s, want %s", in, got, want)
		}
	}
}
