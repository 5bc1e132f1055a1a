package httpserver

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

func TestCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "owner@example.com")
	st := env.createStore(t, token, "Chai Point", "chai-point")
	p := env.createProduct(t, token, st.ID, map[string]any{
		"name": "Masala Chai", "category": "Drinks", "price": 20000, "stock": 10,
	})

	w := env.do(t, http.MethodPost, "/api/storefront/chai-point/orders", "", map[string]any{
		"items": []map[string]any{
			{"product_id": p.ID, "quantity": 2},
		},
		"customer": map[string]string{
			"name": "Ravi", "phone": "9876543210", "address": "12 MG Road",
		},
		"shipping_method": "delivery",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: status %d body %s", w.Code, w.Body.String())
	}
	var res struct {
		Order       domain.Order `json:"order"`
		WhatsAppURL string       `json:"whatsapp_url"`
	}
	decode(t, w, &res)

	if res.Order.OrderNumber != "10001" {
		t.Errorf("order number = %q, want 10001", res.Order.OrderNumber)
	}
	if res.Order.Subtotal != 40000 || res.Order.Total != 40000 {
		t.Errorf("totals = %d/%d, want 40000/40000", res.Order.Subtotal, res.Order.Total)
	}
	if res.Order.Status != domain.StatusSentToWhatsApp {
		t.Errorf("status = %q, want sent_to_whatsapp", res.Order.Status)
	}
	if !strings.HasPrefix(res.WhatsAppURL, "https://wa.me/919876543210?text=") {
		t.Errorf("whatsapp url = %q", res.WhatsAppURL)
	}

	// Stock was decremented on the live product.
	got, err := env.products.GetByID(context.Background(), st.ID, p.ID)
	if err != nil {
		t.Fatalf("product lookup: %v", err)
	}
	if got.Stock != 8 {
		t.Errorf("stock = %d, want 8", got.Stock)
	}

	// Second order continues the sequence.
	w = env.do(t, http.MethodPost, "/api/storefront/chai-point/orders", "", map[string]any{
		"items":           []map[string]any{{"product_id": p.ID, "quantity": 1}},
		"customer":        map[string]string{"name": "Mina", "phone": "9876500000"},
		"shipping_method": "pickup",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("second order: status %d body %s", w.Code, w.Body.String())
	}
	var second struct {
		Order domain.Order `json:"order"`
	}
	decode(t, w, &second)
	if second.Order.OrderNumber != "10002" {
		t.Errorf("second order number = %q, want 10002", second.Order.OrderNumber)
	}

	// Merchant sees both orders and can walk the status chain.
	w = env.do(t, http.MethodGet, "/api/stores/"+st.ID+"/orders", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list orders: status %d", w.Code)
	}
	var list struct {
		Orders []domain.Order `json:"orders"`
	}
	decode(t, w, &list)
	if len(list.Orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(list.Orders))
	}

	orderID := res.Order.ID
	w = env.do(t, http.MethodPatch, "/api/stores/"+st.ID+"/orders/"+orderID, token, map[string]string{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: status %d body %s", w.Code, w.Body.String())
	}

	// Skipping shipped is rejected.
	w = env.do(t, http.MethodPatch, "/api/stores/"+st.ID+"/orders/"+orderID, token, map[string]string{"status": "delivered"})
	if w.Code != http.StatusConflict {
		t.Errorf("confirmed -> delivered: status %d, want 409", w.Code)
	}

	// Anonymous tracking works with the token alone.
	w = env.do(t, http.MethodGet, "/api/track/"+res.Order.TrackToken, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("track: status %d body %s", w.Code, w.Body.String())
	}
	var tracked struct {
		OrderNumber string `json:"order_number"`
		Status      string `json:"status"`
		StoreSlug   string `json:"store_slug"`
	}
	decode(t, w, &tracked)
	if tracked.OrderNumber != "10001" || tracked.Status != "confirmed" || tracked.StoreSlug != "chai-point" {
		t.Errorf("tracked = %+v", tracked)
	}
}

func TestStoreStats(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "owner@example.com")
	st := env.createStore(t, token, "Chai Point", "chai-point")
	p := env.createProduct(t, token, st.ID, map[string]any{
		"name": "Masala Chai", "category": "Drinks", "price": 20000, "stock": 10,
	})

	for _, qty := range []int{2, 1} {
		w := env.do(t, http.MethodPost, "/api/storefront/chai-point/orders", "", map[string]any{
			"items":           []map[string]any{{"product_id": p.ID, "quantity": qty}},
			"customer":        map[string]string{"name": "Ravi", "phone": "9876543210"},
			"shipping_method": "pickup",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create order: status %d body %s", w.Code, w.Body.String())
		}
	}

	w := env.do(t, http.MethodGet, "/api/stores/"+st.ID+"/stats?timeframe=7d", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: status %d body %s", w.Code, w.Body.String())
	}
	var stats struct {
		OrdersCount int    `json:"orders_count"`
		SalesTotal  int64  `json:"sales_total"`
		Timeframe   string `json:"timeframe"`
	}
	decode(t, w, &stats)
	if stats.OrdersCount != 2 || stats.SalesTotal != 60000 {
		t.Errorf("stats = %+v, want 2 orders totalling 60000", stats)
	}
	if stats.Timeframe != "7d" {
		t.Errorf("timeframe = %q, want 7d", stats.Timeframe)
	}

	// Unknown timeframes fall back to the weekly window.
	w = env.do(t, http.MethodGet, "/api/stores/"+st.ID+"/stats?timeframe=2y", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats fallback: status %d", w.Code)
	}
	decode(t, w, &stats)
	if stats.Timeframe != "7d" {
		t.Errorf("fallback timeframe = %q, want 7d", stats.Timeframe)
	}

	// Another merchant cannot read them.
	other := env.signup(t, "other@example.com")
	w = env.do(t, http.MethodGet, "/api/stores/"+st.ID+"/stats", other, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign stats: status %d, want 404", w.Code)
	}
}

func TestCheckoutStockExhaustion(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "owner@example.com")
	st := env.createStore(t, token, "Chai Point", "chai-point")
	p := env.createProduct(t, token, st.ID, map[string]any{
		"name": "Limited Mug", "price": 30000, "stock": 1,
	})

	w := env.do(t, http.MethodPost, "/api/storefront/chai-point/orders", "", map[string]any{
		"items":           []map[string]any{{"product_id": p.ID, "quantity": 3}},
		"customer":        map[string]string{"name": "Ravi", "phone": "9876543210"},
		"shipping_method": "pickup",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("over-order: status %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "stock") {
		t.Errorf("body = %s, want a stock message", w.Body.String())
	}
}

func TestCheckoutWithCoupon(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "owner@example.com")
	st := env.createStore(t, token, "Chai Point", "chai-point")
	p := env.createProduct(t, token, st.ID, map[string]any{
		"name": "Gift Box", "price": 100000,
	})

	// Coupons are plan-gated, so flip the store onto a paid plan directly.
	stored, err := env.stores.GetByID(context.Background(), st.ID)
	if err != nil {
		t.Fatalf("store lookup: %v", err)
	}
	stored.Premium = domain.Premium{Plan: domain.PlanGrowth, CouponsEnabled: true, CustomPagesEnabled: true, ProductLimit: 500}
	if _, err := env.stores.Update(context.Background(), *stored); err != nil {
		t.Fatalf("store update: %v", err)
	}

	w := env.do(t, http.MethodPost, "/api/stores/"+st.ID+"/coupons", token, map[string]any{
		"code": "festive20", "type": "percent", "value": 20,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create coupon: status %d body %s", w.Code, w.Body.String())
	}

	// Shopper checks the code before placing the order.
	w = env.do(t, http.MethodPost, "/api/storefront/chai-point/coupons/validate", "", map[string]any{
		"code": "FESTIVE20", "order_total": 100000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("validate: status %d body %s", w.Code, w.Body.String())
	}
	var v struct {
		Valid    bool  `json:"valid"`
		Discount int64 `json:"discount"`
	}
	decode(t, w, &v)
	if !v.Valid || v.Discount != 20000 {
		t.Fatalf("validation = %+v, want valid with 20000 off", v)
	}

	w = env.do(t, http.MethodPost, "/api/storefront/chai-point/orders", "", map[string]any{
		"items":           []map[string]any{{"product_id": p.ID, "quantity": 1}},
		"customer":        map[string]string{"name": "Ravi", "phone": "9876543210"},
		"shipping_method": "pickup",
		"coupon_code":     "festive20",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("order with coupon: status %d body %s", w.Code, w.Body.String())
	}
	var res struct {
		Order domain.Order `json:"order"`
	}
	decode(t, w, &res)
	if res.Order.DiscountAmount != 20000 || res.Order.Total != 80000 {
		t.Errorf("discount/total = %d/%d, want 20000/80000", res.Order.DiscountAmount, res.Order.Total)
	}

	// Usage was recorded.
	c, err := env.coupons.GetByCode(context.Background(), st.ID, "FESTIVE20")
	if err != nil {
		t.Fatalf("coupon lookup: %v", err)
	}
	if c.UsedCount != 1 {
		t.Errorf("used count = %d, want 1", c.UsedCount)
	}
}
