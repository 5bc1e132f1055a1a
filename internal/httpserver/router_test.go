package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	"github.com/prabhatlnct2008/mywabiz/internal/service/auth"
	"github.com/prabhatlnct2008/mywabiz/internal/service/coupon"
	"github.com/prabhatlnct2008/mywabiz/internal/service/order"
	"github.com/prabhatlnct2008/mywabiz/internal/service/page"
	"github.com/prabhatlnct2008/mywabiz/internal/service/product"
	"github.com/prabhatlnct2008/mywabiz/internal/service/store"
	"github.com/prabhatlnct2008/mywabiz/internal/service/upload"
)

type testEnv struct {
	router    *gin.Engine
	merchants *memMerchantRepo
	stores    *memStoreRepo
	products  *memProductRepo
	orders    *memOrderRepo
	coupons   *memCouponRepo
	pages     *memPageRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		merchants: newMemMerchantRepo(),
		stores:    newMemStoreRepo(),
		products:  newMemProductRepo(),
		orders:    newMemOrderRepo(),
		coupons:   newMemCouponRepo(),
		pages:     newMemPageRepo(),
	}

	authSvc := auth.New(env.merchants, "test-secret", time.Hour)
	storeSvc := store.New(env.stores)
	productSvc := product.New(env.products, env.stores)
	couponSvc := coupon.New(env.coupons, env.stores)
	pageSvc := page.New(env.pages, env.stores)
	orderSvc := order.New(env.orders, env.products, env.stores, couponSvc, "mywabiz.in")
	uploadSvc, err := upload.New("")
	if err != nil {
		t.Fatalf("upload.New: %v", err)
	}

	env.router = buildRouter(log.New(io.Discard, "", 0), nil, Deps{
		Auth:     authSvc,
		Stores:   storeSvc,
		Products: productSvc,
		Orders:   orderSvc,
		Coupons:  couponSvc,
		Pages:    pageSvc,
		Uploads:  uploadSvc,
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": email, "password": "hunter2hunter2", "name": "Asha",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: status %d body %s", w.Code, w.Body.String())
	}
	var session struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &session)
	if session.AccessToken == "" {
		t.Fatal("signup returned no token")
	}
	return session.AccessToken
}

func (e *testEnv) createStore(t *testing.T, token, name, slug string) domain.Store {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/stores", token, map[string]string{
		"name": name, "slug": slug, "whatsapp_number": "+919876543210",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create store: status %d body %s", w.Code, w.Body.String())
	}
	var st domain.Store
	decode(t, w, &st)
	return st
}

func (e *testEnv) createProduct(t *testing.T, token, storeID string, in map[string]any) domain.Product {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/stores/"+storeID+"/products", token, in)
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: status %d body %s", w.Code, w.Body.String())
	}
	var p domain.Product
	decode(t, w, &p)
	return p
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/readyz", "", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "asha@example.com")

	w := env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d body %s", w.Code, w.Body.String())
	}
	var m domain.Merchant
	decode(t, w, &m)
	if m.Email != "asha@example.com" {
		t.Errorf("email = %q", m.Email)
	}

	w = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "asha@example.com", "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login: status %d, want 401", w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/stores", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", w.Code)
	}
	w = env.do(t, http.MethodGet, "/api/stores", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", w.Code)
	}
}

func TestStoreOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup(t, "owner@example.com")
	intruder := env.signup(t, "intruder@example.com")

	st := env.createStore(t, owner, "Chai Point", "chai-point")

	w := env.do(t, http.MethodGet, "/api/stores/"+st.ID, intruder, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign store read: status %d, want 404", w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/stores/"+st.ID+"/orders", intruder, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign store orders: status %d, want 404", w.Code)
	}
}

func TestDuplicateSlugConflict(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "owner@example.com")
	env.createStore(t, token, "Chai Point", "chai-point")

	w := env.do(t, http.MethodPost, "/api/stores", token, map[string]string{
		"name": "Copycat", "slug": "chai-point", "whatsapp_number": "+919876543210",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate slug: status %d, want 409", w.Code)
	}
}

func TestStorefrontCatalog(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "owner@example.com")
	st := env.createStore(t, token, "Chai Point", "chai-point")

	env.createProduct(t, token, st.ID, map[string]any{
		"name": "Masala Chai", "category": "Drinks", "price": 20000,
	})
	hidden := env.createProduct(t, token, st.ID, map[string]any{
		"name": "Secret Blend", "category": "Drinks", "price": 50000, "availability": "hide",
	})

	w := env.do(t, http.MethodGet, "/api/storefront/chai-point/products", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("storefront products: status %d body %s", w.Code, w.Body.String())
	}
	var listing struct {
		Products   []domain.Product `json:"products"`
		Categories []string         `json:"categories"`
		Total      int              `json:"total"`
	}
	decode(t, w, &listing)
	if len(listing.Products) != 1 || listing.Products[0].Name != "Masala Chai" {
		t.Errorf("products = %+v, want only the visible one", listing.Products)
	}
	if listing.Total != 1 {
		t.Errorf("total = %d, want 1", listing.Total)
	}

	w = env.do(t, http.MethodGet, "/api/storefront/chai-point/products/"+hidden.ID, "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("hidden product: status %d, want 404", w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/storefront/no-such-store/products", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown slug: status %d, want 404", w.Code)
	}
}

func TestStorefrontStoreView(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "owner@example.com")
	env.createStore(t, token, "Chai Point", "chai-point")

	w := env.do(t, http.MethodGet, "/api/storefront/chai-point", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("storefront: status %d body %s", w.Code, w.Body.String())
	}
	var res struct {
		Store map[string]any `json:"store"`
	}
	decode(t, w, &res)
	if res.Store["slug"] != "chai-point" {
		t.Errorf("slug = %v", res.Store["slug"])
	}
	if _, leaked := res.Store["sheets_config"]; leaked {
		t.Error("public store view must not expose sheet sync state")
	}
	if _, leaked := res.Store["premium"]; leaked {
		t.Error("public store view must not expose plan details")
	}
}
