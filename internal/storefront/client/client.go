// Package client is the storefront's REST adapter: it resolves stores,
// browses catalogs and submits checkouts against the public API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	"github.com/prabhatlnct2008/mywabiz/internal/storefront/cart"
	"github.com/prabhatlnct2008/mywabiz/internal/storefront/checkout"
)

// Client talks to the public storefront API. The zero HTTP client falls
// back to http.DefaultClient.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// APIError is a non-success response from the API, with the server's
// message when one was provided.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// NotFound reports whether err is the API's not-found response, so callers
// can render a terminal view instead of a retryable error.
func NotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Storefront is the public store view with its published page links.
type Storefront struct {
	Store struct {
		ID             string                `json:"id"`
		Name           string                `json:"name"`
		Slug           string                `json:"slug"`
		WhatsAppNumber string                `json:"whatsapp_number"`
		Language       string                `json:"language"`
		Template       string                `json:"template"`
		Theme          string                `json:"theme"`
		Currency       string                `json:"currency"`
		Branding       domain.Branding       `json:"branding"`
		Sections       domain.Sections       `json:"sections"`
		Shipping       domain.ShippingConfig `json:"shipping"`
		ShowBranding   bool                  `json:"show_branding"`
	} `json:"store"`
	Pages []struct {
		Title string `json:"title"`
		Slug  string `json:"slug"`
	} `json:"pages"`
}

// Listing is one catalog page.
type Listing struct {
	Products   []domain.Product `json:"products"`
	Categories []string         `json:"categories"`
	Total      int              `json:"total"`
}

// OrderResult is a successful checkout: the created order and the one-time
// WhatsApp deep-link that hands it to the merchant.
type OrderResult struct {
	Order       domain.Order `json:"order"`
	WhatsAppURL string       `json:"whatsapp_url"`
}

// CouponResult is the coupon pre-check response.
type CouponResult struct {
	Valid    bool   `json:"valid"`
	Message  string `json:"message,omitempty"`
	Discount int64  `json:"discount"`
	Code     string `json:"code,omitempty"`
}

// TrackedOrder is the anonymous order-tracking view.
type TrackedOrder struct {
	OrderNumber    string             `json:"order_number"`
	Status         string             `json:"status"`
	PaymentStatus  string             `json:"payment_status"`
	ShippingMethod string             `json:"shipping_method"`
	Items          []domain.OrderItem `json:"items"`
	Currency       string             `json:"currency"`
	Subtotal       int64              `json:"subtotal"`
	ShippingFee    int64              `json:"shipping_fee"`
	DiscountAmount int64              `json:"discount_amount"`
	Total          int64              `json:"total"`
	StoreName      string             `json:"store_name"`
	StoreSlug      string             `json:"store_slug"`
}

// GetStore resolves a storefront by its public slug.
func (c *Client) GetStore(ctx context.Context, slug string) (*Storefront, error) {
	var out Storefront
	err := c.get(ctx, "/api/storefront/"+url.PathEscape(slug), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProducts fetches one catalog page; category may be empty.
func (c *Client) ListProducts(ctx context.Context, slug, category string, page, limit int) (*Listing, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/storefront/" + url.PathEscape(slug) + "/products"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out Listing
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches one visible product.
func (c *Client) GetProduct(ctx context.Context, slug, productID string) (*domain.Product, error) {
	var out domain.Product
	err := c.get(ctx, "/api/storefront/"+url.PathEscape(slug)+"/products/"+url.PathEscape(productID), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
}

type orderRequest struct {
	Items          []orderItemRequest `json:"items"`
	Customer       checkout.Customer  `json:"customer"`
	ShippingMethod string             `json:"shipping_method"`
	CouponCode     string             `json:"coupon_code,omitempty"`
	PaymentMethod  string             `json:"payment_method,omitempty"`
}

// SubmitOrder sends the cart and contact form to the order endpoint. Prices
// never leave the client; the server reprices every line. The caller clears
// the cart only after a nil error.
func (c *Client) SubmitOrder(ctx context.Context, slug string, lines []cart.Line, customer checkout.Customer, shippingMethod, couponCode string) (*OrderResult, error) {
	req := orderRequest{
		Customer:       customer,
		ShippingMethod: shippingMethod,
		CouponCode:     couponCode,
	}
	for _, l := range lines {
		req.Items = append(req.Items, orderItemRequest{
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
		})
	}

	var out OrderResult
	err := c.post(ctx, "/api/storefront/"+url.PathEscape(slug)+"/orders", req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateCoupon pre-checks a code against the running cart total.
func (c *Client) ValidateCoupon(ctx context.Context, slug, code string, orderTotal int64) (*CouponResult, error) {
	body := map[string]any{"code": code, "order_total": orderTotal}
	var out CouponResult
	err := c.post(ctx, "/api/storefront/"+url.PathEscape(slug)+"/coupons/validate", body, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackOrder fetches the anonymous tracking view for a token.
func (c *Client) TrackOrder(ctx context.Context, token string) (*TrackedOrder, error) {
	var out TrackedOrder
	err := c.get(ctx, "/api/track/"+url.PathEscape(token), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.send(req, into)
}

func (c *Client) post(ctx context.Context, path string, body, into any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, into)
}

func (c *Client) send(req *http.Request, into any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}
	if into == nil {
		return nil
	}
	return json.Unmarshal(raw, into)
}
