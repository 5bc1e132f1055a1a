package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	"github.com/prabhatlnct2008/mywabiz/internal/service/coupon"
	"github.com/prabhatlnct2008/mywabiz/internal/service/order"
	"github.com/prabhatlnct2008/mywabiz/internal/service/page"
	"github.com/prabhatlnct2008/mywabiz/internal/service/product"
	"github.com/prabhatlnct2008/mywabiz/internal/service/store"
)

// publicStore is the storefront view of a store: everything a shopper's
// browser needs and nothing the merchant dashboard keeps private.
type publicStore struct {
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
	Payments       publicPayments        `json:"payments"`
	ShowBranding   bool                  `json:"show_branding"`
}

type publicPayments struct {
	CODEnabled     bool   `json:"cod_enabled"`
	PayPalEnabled  bool   `json:"paypal_enabled"`
	PayPalClientID string `json:"paypal_client_id,omitempty"`
}

type publicPageLink struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type storefrontResponse struct {
	Store publicStore      `json:"store"`
	Pages []publicPageLink `json:"pages"`
}

type trackResponse struct {
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

func toPublicStore(st domain.Store) publicStore {
	return publicStore{
		ID:             st.ID,
		Name:           st.Name,
		Slug:           st.Slug,
		WhatsAppNumber: st.WhatsAppNumber,
		Language:       st.Language,
		Template:       st.Template,
		Theme:          st.Theme,
		Currency:       st.Currency,
		Branding:       st.Branding,
		Sections:       st.Sections,
		Shipping:       st.Shipping,
		Payments: publicPayments{
			CODEnabled:     st.Payments.CODEnabled,
			PayPalEnabled:  st.Payments.PayPalEnabled,
			PayPalClientID: st.Payments.PayPalClientID,
		},
		ShowBranding: !st.Premium.BrandingRemoval,
	}
}

func storefrontHandler(stores *store.Service, pages *page.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stores.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		published, err := pages.PublicList(c.Request.Context(), st.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		links := make([]publicPageLink, 0, len(published))
		for _, p := range published {
			links = append(links, publicPageLink{Title: p.Title, Slug: p.Slug})
		}
		c.JSON(http.StatusOK, storefrontResponse{Store: toPublicStore(*st), Pages: links})
	}
}

func storefrontProductsHandler(stores *store.Service, products *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stores.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		listing, err := products.PublicList(c.Request.Context(), st.ID, c.Query("category"), queryInt(c, "page", 1), queryInt(c, "limit", 50))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, listing)
	}
}

func storefrontProductHandler(stores *store.Service, products *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stores.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		p, err := products.PublicGet(c.Request.Context(), st.ID, c.Param("productID"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func storefrontOrderHandler(stores *store.Service, orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stores.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		var in order.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		res, err := orders.Create(c.Request.Context(), st.ID, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

type couponValidateRequest struct {
	Code       string `json:"code"`
	OrderTotal int64  `json:"order_total"`
}

func storefrontCouponHandler(stores *store.Service, coupons *coupon.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stores.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		var in couponValidateRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		v, err := coupons.Validate(c.Request.Context(), st.ID, in.Code, in.OrderTotal)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func storefrontPageHandler(stores *store.Service, pages *page.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stores.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		p, err := pages.PublicGet(c.Request.Context(), st.ID, c.Param("pageSlug"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func trackOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, st, err := orders.Track(c.Request.Context(), c.Param("token"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, trackResponse{
			OrderNumber:    o.OrderNumber,
			Status:         o.Status,
			PaymentStatus:  o.PaymentStatus,
			ShippingMethod: o.ShippingMethod,
			Items:          o.Items,
			Currency:       o.Currency,
			Subtotal:       o.Subtotal,
			ShippingFee:    o.ShippingFee,
			DiscountAmount: o.DiscountAmount,
			Total:          o.Total,
			StoreName:      st.Name,
			StoreSlug:      st.Slug,
		})
	}
}
