package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	orderrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/order"
	"github.com/prabhatlnct2008/mywabiz/internal/whatsapp"
)

// firstOrderNumber seeds each store's order sequence.
const firstOrderNumber = 10001

// Service creates orders from checkout submissions and runs the merchant
// order workflow.
type Service struct {
	repo       orderrepo.Repository
	products   productReader
	stores     storeReader
	coupons    couponChecker
	publicHost string
	now        func() time.Time
}

type productReader interface {
	GetByID(ctx context.Context, storeID, id string) (*domain.Product, error)
	DecrementStock(ctx context.Context, storeID, id string, qty int) error
}

type storeReader interface {
	GetByID(ctx context.Context, id string) (*domain.Store, error)
}

// couponChecker is satisfied by the coupon service. Redeem reports the
// discount for a code and records one usage.
type couponChecker interface {
	Check(ctx context.Context, storeID, code string, orderTotal int64) (int64, error)
	Redeem(ctx context.Context, storeID, code string) error
}

func New(repo orderrepo.Repository, products productReader, stores storeReader, coupons couponChecker, publicHost string) *Service {
	return &Service{
		repo:       repo,
		products:   products,
		stores:     stores,
		coupons:    coupons,
		publicHost: publicHost,
		now:        time.Now,
	}
}

// ItemInput is one checkout line: identity and quantity only. Prices come
// from the live catalog so clients cannot tamper with them.
type ItemInput struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
}

// CreateInput is the public order-creation payload.
type CreateInput struct {
	Items          []ItemInput          `json:"items"`
	Customer       domain.OrderCustomer `json:"customer"`
	ShippingMethod string               `json:"shipping_method"`
	CouponCode     string               `json:"coupon_code,omitempty"`
	PaymentMethod  string               `json:"payment_method,omitempty"`
}

// CreateResult pairs the stored order with the one-time WhatsApp deep-link.
type CreateResult struct {
	Order       *domain.Order `json:"order"`
	WhatsAppURL string        `json:"whatsapp_url"`
}

// UpdateInput carries the merchant PATCH fields; empty strings skip a field.
type UpdateInput struct {
	Status        string `json:"status,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

// Create prices and stores a new order for the given store, returning the
// order together with the wa.me link that sends it to the merchant.
func (s *Service) Create(ctx context.Context, storeID string, in CreateInput) (*CreateResult, error) {
	st, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := s.validateCreate(st, in); err != nil {
		return nil, err
	}

	items, subtotal, err := s.priceItems(ctx, storeID, in.Items)
	if err != nil {
		return nil, err
	}

	var shippingFee int64
	if in.ShippingMethod == domain.ShippingDelivery {
		shippingFee = st.Shipping.DeliveryFee
	}

	var discount int64
	couponCode := strings.ToUpper(strings.TrimSpace(in.CouponCode))
	if couponCode != "" && s.coupons != nil {
		discount, err = s.coupons.Check(ctx, storeID, couponCode, subtotal)
		if err != nil {
			return nil, err
		}
	}

	total := subtotal + shippingFee - discount
	if total < 0 {
		total = 0
	}

	number, err := s.nextOrderNumber(ctx, storeID)
	if err != nil {
		return nil, err
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentCash
	}

	o := domain.Order{
		StoreID:        storeID,
		OrderNumber:    number,
		Customer:       in.Customer,
		Items:          items,
		Currency:       st.Currency,
		Subtotal:       subtotal,
		ShippingMethod: in.ShippingMethod,
		ShippingFee:    shippingFee,
		DiscountAmount: discount,
		CouponCode:     couponCode,
		Total:          total,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  domain.PaymentPending,
		Status:         domain.StatusInitiated,
		TrackToken:     uuid.NewString(),
	}
	o.WhatsAppMessage = whatsapp.BuildMessage(o, *st, s.publicHost)

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	// The deep-link hands the order to the merchant's chat; record that.
	created, err = s.repo.SetStatus(ctx, storeID, created.ID, domain.StatusSentToWhatsApp, "")
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := s.products.DecrementStock(ctx, storeID, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}
	if couponCode != "" && discount > 0 && s.coupons != nil {
		if err := s.coupons.Redeem(ctx, storeID, couponCode); err != nil {
			return nil, err
		}
	}

	return &CreateResult{
		Order:       created,
		WhatsAppURL: whatsapp.DeepLink(st.WhatsAppNumber, created.WhatsAppMessage),
	}, nil
}

// List returns a store's orders for the merchant dashboard.
func (s *Service) List(ctx context.Context, storeID string, f orderrepo.ListFilter) ([]domain.Order, error) {
	if f.Status != "" && !domain.ValidStatus(f.Status) {
		return nil, domain.Invalid("unknown status filter")
	}
	return s.repo.ListByStore(ctx, storeID, f)
}

// Get returns one order for the merchant dashboard.
func (s *Service) Get(ctx context.Context, storeID, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, storeID, orderID)
}

// Update applies a merchant status/payment-status change. Status moves are
// checked against the transition table before anything is written.
func (s *Service) Update(ctx context.Context, storeID, orderID string, in UpdateInput) (*domain.Order, error) {
	if in.Status == "" && in.PaymentStatus == "" {
		return nil, domain.Invalid("nothing to update")
	}
	if in.PaymentStatus != "" {
		switch in.PaymentStatus {
		case domain.PaymentPending, domain.PaymentPaid, domain.PaymentFailed:
		default:
			return nil, domain.Invalid("unknown payment status")
		}
	}

	o, err := s.repo.GetByID(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}
	if in.Status != "" {
		if !domain.ValidStatus(in.Status) {
			return nil, domain.Invalid("unknown status")
		}
		if !domain.CanTransition(o.Status, in.Status) {
			return nil, fmt.Errorf("%s -> %s: %w", o.Status, in.Status, domain.ErrInvalidTransition)
		}
	}

	return s.repo.SetStatus(ctx, storeID, orderID, in.Status, in.PaymentStatus)
}

// statsTimeframes maps dashboard windows to their length in days.
var statsTimeframes = map[string]int{
	"1d":  1,
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// Stats is the dashboard snapshot of a store's recent orders.
type Stats struct {
	OrdersCount int    `json:"orders_count"`
	SalesTotal  int64  `json:"sales_total"`
	Visits      int    `json:"visits"`
	Timeframe   string `json:"timeframe"`
}

// Stats aggregates order count and sales total over a timeframe (1d, 7d,
// 30d or 90d). Unknown timeframes fall back to 7d.
func (s *Service) Stats(ctx context.Context, storeID, timeframe string) (*Stats, error) {
	days, ok := statsTimeframes[timeframe]
	if !ok {
		timeframe, days = "7d", 7
	}
	since := s.now().AddDate(0, 0, -days)

	agg, err := s.repo.StatsByStore(ctx, storeID, since)
	if err != nil {
		return nil, err
	}
	return &Stats{
		OrdersCount: agg.OrdersCount,
		SalesTotal:  agg.SalesTotal,
		Timeframe:   timeframe,
	}, nil
}

// Track returns the anonymous tracking view for a token.
func (s *Service) Track(ctx context.Context, token string) (*domain.Order, *domain.Store, error) {
	o, err := s.repo.GetByTrackToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	st, err := s.stores.GetByID(ctx, o.StoreID)
	if err != nil {
		return nil, nil, err
	}
	return o, st, nil
}

func (s *Service) validateCreate(st *domain.Store, in CreateInput) error {
	if len(in.Items) == 0 {
		return domain.Invalid("order has no items")
	}
	if strings.TrimSpace(in.Customer.Name) == "" {
		return domain.Invalid("customer name required")
	}
	if strings.TrimSpace(in.Customer.Phone) == "" {
		return domain.Invalid("customer phone required")
	}
	switch in.ShippingMethod {
	case domain.ShippingPickup:
		if !st.Shipping.PickupEnabled {
			return domain.Invalid("pickup is not enabled for this store")
		}
	case domain.ShippingDelivery:
		if !st.Shipping.DeliveryEnabled {
			return domain.Invalid("delivery is not enabled for this store")
		}
		if strings.TrimSpace(in.Customer.Address) == "" {
			return domain.Invalid("delivery address required")
		}
	default:
		return domain.Invalid("shipping method must be pickup or delivery")
	}
	switch in.PaymentMethod {
	case "", domain.PaymentCash:
		if !st.Payments.CODEnabled {
			return domain.Invalid("cash on delivery is not enabled for this store")
		}
	case domain.PaymentPayPal:
		if !st.Payments.PayPalEnabled {
			return domain.Invalid("paypal is not enabled for this store")
		}
	default:
		return domain.Invalid("unknown payment method")
	}
	return nil
}

func (s *Service) priceItems(ctx context.Context, storeID string, items []ItemInput) ([]domain.OrderItem, int64, error) {
	priced := make([]domain.OrderItem, 0, len(items))
	var subtotal int64
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, 0, domain.Invalid("quantity must be positive")
		}
		p, err := s.products.GetByID(ctx, storeID, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, 0, domain.Invalidf("product %s not found or unavailable", item.ProductID)
			}
			return nil, 0, err
		}
		if !p.Visible() {
			return nil, 0, domain.Invalidf("product %s not found or unavailable", item.ProductID)
		}
		if !p.InStock(item.Quantity) {
			return nil, 0, domain.Invalidf("insufficient stock for %s", p.Name)
		}

		lineTotal := p.Price * int64(item.Quantity)
		subtotal += lineTotal
		priced = append(priced, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
			LineTotal: lineTotal,
		})
	}
	return priced, subtotal, nil
}

func (s *Service) nextOrderNumber(ctx context.Context, storeID string) (string, error) {
	last, err := s.repo.LastOrderNumber(ctx, storeID)
	if err != nil {
		return "", err
	}
	if last != "" {
		if n, err := strconv.Atoi(last); err == nil {
			return strconv.Itoa(n + 1), nil
		}
	}
	return strconv.Itoa(firstOrderNumber), nil
}
