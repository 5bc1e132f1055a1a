package store

import (
	"context"
	"regexp"
	"strings"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	storerepo "github.com/prabhatlnct2008/mywabiz/internal/repository/store"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{1,61}[a-z0-9])?$`)

// Service owns store creation and settings management.
type Service struct {
	repo storerepo.Repository
}

func New(repo storerepo.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput is the merchant-supplied part of a new store.
type CreateInput struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Language       string `json:"language,omitempty"`
	Template       string `json:"template,omitempty"`
}

// UpdateInput carries the optional settings sections a PATCH may replace.
// Nil sections are left untouched.
type UpdateInput struct {
	Name           *string                `json:"name,omitempty"`
	WhatsAppNumber *string                `json:"whatsapp_number,omitempty"`
	Language       *string                `json:"language,omitempty"`
	Template       *string                `json:"template,omitempty"`
	Theme          *string                `json:"theme,omitempty"`
	Currency       *string                `json:"currency,omitempty"`
	Branding       *domain.Branding       `json:"branding,omitempty"`
	Sections       *domain.Sections       `json:"sections,omitempty"`
	Shipping       *domain.ShippingConfig `json:"shipping,omitempty"`
	Payments       *domain.PaymentConfig  `json:"payments,omitempty"`
	Sheets         *domain.SheetsConfig   `json:"sheets_config,omitempty"`
}

// Create registers a storefront with platform defaults.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.Store, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name required")
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, domain.Invalid("slug must be lowercase letters, digits and hyphens")
	}
	number := strings.TrimSpace(in.WhatsAppNumber)
	if number == "" {
		return nil, domain.Invalid("whatsapp number required")
	}

	st := domain.DefaultStore()
	st.OwnerID = ownerID
	st.Name = name
	st.Slug = slug
	st.WhatsAppNumber = number
	if in.Language != "" {
		st.Language = in.Language
	}
	if in.Template != "" {
		st.Template = in.Template
	}
	return s.repo.Create(ctx, st)
}

// Get returns a store the merchant owns.
func (s *Service) Get(ctx context.Context, ownerID, storeID string) (*domain.Store, error) {
	st, err := s.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

// List returns every store the merchant owns.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Store, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// GetBySlug returns the public storefront for a slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Update applies the provided settings sections after an ownership check.
func (s *Service) Update(ctx context.Context, ownerID, storeID string, in UpdateInput) (*domain.Store, error) {
	st, err := s.Get(ctx, ownerID, storeID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name required")
		}
		st.Name = name
	}
	if in.WhatsAppNumber != nil {
		number := strings.TrimSpace(*in.WhatsAppNumber)
		if number == "" {
			return nil, domain.Invalid("whatsapp number required")
		}
		st.WhatsAppNumber = number
	}
	if in.Language != nil {
		st.Language = *in.Language
	}
	if in.Template != nil {
		st.Template = *in.Template
	}
	if in.Theme != nil {
		st.Theme = *in.Theme
	}
	if in.Currency != nil {
		st.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.Branding != nil {
		st.Branding = *in.Branding
	}
	if in.Sections != nil {
		st.Sections = *in.Sections
	}
	if in.Shipping != nil {
		if in.Shipping.DeliveryFee < 0 {
			return nil, domain.Invalid("delivery fee cannot be negative")
		}
		if !in.Shipping.PickupEnabled && !in.Shipping.DeliveryEnabled {
			return nil, domain.Invalid("at least one shipping method must be enabled")
		}
		st.Shipping = *in.Shipping
	}
	if in.Payments != nil {
		st.Payments = *in.Payments
	}
	if in.Sheets != nil {
		st.Sheets = *in.Sheets
	}

	return s.repo.Update(ctx, *st)
}
