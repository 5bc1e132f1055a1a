package domain

import "time"

// Store templates, themes, plans and languages supported by storefronts.
const (
	TemplateMultiPurpose   = "multi-purpose"
	TemplateQuickOrder     = "quick-order"
	TemplateWholesale      = "wholesale"
	TemplateDigital        = "digital-download"
	TemplateServiceBooking = "service-booking"
	TemplateLinksList      = "links-list"
	TemplateBlank          = "blank"

	ThemeMinimal = "minimal"
	ThemeBold    = "bold"
	ThemeDark    = "dark"

	PlanStarter = "starter"
	PlanGrowth  = "growth"
	PlanPro     = "pro"
)

// Branding holds the merchant-controlled look of a storefront.
type Branding struct {
	LogoURL    string `json:"logo_url,omitempty"`
	BrandColor string `json:"brand_color"`
	BannerURL  string `json:"banner_url,omitempty"`
	BannerText string `json:"banner_text,omitempty"`
}

// Sections toggles storefront blocks on and off.
type Sections struct {
	Header   bool `json:"header"`
	Banner   bool `json:"banner"`
	Products bool `json:"products"`
	Footer   bool `json:"footer"`
}

// Premium captures the plan and the feature gates derived from it.
type Premium struct {
	Plan               string `json:"plan"`
	CouponsEnabled     bool   `json:"coupons_enabled"`
	CustomPagesEnabled bool   `json:"custom_pages_enabled"`
	BrandingRemoval    bool   `json:"branding_removal"`
	ProductLimit       int    `json:"product_limit"`
}

// ShippingConfig describes the two fulfilment options a store can enable.
// DeliveryFee is a flat amount in minor currency units.
type ShippingConfig struct {
	PickupEnabled   bool     `json:"pickup_enabled"`
	PickupAddress   string   `json:"pickup_address,omitempty"`
	DeliveryEnabled bool     `json:"delivery_enabled"`
	DeliveryFee     int64    `json:"delivery_fee"`
	DeliveryZones   []string `json:"delivery_zones,omitempty"`
}

// PaymentConfig describes which payment methods checkout may offer.
type PaymentConfig struct {
	CODEnabled     bool   `json:"cod_enabled"`
	PayPalEnabled  bool   `json:"paypal_enabled"`
	PayPalClientID string `json:"paypal_client_id,omitempty"`
}

// SheetsConfig tracks the optional spreadsheet catalog source.
type SheetsConfig struct {
	SheetID      string     `json:"sheet_id,omitempty"`
	SheetURL     string     `json:"sheet_url,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	SyncStatus   string     `json:"sync_status"`
	SyncError    string     `json:"sync_error,omitempty"`
}

// Store is one merchant storefront. Slug is unique across the platform and
// scopes every public lookup.
type Store struct {
	ID             string         `json:"id"`
	OwnerID        string         `json:"-"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	WhatsAppNumber string         `json:"whatsapp_number"`
	Language       string         `json:"language"`
	Template       string         `json:"template"`
	Theme          string         `json:"theme"`
	Currency       string         `json:"currency"`
	Branding       Branding       `json:"branding"`
	Sections       Sections       `json:"sections"`
	Premium        Premium        `json:"premium"`
	Shipping       ShippingConfig `json:"shipping"`
	Payments       PaymentConfig  `json:"payments"`
	Sheets         SheetsConfig   `json:"sheets_config"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// DefaultStore returns a Store with the defaults a freshly created
// storefront gets before the merchant touches settings.
func DefaultStore() Store {
	return Store{
		Language: "en",
		Template: TemplateMultiPurpose,
		Theme:    ThemeMinimal,
		Currency: "INR",
		Branding: Branding{BrandColor: "#22C55E"},
		Sections: Sections{Header: true, Products: true, Footer: true},
		Premium:  Premium{Plan: PlanStarter, ProductLimit: 50},
		Shipping: ShippingConfig{PickupEnabled: true, DeliveryEnabled: true},
		Payments: PaymentConfig{CODEnabled: true},
		Sheets:   SheetsConfig{SyncStatus: "idle"},
	}
}
