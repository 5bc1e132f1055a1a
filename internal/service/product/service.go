package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	productrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/product"
	storerepo "github.com/prabhatlnct2008/mywabiz/internal/repository/store"
)

// Service owns catalog management and the public product views.
type Service struct {
	repo      productrepo.Repository
	storeRepo storerepo.Repository
}

func New(repo productrepo.Repository, storeRepo storerepo.Repository) *Service {
	return &Service{repo: repo, storeRepo: storeRepo}
}

// Input is the merchant-editable product payload.
type Input struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        int64    `json:"price"`
	Description  string   `json:"description"`
	Sizes        []string `json:"sizes"`
	Colors       []string `json:"colors"`
	Tags         []string `json:"tags"`
	Brand        string   `json:"brand"`
	Stock        *int     `json:"stock"`
	Availability string   `json:"availability"`
	ThumbnailURL string   `json:"thumbnail_url"`
	ImageURLs    []string `json:"image_urls"`
}

// PublicListing is the storefront catalog page: visible products plus the
// distinct category chips and the total for paging.
type PublicListing struct {
	Products   []domain.Product `json:"products"`
	Categories []string         `json:"categories"`
	Total      int              `json:"total"`
}

// Create adds a product, enforcing the plan's product limit.
func (s *Service) Create(ctx context.Context, ownerID, storeID string, in Input) (*domain.Product, error) {
	st, err := s.ownedStore(ctx, ownerID, storeID)
	if err != nil {
		return nil, err
	}

	p, err := fromInput(storeID, in)
	if err != nil {
		return nil, err
	}

	if limit := st.Premium.ProductLimit; limit > 0 {
		count, err := s.repo.CountByStore(ctx, storeID, productrepo.ListFilter{})
		if err != nil {
			return nil, err
		}
		if count >= limit {
			return nil, fmt.Errorf("product limit of %d reached: %w", limit, domain.ErrForbidden)
		}
	}

	return s.repo.Create(ctx, p)
}

// List returns the merchant view of the catalog (hidden products included).
func (s *Service) List(ctx context.Context, ownerID, storeID string, f productrepo.ListFilter) ([]domain.Product, error) {
	if _, err := s.ownedStore(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	return s.repo.ListByStore(ctx, storeID, f)
}

// Get returns one product in the merchant view.
func (s *Service) Get(ctx context.Context, ownerID, storeID, productID string) (*domain.Product, error) {
	if _, err := s.ownedStore(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, storeID, productID)
}

// Update replaces a product's merchant-editable fields.
func (s *Service) Update(ctx context.Context, ownerID, storeID, productID string, in Input) (*domain.Product, error) {
	if _, err := s.ownedStore(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	p, err := fromInput(storeID, in)
	if err != nil {
		return nil, err
	}
	p.ID = productID
	return s.repo.Update(ctx, p)
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, ownerID, storeID, productID string) error {
	if _, err := s.ownedStore(ctx, ownerID, storeID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, storeID, productID)
}

// PublicList returns the storefront catalog for a store already resolved by
// slug: visible products only, filtered and paged.
func (s *Service) PublicList(ctx context.Context, storeID string, category string, page, limit int) (*PublicListing, error) {
	f := productrepo.ListFilter{Category: category, VisibleOnly: true, Page: page, Limit: limit}
	products, err := s.repo.ListByStore(ctx, storeID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountByStore(ctx, storeID, f)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.Categories(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	if categories == nil {
		categories = []string{}
	}
	return &PublicListing{Products: products, Categories: categories, Total: total}, nil
}

// PublicGet returns one visible product for the storefront.
func (s *Service) PublicGet(ctx context.Context, storeID, productID string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if !p.Visible() {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) ownedStore(ctx context.Context, ownerID, storeID string) (*domain.Store, error) {
	st, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

func fromInput(storeID string, in Input) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, domain.Invalid("name required")
	}
	if in.Price < 0 {
		return domain.Product{}, domain.Invalid("price cannot be negative")
	}

	stock := domain.UnlimitedStock
	if in.Stock != nil {
		if *in.Stock < domain.UnlimitedStock {
			return domain.Product{}, domain.Invalid("stock must be -1 (unlimited) or non-negative")
		}
		stock = *in.Stock
	}

	availability := in.Availability
	switch availability {
	case "":
		availability = domain.AvailabilityShow
	case domain.AvailabilityShow, domain.AvailabilityHide:
	default:
		return domain.Product{}, domain.Invalid("availability must be show or hide")
	}

	return domain.Product{
		StoreID:       storeID,
		Name:          name,
		Category:      strings.TrimSpace(in.Category),
		Price:         in.Price,
		Description:   in.Description,
		Sizes:         in.Sizes,
		Colors:        in.Colors,
		Tags:          in.Tags,
		Brand:         strings.TrimSpace(in.Brand),
		Stock:         stock,
		Availability:  availability,
		ThumbnailURL:  in.ThumbnailURL,
		ImageURLs:     in.ImageURLs,
		UpdatedSource: domain.SourceDashboard,
	}, nil
}
