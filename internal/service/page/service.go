package page

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	pagerepo "github.com/prabhatlnct2008/mywabiz/internal/repository/page"
	storerepo "github.com/prabhatlnct2008/mywabiz/internal/repository/store"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// Service manages merchant-authored storefront pages. Authoring pages is a
// paid feature; reading a published page is public.
type Service struct {
	repo   pagerepo.Repository
	stores storerepo.Repository
}

func New(repo pagerepo.Repository, stores storerepo.Repository) *Service {
	return &Service{repo: repo, stores: stores}
}

// Input is the merchant create/update payload.
type Input struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Published *bool  `json:"published,omitempty"`
}

func (s *Service) Create(ctx context.Context, merchantID, storeID string, in Input) (*domain.Page, error) {
	if _, err := s.ownedPremiumStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}
	p, err := fromInput(storeID, in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *p)
}

func (s *Service) List(ctx context.Context, merchantID, storeID string) ([]domain.Page, error) {
	if _, err := s.ownedStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}
	return s.repo.ListByStore(ctx, storeID)
}

func (s *Service) Get(ctx context.Context, merchantID, storeID, id string) (*domain.Page, error) {
	if _, err := s.ownedStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, storeID, id)
}

func (s *Service) Update(ctx context.Context, merchantID, storeID, id string, in Input) (*domain.Page, error) {
	if _, err := s.ownedPremiumStore(ctx, merchantID, storeID); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	p, err := fromInput(storeID, in)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	if in.Published == nil {
		p.Published = existing.Published
	}
	return s.repo.Update(ctx, *p)
}

func (s *Service) Delete(ctx context.Context, merchantID, storeID, id string) error {
	if _, err := s.ownedPremiumStore(ctx, merchantID, storeID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, storeID, id)
}

// PublicGet resolves a page for the storefront. Unpublished pages are
// indistinguishable from missing ones.
func (s *Service) PublicGet(ctx context.Context, storeID, slug string) (*domain.Page, error) {
	p, err := s.repo.GetBySlug(ctx, storeID, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// PublicList returns the published pages for a storefront's navigation.
func (s *Service) PublicList(ctx context.Context, storeID string) ([]domain.Page, error) {
	pages, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	published := make([]domain.Page, 0, len(pages))
	for _, p := range pages {
		if p.Published {
			published = append(published, p)
		}
	}
	return published, nil
}

func (s *Service) ownedStore(ctx context.Context, merchantID, storeID string) (*domain.Store, error) {
	st, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != merchantID {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

func (s *Service) ownedPremiumStore(ctx context.Context, merchantID, storeID string) (*domain.Store, error) {
	st, err := s.ownedStore(ctx, merchantID, storeID)
	if err != nil {
		return nil, err
	}
	if !st.Premium.CustomPagesEnabled {
		return nil, fmt.Errorf("custom pages require a paid plan: %w", domain.ErrForbidden)
	}
	return st, nil
}

func fromInput(storeID string, in Input) (*domain.Page, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.Invalid("page title required")
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, domain.Invalid("page slug must be lowercase letters, digits and hyphens")
	}
	published := false
	if in.Published != nil {
		published = *in.Published
	}
	return &domain.Page{
		StoreID:   storeID,
		Title:     title,
		Slug:      slug,
		Content:   in.Content,
		Published: published,
	}, nil
}
