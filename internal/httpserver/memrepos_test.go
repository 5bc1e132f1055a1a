package httpserver

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	orderrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/order"
	productrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/product"
)

// In-memory repositories backing the route tests. They honor the same
// contracts as the Postgres implementations: copies out, ErrNotFound for
// misses, ErrAlreadyExists for unique collisions.

type memIDs struct {
	mu sync.Mutex
	n  int
}

func (g *memIDs) next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return prefix + "-" + strconv.Itoa(g.n)
}

var ids memIDs

type memMerchantRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.Merchant
	byEmail map[string]string
}

func newMemMerchantRepo() *memMerchantRepo {
	return &memMerchantRepo{byID: map[string]domain.Merchant{}, byEmail: map[string]string{}}
}

func (r *memMerchantRepo) Create(ctx context.Context, m domain.Merchant) (*domain.Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[m.Email]; ok {
		return nil, domain.ErrAlreadyExists
	}
	m.ID = ids.next("mer")
	m.CreatedAt = time.Now()
	r.byID[m.ID] = m
	r.byEmail[m.Email] = m.ID
	return &m, nil
}

func (r *memMerchantRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m := r.byID[id]
	return &m, nil
}

func (r *memMerchantRepo) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

type memStoreRepo struct {
	mu     sync.Mutex
	byID   map[string]domain.Store
	bySlug map[string]string
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{byID: map[string]domain.Store{}, bySlug: map[string]string{}}
}

func (r *memStoreRepo) Create(ctx context.Context, s domain.Store) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySlug[s.Slug]; ok {
		return nil, domain.ErrAlreadyExists
	}
	s.ID = ids.next("sto")
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.byID[s.ID] = s
	r.bySlug[s.Slug] = s.ID
	return &s, nil
}

func (r *memStoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *memStoreRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s := r.byID[id]
	return &s, nil
}

func (r *memStoreRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Store
	for _, s := range r.byID {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memStoreRepo) Update(ctx context.Context, s domain.Store) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.UpdatedAt = time.Now()
	r.byID[s.ID] = s
	return &s, nil
}

type memProductRepo struct {
	mu   sync.Mutex
	byID map[string]domain.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{byID: map[string]domain.Product{}}
}

func (r *memProductRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = ids.next("prd")
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.byID[p.ID] = p
	return &p, nil
}

func (r *memProductRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || p.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memProductRepo) matches(p domain.Product, storeID string, f productrepo.ListFilter) bool {
	if p.StoreID != storeID {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.VisibleOnly && !p.Visible() {
		return false
	}
	return true
}

func (r *memProductRepo) ListByStore(ctx context.Context, storeID string, f productrepo.ListFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.byID {
		if r.matches(p, storeID, f) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProductRepo) CountByStore(ctx context.Context, storeID string, f productrepo.ListFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.byID {
		if r.matches(p, storeID, f) {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) Categories(ctx context.Context, storeID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	for _, p := range r.byID {
		if p.StoreID == storeID && p.Category != "" {
			seen[p.Category] = true
		}
	}
	var out []string
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (r *memProductRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.byID[p.ID] = p
	return &p, nil
}

func (r *memProductRepo) Delete(ctx context.Context, storeID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || p.StoreID != storeID {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memProductRepo) DecrementStock(ctx context.Context, storeID, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || p.StoreID != storeID {
		return domain.ErrNotFound
	}
	if p.Stock != domain.UnlimitedStock {
		p.Stock -= qty
		if p.Stock < 0 {
			p.Stock = 0
		}
		r.byID[id] = p
	}
	return nil
}

func (r *memProductRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return r.Create(ctx, p)
}

type memOrderRepo struct {
	mu   sync.Mutex
	byID map[string]domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{byID: map[string]domain.Order{}}
}

func (r *memOrderRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = ids.next("ord")
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	r.byID[o.ID] = o
	return &o, nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok || o.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *memOrderRepo) GetByTrackToken(ctx context.Context, token string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.TrackToken == token {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memOrderRepo) ListByStore(ctx context.Context, storeID string, f orderrepo.ListFilter) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.byID {
		if o.StoreID != storeID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memOrderRepo) SetStatus(ctx context.Context, storeID, id, status, paymentStatus string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok || o.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	if status != "" {
		o.Status = status
	}
	if paymentStatus != "" {
		o.PaymentStatus = paymentStatus
	}
	o.UpdatedAt = time.Now()
	r.byID[id] = o
	return &o, nil
}

func (r *memOrderRepo) LastOrderNumber(ctx context.Context, storeID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	best := 0
	for _, o := range r.byID {
		if o.StoreID != storeID {
			continue
		}
		if n, err := strconv.Atoi(o.OrderNumber); err == nil && n > best {
			best = n
		}
	}
	if best == 0 {
		return "", nil
	}
	return strconv.Itoa(best), nil
}

func (r *memOrderRepo) StatsByStore(ctx context.Context, storeID string, since time.Time) (orderrepo.StoreStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats orderrepo.StoreStats
	for _, o := range r.byID {
		if o.StoreID != storeID || o.CreatedAt.Before(since) {
			continue
		}
		stats.OrdersCount++
		stats.SalesTotal += o.Total
	}
	return stats, nil
}

type memCouponRepo struct {
	mu   sync.Mutex
	byID map[string]domain.Coupon
}

func newMemCouponRepo() *memCouponRepo {
	return &memCouponRepo{byID: map[string]domain.Coupon{}}
}

func (r *memCouponRepo) Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.StoreID == c.StoreID && existing.Code == c.Code {
			return nil, domain.ErrAlreadyExists
		}
	}
	c.ID = ids.next("cpn")
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.byID[c.ID] = c
	return &c, nil
}

func (r *memCouponRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memCouponRepo) GetByCode(ctx context.Context, storeID, code string) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.StoreID == storeID && c.Code == code {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memCouponRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Coupon
	for _, c := range r.byID {
		if c.StoreID == storeID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCouponRepo) Update(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	r.byID[c.ID] = c
	return &c, nil
}

func (r *memCouponRepo) Delete(ctx context.Context, storeID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.StoreID != storeID {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memCouponRepo) IncrementUsage(ctx context.Context, storeID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.byID {
		if c.StoreID == storeID && c.Code == code {
			c.UsedCount++
			r.byID[id] = c
			return nil
		}
	}
	return domain.ErrNotFound
}

type memPageRepo struct {
	mu   sync.Mutex
	byID map[string]domain.Page
}

func newMemPageRepo() *memPageRepo {
	return &memPageRepo{byID: map[string]domain.Page{}}
}

func (r *memPageRepo) Create(ctx context.Context, p domain.Page) (*domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.StoreID == p.StoreID && existing.Slug == p.Slug {
			return nil, domain.ErrAlreadyExists
		}
	}
	p.ID = ids.next("pag")
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.byID[p.ID] = p
	return &p, nil
}

func (r *memPageRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || p.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memPageRepo) GetBySlug(ctx context.Context, storeID, slug string) (*domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.StoreID == storeID && p.Slug == slug {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memPageRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Page
	for _, p := range r.byID {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPageRepo) Update(ctx context.Context, p domain.Page) (*domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.byID[p.ID] = p
	return &p, nil
}

func (r *memPageRepo) Delete(ctx context.Context, storeID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || p.StoreID != storeID {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
