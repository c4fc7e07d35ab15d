package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/shopmarket/internal/domain"
)

const homeShelfSize = 8

// ProductUC owns the catalog. Reads are served from a memo that every
// mutation through this type invalidates.
type ProductUC struct {
	Products domain.ProductRepo
	Now      domain.Clock

	mu     sync.RWMutex
	cache  []domain.Product
	loaded bool
}

func (uc *ProductUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// All returns every product, hidden ones included, in catalog order.
func (uc *ProductUC) All(ctx context.Context) ([]domain.Product, error) {
	uc.mu.RLock()
	if uc.loaded {
		out := make([]domain.Product, len(uc.cache))
		copy(out, uc.cache)
		uc.mu.RUnlock()
		return out, nil
	}
	uc.mu.RUnlock()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.loaded {
		list, err := uc.Products.List(ctx)
		if err != nil {
			return nil, err
		}
		uc.cache = list
		uc.loaded = true
	}
	out := make([]domain.Product, len(uc.cache))
	copy(out, uc.cache)
	return out, nil
}

func (uc *ProductUC) invalidate() {
	uc.mu.Lock()
	uc.cache = nil
	uc.loaded = false
	uc.mu.Unlock()
}

func (uc *ProductUC) List(ctx context.Context, c domain.FilterCriteria, query string, route domain.RouteContext) ([]domain.Product, error) {
	all, err := uc.All(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProducts(all, c, query, route), nil
}

func (uc *ProductUC) Get(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("empty product id")
	}
	return uc.Products.FindByID(ctx, id)
}

// GetVisible hides products the admin switched off.
func (uc *ProductUC) GetVisible(ctx context.Context, id string) (*domain.Product, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsVisible {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Create stores a new product. A caller supplied id must not be taken.
func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	} else {
		_, err := uc.Products.FindByID(ctx, p.ID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: product %s", domain.ErrAlreadyExists, p.ID)
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
	}
	p.Clean()
	p.Rating = 0
	p.ReviewCount = 0
	if err := p.Validate(); err != nil {
		return err
	}
	p.SyncStock()
	now := uc.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	defer uc.invalidate()
	return uc.Products.Save(ctx, p)
}

// Update replaces the product stored under id. Identity, rating, review
// count and creation time are kept from the stored product.
func (uc *ProductUC) Update(ctx context.Context, id string, p *domain.Product) error {
	cur, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	p.ID = cur.ID
	p.Rating = cur.Rating
	p.ReviewCount = cur.ReviewCount
	p.CreatedAt = cur.CreatedAt
	p.Clean()
	if err := p.Validate(); err != nil {
		return err
	}
	p.SyncStock()
	p.UpdatedAt = uc.now()
	defer uc.invalidate()
	return uc.Products.Save(ctx, p)
}

// Delete removes a product for good. Callers must pass confirmed=true.
func (uc *ProductUC) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	defer uc.invalidate()
	return uc.Products.Delete(ctx, id)
}

// ToggleVisibility flips the visibility flag and returns the saved product.
func (uc *ProductUC) ToggleVisibility(ctx context.Context, id string) (*domain.Product, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsVisible = !p.IsVisible
	p.UpdatedAt = uc.now()
	defer uc.invalidate()
	if err := uc.Products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AdminSearch backs the admin product table: substring search over name,
// brand and category plus a visibility filter (all, visible, hidden).
func (uc *ProductUC) AdminSearch(ctx context.Context, query, visibility string) ([]domain.Product, error) {
	all, err := uc.All(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		switch visibility {
		case "visible":
			if !p.IsVisible {
				continue
			}
		case "hidden":
			if p.IsVisible {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (uc *ProductUC) Categories(ctx context.Context) ([]string, error) {
	all, err := uc.All(ctx)
	if err != nil {
		return nil, err
	}
	return Facets(FilterProducts(all, domain.FilterCriteria{}, "", domain.RouteContext{})).Categories, nil
}

// Home returns the featured and new arrival shelves.
func (uc *ProductUC) Home(ctx context.Context) (featured, fresh []domain.Product, err error) {
	all, err := uc.All(ctx)
	if err != nil {
		return nil, nil, err
	}
	featured = FilterProducts(all, domain.FilterCriteria{FeaturedOnly: true}, "", domain.RouteContext{})
	fresh = FilterProducts(all, domain.FilterCriteria{NewOnly: true}, "", domain.RouteContext{})
	if len(featured) > homeShelfSize {
		featured = featured[:homeShelfSize]
	}
	if len(fresh) > homeShelfSize {
		fresh = fresh[:homeShelfSize]
	}
	return featured, fresh, nil
}

func (uc *ProductUC) Suggest(ctx context.Context, query string) ([]domain.SearchSuggestion, error) {
	all, err := uc.All(ctx)
	if err != nil {
		return nil, err
	}
	return Suggest(all, query), nil
}

// Import upserts products by id. Stock flags are re-derived and rating data
// of existing products is kept.
func (uc *ProductUC) Import(ctx context.Context, ps []domain.Product) (created, updated int, err error) {
	now := uc.now()
	for i := range ps {
		p := &ps[i]
		p.Clean()
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if err := p.Validate(); err != nil {
			return 0, 0, fmt.Errorf("row %d (%s): %w", i+1, p.ID, err)
		}
		p.SyncStock()
		p.UpdatedAt = now
		cur, err := uc.Products.FindByID(ctx, p.ID)
		switch {
		case err == nil:
			p.Rating, p.ReviewCount, p.CreatedAt = cur.Rating, cur.ReviewCount, cur.CreatedAt
			updated++
		case errors.Is(err, domain.ErrNotFound):
			p.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
			created++
		default:
			return 0, 0, err
		}
	}
	defer uc.invalidate()
	if err := uc.Products.SaveAll(ctx, ps); err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

// Seed loads the initial catalog when the store is empty.
func (uc *ProductUC) Seed(ctx context.Context, ps []domain.Product) (int, error) {
	n, err := uc.Products.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	now := uc.now()
	for i := range ps {
		ps[i].Clean()
		ps[i].SyncStock()
		if ps[i].CreatedAt.IsZero() {
			// keeps the file order when listing by creation time
			ps[i].CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		}
		ps[i].UpdatedAt = now
	}
	defer uc.invalidate()
	if err := uc.Products.SaveAll(ctx, ps); err != nil {
		return 0, err
	}
	return len(ps), nil
}
