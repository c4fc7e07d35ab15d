package usecase

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/phenrril/shopmarket/internal/domain"
)

// FilterProducts narrows and orders the catalog. It never mutates products
// and returns the same result for the same inputs.
func FilterProducts(products []domain.Product, c domain.FilterCriteria, query string, route domain.RouteContext) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if route.Gender != "" && p.Gender != route.Gender {
			continue
		}
		if !p.IsVisible && !c.IncludeHidden {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if len(c.Categories) > 0 && !in(c.Categories, p.Category) {
			continue
		}
		if len(c.Brands) > 0 && !in(c.Brands, p.Brand) {
			continue
		}
		if len(c.Colors) > 0 && !intersects(p.Colors, c.Colors) {
			continue
		}
		if len(c.Sizes) > 0 && !intersects(p.Sizes, c.Sizes) {
			continue
		}
		if !c.Price.Contains(p.Price) {
			continue
		}
		if c.InStockOnly && !p.InStock {
			continue
		}
		if c.MinRating > 0 && p.Rating < c.MinRating {
			continue
		}
		if c.NewOnly && !p.IsNew {
			continue
		}
		if c.FeaturedOnly && !p.IsFeatured {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, c.SortBy)
	return out
}

func sortProducts(ps []domain.Product, key domain.SortKey) {
	var less func(a, b domain.Product) bool
	switch key {
	case domain.SortPriceLow:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case domain.SortPriceHigh:
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	case domain.SortRating:
		less = func(a, b domain.Product) bool { return a.Rating > b.Rating }
	case domain.SortPopular:
		less = func(a, b domain.Product) bool { return a.ReviewCount > b.ReviewCount }
	default:
		// no timestamp ordering: new arrivals first, catalog order otherwise
		less = func(a, b domain.Product) bool { return a.IsNew && !b.IsNew }
	}
	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}

func matchesQuery(p domain.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func in(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(have, want []string) bool {
	for _, h := range have {
		if in(want, h) {
			return true
		}
	}
	return false
}

// Facets lists the distinct filter values of the catalog in first-seen order.
func Facets(products []domain.Product) domain.Facets {
	f := domain.Facets{Categories: []string{}, Brands: []string{}, Colors: []string{}, Sizes: []string{}}
	seen := map[string]struct{}{}
	add := func(dst *[]string, kind, v string) {
		if v == "" {
			return
		}
		k := kind + "\x00" + v
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		*dst = append(*dst, v)
	}
	for _, p := range products {
		add(&f.Categories, "c", p.Category)
		add(&f.Brands, "b", p.Brand)
		for _, c := range p.Colors {
			add(&f.Colors, "k", c)
		}
		for _, s := range p.Sizes {
			add(&f.Sizes, "s", s)
		}
	}
	return f
}

// CriteriaFromQuery seeds criteria from listing query parameters. Unknown or
// malformed values keep their defaults.
func CriteriaFromQuery(v url.Values) (domain.FilterCriteria, string) {
	c := domain.DefaultCriteria()
	c.Categories = listParam(v, "category")
	c.Brands = listParam(v, "brand")
	c.Colors = listParam(v, "color")
	c.Sizes = listParam(v, "size")
	if f, err := strconv.ParseFloat(v.Get("min_price"), 64); err == nil && f >= 0 {
		c.Price.Min = f
	}
	if f, err := strconv.ParseFloat(v.Get("max_price"), 64); err == nil && f >= 0 {
		c.Price.Max = f
	}
	if b, err := strconv.ParseBool(v.Get("in_stock")); err == nil {
		c.InStockOnly = b
	}
	if f, err := strconv.ParseFloat(v.Get("rating"), 64); err == nil && f >= 0 && f <= 5 {
		c.MinRating = f
	}
	if s := v.Get("sort"); s != "" {
		c.SortBy = domain.ParseSortKey(s)
	}
	switch strings.ToLower(v.Get("filter")) {
	case "new":
		c.NewOnly = true
	case "featured":
		c.FeaturedOnly = true
	}
	return c, v.Get("q")
}

// listParam accepts both repeated keys and comma separated values.
func listParam(v url.Values, key string) []string {
	out := []string{}
	for _, raw := range v[key] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
