package usecase

import (
	"strings"

	"github.com/phenrril/shopmarket/internal/domain"
)

const (
	maxProductSuggestions  = 3
	maxCategorySuggestions = 2
	maxBrandSuggestions    = 2
)

// Suggest matches the query against product names, categories and brands.
// Results are grouped by type, not ranked across types.
func Suggest(products []domain.Product, query string) []domain.SearchSuggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []domain.SearchSuggestion{}
	if q == "" {
		return out
	}
	visible := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.IsVisible {
			visible = append(visible, p)
		}
	}

	n := 0
	for _, p := range visible {
		if n == maxProductSuggestions {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, domain.SearchSuggestion{ID: "product-" + p.ID, Text: p.Name, Type: domain.SuggestionProduct})
			n++
		}
	}
	out = append(out, groupSuggestions(visible, q, domain.SuggestionCategory, maxCategorySuggestions, func(p domain.Product) string { return p.Category })...)
	out = append(out, groupSuggestions(visible, q, domain.SuggestionBrand, maxBrandSuggestions, func(p domain.Product) string { return p.Brand })...)
	return out
}

func groupSuggestions(ps []domain.Product, q string, typ domain.SuggestionType, limit int, field func(domain.Product) string) []domain.SearchSuggestion {
	counts := map[string]int{}
	order := []string{}
	for _, p := range ps {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}
	out := []domain.SearchSuggestion{}
	for _, v := range order {
		if len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(v), q) {
			out = append(out, domain.SearchSuggestion{ID: string(typ) + "-" + v, Text: v, Type: typ, Count: counts[v]})
		}
	}
	return out
}
