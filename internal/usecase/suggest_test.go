package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phenrril/shopmarket/internal/domain"
)

func TestSuggest(t *testing.T) {
	assert.Empty(t, Suggest(testCatalog(), "   "))

	got := Suggest(testCatalog(), "o")
	var products, categories, brands []string
	for _, s := range got {
		switch s.Type {
		case domain.SuggestionProduct:
			products = append(products, s.Text)
		case domain.SuggestionCategory:
			categories = append(categories, s.Text)
		case domain.SuggestionBrand:
			brands = append(brands, s.Text)
		}
	}
	assert.Equal(t, []string{"Oxford Leather Shoes", "Wool Jacket", "Canvas Tote"}, products)
	assert.Equal(t, []string{"Footwear", "Outerwear"}, categories)
	assert.Equal(t, []string{"Nordic", "Bloom"}, brands)
	assert.Equal(t, domain.SuggestionProduct, got[0].Type)
	assert.Equal(t, domain.SuggestionBrand, got[len(got)-1].Type)
}

func TestSuggestCountsAndHidden(t *testing.T) {
	got := Suggest(testCatalog(), "foot")
	assert.Equal(t, []domain.SearchSuggestion{
		{ID: "category-Footwear", Text: "Footwear", Type: domain.SuggestionCategory, Count: 2},
	}, got)

	assert.Empty(t, Suggest(testCatalog(), "prototype"))
}
