package usecase

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/shopmarket/internal/domain"
)

func ids(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	catalog := testCatalog()
	tests := []struct {
		name  string
		c     domain.FilterCriteria
		query string
		route domain.RouteContext
		want  []string
	}{
		{
			name: "category and price",
			c:    domain.FilterCriteria{Categories: []string{"Footwear", "Outerwear"}, Price: domain.PriceRange{Min: 0, Max: 150}},
			want: []string{"oxford", "sneaker"},
		},
		{
			name:  "men route",
			route: domain.RouteContext{Gender: domain.GenderMen},
			want:  []string{"jacket", "oxford"},
		},
		{
			name:  "query matches tags and description",
			query: "SUMMER",
			want:  []string{"dress"},
		},
		{
			name:  "query matches brand",
			query: "bloom",
			want:  []string{"dress", "bag"},
		},
		{
			name: "color intersection",
			c:    domain.FilterCriteria{Colors: []string{"White"}},
			want: []string{"dress", "sneaker"},
		},
		{
			name: "in stock only",
			c:    domain.FilterCriteria{Categories: []string{"Footwear"}, InStockOnly: true},
			want: []string{"oxford"},
		},
		{
			name: "min rating",
			c:    domain.FilterCriteria{MinRating: 4.5},
			want: []string{"jacket", "oxford"},
		},
		{
			name: "price low",
			c:    domain.FilterCriteria{SortBy: domain.SortPriceLow},
			want: []string{"dress", "bag", "sneaker", "oxford", "jacket"},
		},
		{
			name: "price high",
			c:    domain.FilterCriteria{SortBy: domain.SortPriceHigh},
			want: []string{"jacket", "oxford", "sneaker", "bag", "dress"},
		},
		{
			name: "popular",
			c:    domain.FilterCriteria{SortBy: domain.SortPopular},
			want: []string{"dress", "oxford", "sneaker", "jacket", "bag"},
		},
		{
			name: "featured only",
			c:    domain.FilterCriteria{FeaturedOnly: true},
			want: []string{"dress", "oxford"},
		},
		{
			name: "hidden included for admin",
			c:    domain.FilterCriteria{Brands: []string{"Heritage"}, IncludeHidden: true},
			want: []string{"oxford", "hidden"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(catalog, tt.c, tt.query, tt.route)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterFootwearUnder150(t *testing.T) {
	ps := []domain.Product{
		{ID: "shoe", Name: "Oxford", Category: "Footwear", Price: 149.99, IsVisible: true},
		{ID: "coat", Name: "Jacket", Category: "Outerwear", Price: 299.99, IsVisible: true},
	}
	c := domain.DefaultCriteria()
	c.Categories = []string{"Footwear"}
	c.Price = domain.PriceRange{Min: 0, Max: 150}
	assert.Equal(t, []string{"shoe"}, ids(FilterProducts(ps, c, "", domain.RouteContext{})))
}

func TestFilterIsIdempotentAndPure(t *testing.T) {
	catalog := testCatalog()
	before := ids(catalog)
	c := domain.FilterCriteria{SortBy: domain.SortRating, Price: domain.PriceRange{Max: 200}}

	once := FilterProducts(catalog, c, "", domain.RouteContext{})
	twice := FilterProducts(once, c, "", domain.RouteContext{})
	assert.Equal(t, ids(once), ids(twice))
	assert.Equal(t, before, ids(catalog))
}

func TestCriteriaFromQuery(t *testing.T) {
	v := url.Values{}
	v.Add("category", "Footwear,Outerwear")
	v.Add("category", "Dresses")
	v.Set("min_price", "20")
	v.Set("max_price", "abc")
	v.Set("in_stock", "true")
	v.Set("rating", "9")
	v.Set("sort", "price-high")
	v.Set("filter", "new")
	v.Set("q", "wool")

	c, q := CriteriaFromQuery(v)
	require.Equal(t, []string{"Footwear", "Outerwear", "Dresses"}, c.Categories)
	assert.Equal(t, 20.0, c.Price.Min)
	assert.Equal(t, float64(domain.DefaultPriceMax), c.Price.Max)
	assert.True(t, c.InStockOnly)
	assert.Zero(t, c.MinRating)
	assert.Equal(t, domain.SortPriceHigh, c.SortBy)
	assert.True(t, c.NewOnly)
	assert.Equal(t, "wool", q)

	c, _ = CriteriaFromQuery(url.Values{"sort": {"bogus"}})
	assert.Equal(t, domain.SortNewest, c.SortBy)
}

func TestFacets(t *testing.T) {
	f := Facets(FilterProducts(testCatalog(), domain.FilterCriteria{}, "", domain.RouteContext{}))
	assert.Equal(t, []string{"Footwear", "Outerwear", "Dresses", "Accessories"}, f.Categories)
	assert.Equal(t, []string{"Heritage", "Nordic", "Bloom", "Stride"}, f.Brands)
	assert.Equal(t, []string{"Brown", "Black", "Grey", "Red", "White"}, f.Colors)
}
