package domain

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortPopular   SortKey = "popular"
)

func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortNewest, SortPriceLow, SortPriceHigh, SortRating, SortPopular:
		return k
	}
	return SortNewest
}

// PriceRange is inclusive on both ends. The zero range means unrestricted.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PriceRange) IsZero() bool { return r.Min == 0 && r.Max == 0 }

func (r PriceRange) Contains(v float64) bool {
	return r.IsZero() || (v >= r.Min && v <= r.Max)
}

type FilterCriteria struct {
	Categories    []string   `json:"category"`
	Brands        []string   `json:"brand"`
	Colors        []string   `json:"color"`
	Sizes         []string   `json:"size"`
	Price         PriceRange `json:"price_range"`
	InStockOnly   bool       `json:"in_stock"`
	MinRating     float64    `json:"rating"`
	SortBy        SortKey    `json:"sort_by"`
	NewOnly       bool       `json:"new_only,omitempty"`
	FeaturedOnly  bool       `json:"featured_only,omitempty"`
	IncludeHidden bool       `json:"-"`
}

// DefaultPriceMax is the upper bound of the default price filter.
const DefaultPriceMax = 1000

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Categories: []string{},
		Brands:     []string{},
		Colors:     []string{},
		Sizes:      []string{},
		Price:      PriceRange{Min: 0, Max: DefaultPriceMax},
		SortBy:     SortNewest,
	}
}

// RouteContext narrows the catalog before any criterion applies, e.g. the
// men's and women's sections.
type RouteContext struct {
	Gender Gender
}

type Facets struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
	Colors     []string `json:"colors"`
	Sizes      []string `json:"sizes"`
}

type SuggestionType string

const (
	SuggestionProduct  SuggestionType = "product"
	SuggestionCategory SuggestionType = "category"
	SuggestionBrand    SuggestionType = "brand"
)

type SearchSuggestion struct {
	ID    string         `json:"id"`
	Text  string         `json:"text"`
	Type  SuggestionType `json:"type"`
	Count int            `json:"count,omitempty"`
}
