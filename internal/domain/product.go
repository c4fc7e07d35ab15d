package domain

import (
	"strings"
	"time"
)

type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderUnisex Gender = "unisex"
)

func ParseGender(s string) (Gender, bool) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMen:
		return GenderMen, true
	case GenderWomen:
		return GenderWomen, true
	case GenderUnisex:
		return GenderUnisex, true
	}
	return "", false
}

// LowStockThreshold marks products the admin dashboard reports as running low.
const LowStockThreshold = 10

type Product struct {
	ID              string            `gorm:"primaryKey;size:120" json:"id"`
	Name            string            `gorm:"size:180;not null" json:"name"`
	Description     string            `gorm:"type:text" json:"description"`
	Price           float64           `gorm:"type:decimal(12,2);not null" json:"price"`
	OriginalPrice   *float64          `gorm:"type:decimal(12,2)" json:"original_price,omitempty"`
	Discount        *int              `gorm:"type:int" json:"discount,omitempty"`
	Category        string            `gorm:"size:100;index" json:"category"`
	Subcategory     string            `gorm:"size:100" json:"subcategory"`
	Brand           string            `gorm:"size:100;index" json:"brand"`
	Images          []string          `gorm:"type:jsonb;serializer:json" json:"images"`
	Colors          []string          `gorm:"type:jsonb;serializer:json" json:"colors"`
	Sizes           []string          `gorm:"type:jsonb;serializer:json" json:"sizes"`
	StockCount      int               `gorm:"type:int;default:0" json:"stock_count"`
	InStock         bool              `gorm:"not null" json:"in_stock"`
	Rating          float64           `gorm:"type:decimal(3,1);default:0" json:"rating"`
	ReviewCount     int               `gorm:"type:int;default:0" json:"review_count"`
	Tags            []string          `gorm:"type:jsonb;serializer:json" json:"tags"`
	Gender          Gender            `gorm:"type:varchar(10);index" json:"gender"`
	IsVisible       bool              `gorm:"not null;index" json:"is_visible"`
	IsFeatured      bool              `gorm:"not null" json:"is_featured"`
	IsNew           bool              `gorm:"not null" json:"is_new"`
	Specifications  map[string]string `gorm:"type:jsonb;serializer:json" json:"specifications,omitempty"`
	RelatedProducts []string          `gorm:"type:jsonb;serializer:json" json:"related_products,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// SyncStock clamps the stock count at zero and re-derives InStock from it.
// Every write path calls it, so the two fields cannot diverge.
func (p *Product) SyncStock() {
	if p.StockCount < 0 {
		p.StockCount = 0
	}
	p.InStock = p.StockCount > 0
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalidProduct("name required")
	}
	if p.Price < 0 {
		return invalidProduct("price must be >= 0")
	}
	if p.StockCount < 0 {
		return invalidProduct("stock count must be >= 0")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return invalidProduct("rating must be within 0..5")
	}
	if _, ok := ParseGender(string(p.Gender)); !ok {
		return invalidProduct("gender must be men, women or unisex")
	}
	return nil
}

func (p *Product) HasColor(c string) bool { return containsFold(p.Colors, c) }

func (p *Product) HasSize(s string) bool { return containsFold(p.Sizes, s) }

// Clean drops blank entries from the list fields, as the admin form does.
func (p *Product) Clean() {
	p.Images = compact(p.Images)
	p.Colors = compact(p.Colors)
	p.Sizes = compact(p.Sizes)
	p.Tags = compact(p.Tags)
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
