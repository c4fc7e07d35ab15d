// Package seed loads the initial catalog and user list.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phenrril/shopmarket/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type file struct {
	Products []product `yaml:"products"`
	Users    []user    `yaml:"users"`
}

// product flips the boolean defaults of the domain type: a seeded product
// is visible unless marked hidden.
type product struct {
	ID              string            `yaml:"id"`
	Name            string            `yaml:"name"`
	Description     string            `yaml:"description"`
	Price           float64           `yaml:"price"`
	OriginalPrice   *float64          `yaml:"original_price"`
	Discount        *int              `yaml:"discount"`
	Category        string            `yaml:"category"`
	Subcategory     string            `yaml:"subcategory"`
	Brand           string            `yaml:"brand"`
	Images          []string          `yaml:"images"`
	Colors          []string          `yaml:"colors"`
	Sizes           []string          `yaml:"sizes"`
	StockCount      int               `yaml:"stock_count"`
	Rating          float64           `yaml:"rating"`
	ReviewCount     int               `yaml:"review_count"`
	Tags            []string          `yaml:"tags"`
	Gender          string            `yaml:"gender"`
	Hidden          bool              `yaml:"hidden"`
	Featured        bool              `yaml:"featured"`
	New             bool              `yaml:"new"`
	Specifications  map[string]string `yaml:"specifications"`
	RelatedProducts []string          `yaml:"related_products"`
}

type user struct {
	ID        string `yaml:"id"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
	Inactive  bool   `yaml:"inactive"`
}

type Data struct {
	Products []domain.Product
	Users    []domain.User
}

// Load reads path, or the embedded catalog when path is empty.
func Load(path string) (Data, error) {
	raw := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Data{}, err
		}
		raw = b
	}
	return Parse(raw)
}

func Parse(raw []byte) (Data, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Data{}, fmt.Errorf("seed: %w", err)
	}
	out := Data{}
	seen := map[string]bool{}
	for i, sp := range f.Products {
		if sp.ID == "" {
			return Data{}, fmt.Errorf("seed: product %d has no id", i+1)
		}
		if seen[sp.ID] {
			return Data{}, fmt.Errorf("seed: duplicate product id %q", sp.ID)
		}
		seen[sp.ID] = true
		g, ok := domain.ParseGender(sp.Gender)
		if !ok {
			return Data{}, fmt.Errorf("seed: product %s: unknown gender %q", sp.ID, sp.Gender)
		}
		p := domain.Product{
			ID: sp.ID, Name: sp.Name, Description: sp.Description,
			Price: sp.Price, OriginalPrice: sp.OriginalPrice, Discount: sp.Discount,
			Category: sp.Category, Subcategory: sp.Subcategory, Brand: sp.Brand,
			Images: sp.Images, Colors: sp.Colors, Sizes: sp.Sizes,
			StockCount: sp.StockCount, Rating: sp.Rating, ReviewCount: sp.ReviewCount,
			Tags: sp.Tags, Gender: g,
			IsVisible: !sp.Hidden, IsFeatured: sp.Featured, IsNew: sp.New,
			Specifications: sp.Specifications, RelatedProducts: sp.RelatedProducts,
		}
		p.Clean()
		if err := p.Validate(); err != nil {
			return Data{}, fmt.Errorf("seed: product %s: %w", sp.ID, err)
		}
		p.SyncStock()
		out.Products = append(out.Products, p)
	}
	for _, su := range f.Users {
		role, ok := domain.ParseRole(su.Role)
		if !ok {
			role = domain.RoleUser
		}
		out.Users = append(out.Users, domain.User{
			ID: su.ID, Email: su.Email, FirstName: su.FirstName, LastName: su.LastName,
			Role: role, IsActive: !su.Inactive,
		})
	}
	return out, nil
}
