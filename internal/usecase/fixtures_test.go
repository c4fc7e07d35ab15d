package usecase

import (
	"time"

	"github.com/phenrril/shopmarket/internal/adapters/repo/memory"
	"github.com/phenrril/shopmarket/internal/domain"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "oxford", Name: "Oxford Leather Shoes", Description: "Classic brogue", Price: 149.99, Category: "Footwear", Brand: "Heritage",
			Colors: []string{"Brown", "Black"}, Sizes: []string{"42", "43"}, StockCount: 4, InStock: true, Rating: 4.6, ReviewCount: 120,
			Gender: domain.GenderMen, IsVisible: true, IsFeatured: true, Tags: []string{"formal"}},
		{ID: "jacket", Name: "Wool Jacket", Description: "Warm winter jacket", Price: 299.99, Category: "Outerwear", Brand: "Nordic",
			Colors: []string{"Grey"}, Sizes: []string{"M", "L"}, StockCount: 2, InStock: true, Rating: 4.8, ReviewCount: 40,
			Gender: domain.GenderMen, IsVisible: true, IsNew: true},
		{ID: "dress", Name: "Summer Dress", Description: "Light cotton", Price: 29.99, Category: "Dresses", Brand: "Bloom",
			Colors: []string{"Red", "White"}, Sizes: []string{"S", "M"}, StockCount: 12, InStock: true, Rating: 4.2, ReviewCount: 300,
			Gender: domain.GenderWomen, IsVisible: true, IsNew: true, IsFeatured: true, Tags: []string{"summer"}},
		{ID: "bag", Name: "Canvas Tote", Description: "Everyday bag", Price: 50, Category: "Accessories", Brand: "Bloom",
			StockCount: 8, InStock: true, Rating: 3.9, ReviewCount: 15, Gender: domain.GenderUnisex, IsVisible: true},
		{ID: "sneaker", Name: "Runner Sneakers", Description: "Lightweight", Price: 89.5, Category: "Footwear", Brand: "Stride",
			Colors: []string{"White"}, Sizes: []string{"42"}, StockCount: 0, InStock: false, Rating: 4.0, ReviewCount: 80,
			Gender: domain.GenderUnisex, IsVisible: true},
		{ID: "hidden", Name: "Prototype Boot", Price: 10, Category: "Footwear", Brand: "Heritage",
			StockCount: 1, InStock: true, Gender: domain.GenderMen, IsVisible: false},
	}
}

type harness struct {
	products *ProductUC
	sessions *SessionUC
	cart     *CartUC
	wishlist *WishlistUC
	orders   *OrderUC
	auth     *AuthUC
	users    *memory.UserRepo
}

func newHarness(gw domain.PaymentGateway) *harness {
	products := &ProductUC{Products: memory.NewProductRepo(testCatalog()...), Now: fixedClock}
	sessions := &SessionUC{Store: memory.NewSnapshotRepo(), Now: fixedClock}
	users := memory.NewUserRepo(domain.User{ID: "user-3", Email: "jane.smith@example.com", Role: domain.RoleUser, IsActive: false})
	return &harness{
		products: products,
		sessions: sessions,
		cart:     &CartUC{Sessions: sessions, Catalog: products},
		wishlist: &WishlistUC{Sessions: sessions, Catalog: products},
		orders:   &OrderUC{Sessions: sessions, Gateway: gw},
		auth:     &AuthUC{Sessions: sessions, Users: users},
		users:    users,
	}
}
