package httpserver

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/phenrril/shopmarket/internal/usecase"
)

// Deps wires the usecases and secrets the HTTP layer needs.
type Deps struct {
	Products *usecase.ProductUC
	Sessions *usecase.SessionUC
	Cart     *usecase.CartUC
	Wishlist *usecase.WishlistUC
	Orders   *usecase.OrderUC
	Auth     *usecase.AuthUC
	Users    *usecase.UserUC
	Stats    *usecase.StatsUC

	SessionKey    []byte
	AdminSecret   []byte
	AdminUser     string
	AdminPass     string
	AdminTokenTTL time.Duration
	SecureCookies bool
	// RateLimit is requests per minute per client; 0 disables limiting.
	RateLimit int
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address
	// is always the client.
	TrustedProxies []netip.Prefix
}

type Server struct {
	mux      *http.ServeMux
	products *usecase.ProductUC
	sessions *usecase.SessionUC
	cart     *usecase.CartUC
	wishlist *usecase.WishlistUC
	orders   *usecase.OrderUC
	auth     *usecase.AuthUC
	users    *usecase.UserUC
	stats    *usecase.StatsUC

	sessionKey  []byte
	adminSecret []byte
	adminUser   string
	adminPass   string
	adminTTL    time.Duration
	secure      bool

	metrics *metrics
}

func New(d Deps) http.Handler {
	s := &Server{
		mux:         http.NewServeMux(),
		products:    d.Products,
		sessions:    d.Sessions,
		cart:        d.Cart,
		wishlist:    d.Wishlist,
		orders:      d.Orders,
		auth:        d.Auth,
		users:       d.Users,
		stats:       d.Stats,
		sessionKey:  d.SessionKey,
		adminSecret: d.AdminSecret,
		adminUser:   d.AdminUser,
		adminPass:   d.AdminPass,
		adminTTL:    d.AdminTokenTTL,
		secure:      d.SecureCookies,
		metrics:     newMetrics(),
	}
	if len(s.sessionKey) == 0 {
		s.sessionKey = []byte("dev-insecure")
	}
	if len(s.adminSecret) == 0 {
		s.adminSecret = s.sessionKey
	}
	if s.adminTTL <= 0 {
		s.adminTTL = 30 * time.Minute
	}
	s.routes()
	// metrics sits next to the mux so it sees the matched route pattern
	return Chain(s.mux,
		RequestID,
		RealIP(d.TrustedProxies),
		Logging,
		Recovery,
		SecurityHeaders,
		RateLimit(d.RateLimit, time.Minute),
		s.metrics.Middleware,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", s.metrics.Handler())

	s.mux.HandleFunc("GET /api/home", s.apiHome)
	s.mux.HandleFunc("GET /api/products", s.apiProducts)
	s.mux.HandleFunc("GET /api/men", s.apiGender("men"))
	s.mux.HandleFunc("GET /api/women", s.apiGender("women"))
	s.mux.HandleFunc("GET /api/product/{id}", s.apiProduct)
	s.mux.HandleFunc("GET /api/search/suggestions", s.apiSuggestions)

	s.mux.HandleFunc("GET /api/cart", s.withSession(s.apiCartGet))
	s.mux.HandleFunc("POST /api/cart", s.withSession(s.apiCartAdd))
	s.mux.HandleFunc("DELETE /api/cart", s.withSession(s.apiCartClear))
	s.mux.HandleFunc("PATCH /api/cart/{lineID}", s.withSession(s.apiCartUpdate))
	s.mux.HandleFunc("DELETE /api/cart/{lineID}", s.withSession(s.apiCartRemove))

	s.mux.HandleFunc("GET /api/wishlist", s.withSession(s.apiWishlist))
	s.mux.HandleFunc("POST /api/wishlist", s.withSession(s.apiWishlistAdd))
	s.mux.HandleFunc("GET /api/wishlist/{productID}", s.withSession(s.apiWishlistContains))
	s.mux.HandleFunc("DELETE /api/wishlist/{productID}", s.withSession(s.apiWishlistRemove))

	s.mux.HandleFunc("POST /api/checkout", s.withSession(s.apiCheckout))
	s.mux.HandleFunc("GET /api/orders", s.withSession(s.apiOrders))
	s.mux.HandleFunc("PATCH /api/orders/{id}", s.withSession(s.apiOrderStatus))

	s.mux.HandleFunc("POST /api/login", s.withSession(s.apiLogin))
	s.mux.HandleFunc("POST /api/signup", s.withSession(s.apiSignup))
	s.mux.HandleFunc("POST /api/logout", s.withSession(s.apiLogout))
	s.mux.HandleFunc("GET /api/me", s.withSession(s.apiMe))

	s.mux.HandleFunc("GET /api/payment-methods", s.withSession(s.apiPaymentMethods))
	s.mux.HandleFunc("POST /api/payment-methods", s.withSession(s.apiPaymentMethodAdd))
	s.mux.HandleFunc("DELETE /api/payment-methods/{id}", s.withSession(s.apiPaymentMethodRemove))
	s.mux.HandleFunc("POST /api/theme/toggle", s.withSession(s.apiThemeToggle))

	s.mux.HandleFunc("POST /api/admin/login", s.handleAdminLogin)
	s.mux.HandleFunc("POST /api/admin/logout", s.handleAdminLogout)
	s.mux.HandleFunc("GET /api/admin/products", s.admin(s.apiAdminProducts))
	s.mux.HandleFunc("POST /api/admin/products", s.admin(s.apiAdminProductCreate))
	s.mux.HandleFunc("PUT /api/admin/products/{id}", s.admin(s.apiAdminProductUpdate))
	s.mux.HandleFunc("DELETE /api/admin/products/{id}", s.admin(s.apiAdminProductDelete))
	s.mux.HandleFunc("POST /api/admin/products/{id}/visibility", s.admin(s.apiAdminProductVisibility))
	s.mux.HandleFunc("GET /api/admin/products/export", s.admin(s.apiAdminExport))
	s.mux.HandleFunc("POST /api/admin/products/import", s.admin(s.apiAdminImport))
	s.mux.HandleFunc("GET /api/admin/stats", s.admin(s.apiAdminStats))
	s.mux.HandleFunc("GET /api/admin/users", s.admin(s.apiAdminUsers))
	s.mux.HandleFunc("PATCH /api/admin/users/{id}", s.admin(s.apiAdminUserPatch))
	s.mux.HandleFunc("PATCH /api/admin/orders/{id}", s.admin(s.apiAdminOrderStatus))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
