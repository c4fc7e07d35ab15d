package domain

// SessionKeyPrefix namespaces persisted session state.
const SessionKeyPrefix = "ecommerce-store:"

func SessionKey(sid string) string { return SessionKeyPrefix + sid }

// SessionState is everything persisted for one client session.
type SessionState struct {
	DarkMode        bool            `json:"is_dark_mode"`
	User            *User           `json:"user"`
	IsAuthenticated bool            `json:"is_authenticated"`
	Cart            Cart            `json:"cart"`
	Wishlist        Wishlist        `json:"wishlist"`
	Orders          OrderLog        `json:"orders"`
	PaymentMethods  []PaymentMethod `json:"payment_methods"`
}

func NewSessionState() *SessionState {
	return &SessionState{
		Cart:           Cart{},
		Wishlist:       Wishlist{},
		Orders:         OrderLog{},
		PaymentMethods: DefaultPaymentMethods(),
	}
}

// SignOut drops the user together with cart, wishlist and orders.
func (s *SessionState) SignOut() {
	s.User = nil
	s.IsAuthenticated = false
	s.Cart.Clear()
	s.Wishlist = Wishlist{}
	s.Orders = OrderLog{}
}

func (s *SessionState) UserID() string {
	if s.User == nil || !s.IsAuthenticated {
		return GuestUserID
	}
	return s.User.ID
}

func (s *SessionState) PaymentMethod(id string) (PaymentMethod, bool) {
	for _, m := range s.PaymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// RemovePaymentMethod drops a method; when it was the default the first
// remaining method takes over.
func (s *SessionState) RemovePaymentMethod(id string) bool {
	out := make([]PaymentMethod, 0, len(s.PaymentMethods))
	removed, wasDefault := false, false
	for _, m := range s.PaymentMethods {
		if m.ID == id {
			removed, wasDefault = true, m.IsDefault
			continue
		}
		out = append(out, m)
	}
	if wasDefault && len(out) > 0 {
		out[0].IsDefault = true
	}
	s.PaymentMethods = out
	return removed
}

type DashboardStats struct {
	TotalProducts    int     `json:"total_products"`
	TotalUsers       int     `json:"total_users"`
	TotalOrders      int     `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
	LowStockProducts int     `json:"low_stock_products"`
	PendingOrders    int     `json:"pending_orders"`
}
