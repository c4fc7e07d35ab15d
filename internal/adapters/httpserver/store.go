package httpserver

import (
	"errors"
	"net/http"

	"github.com/phenrril/shopmarket/internal/domain"
	"github.com/phenrril/shopmarket/internal/usecase"
)

func (s *Server) apiCartGet(w http.ResponseWriter, r *http.Request, sid string) {
	v, err := s.cart.Get(r.Context(), sid)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) apiCartAdd(w http.ResponseWriter, r *http.Request, sid string) {
	var in struct {
		ProductID string `json:"product_id"`
		Quantity  *int   `json:"quantity"`
		Color     string `json:"color"`
		Size      string `json:"size"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	line, v, err := s.cart.Add(r.Context(), sid, in.ProductID, qty, in.Color, in.Size)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	s.metrics.cartAdds.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"line": line, "cart": v})
}

func (s *Server) apiCartUpdate(w http.ResponseWriter, r *http.Request, sid string) {
	var in struct {
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	v, err := s.cart.SetQuantity(r.Context(), sid, r.PathValue("lineID"), in.Quantity)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request, sid string) {
	v, err := s.cart.Remove(r.Context(), sid, r.PathValue("lineID"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) apiCartClear(w http.ResponseWriter, r *http.Request, sid string) {
	if err := s.cart.Clear(r.Context(), sid); err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usecase.NewCartView(domain.Cart{}))
}

func (s *Server) apiWishlist(w http.ResponseWriter, r *http.Request, sid string) {
	list, err := s.wishlist.List(r.Context(), sid)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// apiWishlistAdd saves a product; with "toggle" it flips the saved state.
func (s *Server) apiWishlistAdd(w http.ResponseWriter, r *http.Request, sid string) {
	var in struct {
		ProductID string `json:"product_id"`
		Toggle    bool   `json:"toggle"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.Toggle {
		saved, err := s.wishlist.Toggle(r.Context(), sid, in.ProductID)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
		return
	}
	e, err := s.wishlist.Add(r.Context(), sid, in.ProductID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) apiWishlistContains(w http.ResponseWriter, r *http.Request, sid string) {
	ok, err := s.wishlist.Contains(r.Context(), sid, r.PathValue("productID"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": ok})
}

func (s *Server) apiWishlistRemove(w http.ResponseWriter, r *http.Request, sid string) {
	if err := s.wishlist.Remove(r.Context(), sid, r.PathValue("productID")); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request, sid string) {
	var req usecase.CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := s.orders.Place(r.Context(), sid, req)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentFailed) {
			s.metrics.paymentFailures.Inc()
		}
		writeErr(w, r, err)
		return
	}
	s.metrics.ordersPlaced.Inc()
	s.metrics.orderRevenue.Add(o.Total)
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) apiOrders(w http.ResponseWriter, r *http.Request, sid string) {
	list, err := s.orders.List(r.Context(), sid)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type statusPatch struct {
	Status string `json:"status"`
}

func parseStatus(w http.ResponseWriter, r *http.Request) (domain.OrderStatus, bool) {
	var in statusPatch
	if !decodeJSON(w, r, &in) {
		return "", false
	}
	st, ok := domain.ParseOrderStatus(in.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown status")
		return "", false
	}
	return st, true
}

func (s *Server) apiOrderStatus(w http.ResponseWriter, r *http.Request, sid string) {
	to, ok := parseStatus(w, r)
	if !ok {
		return
	}
	o, err := s.orders.UpdateStatus(r.Context(), sid, r.PathValue("id"), to)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request, sid string) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	u, err := s.auth.Login(r.Context(), sid, in.Email, in.Password)
	if err != nil {
		s.metrics.logins.WithLabelValues("rejected").Inc()
		writeErr(w, r, err)
		return
	}
	s.metrics.logins.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) apiSignup(w http.ResponseWriter, r *http.Request, sid string) {
	var req usecase.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := s.auth.Signup(r.Context(), sid, req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) apiLogout(w http.ResponseWriter, r *http.Request, sid string) {
	if err := s.auth.Logout(r.Context(), sid); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiMe(w http.ResponseWriter, r *http.Request, sid string) {
	st, err := s.sessions.View(r.Context(), sid)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	var u *domain.User
	if st.IsAuthenticated {
		u = st.User
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":             u,
		"is_authenticated": st.IsAuthenticated,
		"is_dark_mode":     st.DarkMode,
		"cart_count":       st.Cart.ItemCount(),
		"wishlist_count":   len(st.Wishlist),
	})
}

func (s *Server) apiPaymentMethods(w http.ResponseWriter, r *http.Request, sid string) {
	st, err := s.sessions.View(r.Context(), sid)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st.PaymentMethods)
}

func (s *Server) apiPaymentMethodAdd(w http.ResponseWriter, r *http.Request, sid string) {
	var in struct {
		Type      string `json:"type"`
		Name      string `json:"name"`
		IsDefault bool   `json:"is_default"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	kind, ok := domain.ParsePaymentKind(in.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown payment type")
		return
	}
	m, err := s.sessions.AddPaymentMethod(r.Context(), sid, kind, in.Name, in.IsDefault)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) apiPaymentMethodRemove(w http.ResponseWriter, r *http.Request, sid string) {
	if err := s.sessions.RemovePaymentMethod(r.Context(), sid, r.PathValue("id")); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiThemeToggle(w http.ResponseWriter, r *http.Request, sid string) {
	dark, err := s.sessions.ToggleTheme(r.Context(), sid)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_dark_mode": dark})
}
