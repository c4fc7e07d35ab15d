package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/phenrril/shopmarket/internal/domain"
)

type CartUC struct {
	Sessions *SessionUC
	Catalog  *ProductUC
}

// CartView is the cart with its derived values.
type CartView struct {
	Items     []domain.CartLine `json:"items"`
	ItemCount int               `json:"item_count"`
	Totals
}

func NewCartView(c domain.Cart) CartView {
	lines := c.Snapshot()
	return CartView{Items: lines, ItemCount: c.ItemCount(), Totals: CartTotals(lines)}
}

func (uc *CartUC) Get(ctx context.Context, sid string) (CartView, error) {
	st, err := uc.Sessions.View(ctx, sid)
	if err != nil {
		return CartView{}, err
	}
	return NewCartView(st.Cart), nil
}

// Add puts quantity units of a visible product into the cart, merging with
// the line holding the same color and size.
func (uc *CartUC) Add(ctx context.Context, sid, productID string, qty int, color, size string) (domain.CartLine, CartView, error) {
	p, err := uc.Catalog.GetVisible(ctx, productID)
	if err != nil {
		return domain.CartLine{}, CartView{}, err
	}
	var line domain.CartLine
	st, err := uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		var err error
		line, err = st.Cart.AddLine(*p, qty, color, size, uuid.NewString())
		return err
	})
	if err != nil {
		return domain.CartLine{}, CartView{}, err
	}
	return line, NewCartView(st.Cart), nil
}

func (uc *CartUC) Remove(ctx context.Context, sid, lineID string) (CartView, error) {
	st, err := uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		st.Cart.RemoveLine(lineID)
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	return NewCartView(st.Cart), nil
}

func (uc *CartUC) SetQuantity(ctx context.Context, sid, lineID string, qty int) (CartView, error) {
	st, err := uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		return st.Cart.SetQuantity(lineID, qty)
	})
	if err != nil {
		return CartView{}, err
	}
	return NewCartView(st.Cart), nil
}

func (uc *CartUC) Clear(ctx context.Context, sid string) error {
	_, err := uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		st.Cart.Clear()
		return nil
	})
	return err
}
