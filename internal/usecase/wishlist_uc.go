package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/phenrril/shopmarket/internal/domain"
)

type WishlistUC struct {
	Sessions *SessionUC
	Catalog  *ProductUC
}

func (uc *WishlistUC) List(ctx context.Context, sid string) (domain.Wishlist, error) {
	st, err := uc.Sessions.View(ctx, sid)
	if err != nil {
		return nil, err
	}
	return st.Wishlist, nil
}

func (uc *WishlistUC) Contains(ctx context.Context, sid, productID string) (bool, error) {
	st, err := uc.Sessions.View(ctx, sid)
	if err != nil {
		return false, err
	}
	return st.Wishlist.Contains(productID), nil
}

// Add saves a product once; adding it again returns the stored entry.
func (uc *WishlistUC) Add(ctx context.Context, sid, productID string) (domain.WishlistEntry, error) {
	p, err := uc.Catalog.GetVisible(ctx, productID)
	if err != nil {
		return domain.WishlistEntry{}, err
	}
	var e domain.WishlistEntry
	_, err = uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		e = st.Wishlist.Add(*p, uuid.NewString(), uc.Sessions.now())
		return nil
	})
	return e, err
}

func (uc *WishlistUC) Remove(ctx context.Context, sid, productID string) error {
	_, err := uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		st.Wishlist.Remove(productID)
		return nil
	})
	return err
}

// Toggle reports whether the product is saved afterwards.
func (uc *WishlistUC) Toggle(ctx context.Context, sid, productID string) (bool, error) {
	p, err := uc.Catalog.Get(ctx, productID)
	if err != nil {
		return false, err
	}
	var saved bool
	_, err = uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		if !st.Wishlist.Contains(p.ID) && !p.IsVisible {
			return domain.ErrNotFound
		}
		saved = st.Wishlist.Toggle(*p, uuid.NewString(), uc.Sessions.now())
		return nil
	})
	return saved, err
}
