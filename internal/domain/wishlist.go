package domain

import "time"

type WishlistEntry struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Product   Product   `json:"product"`
	AddedAt   time.Time `json:"added_at"`
}

// Wishlist holds at most one entry per product.
type Wishlist []WishlistEntry

// Add returns the existing entry when the product is already saved.
func (w *Wishlist) Add(p Product, id string, now time.Time) WishlistEntry {
	for _, e := range *w {
		if e.ProductID == p.ID {
			return e
		}
	}
	e := WishlistEntry{ID: id, ProductID: p.ID, Product: p, AddedAt: now}
	*w = append(*w, e)
	return e
}

func (w *Wishlist) Remove(productID string) {
	out := (*w)[:0]
	for _, e := range *w {
		if e.ProductID != productID {
			out = append(out, e)
		}
	}
	*w = out
}

func (w Wishlist) Contains(productID string) bool {
	for _, e := range w {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// Toggle adds the product when absent and removes it otherwise. It reports
// whether the product is saved afterwards.
func (w *Wishlist) Toggle(p Product, id string, now time.Time) bool {
	if w.Contains(p.ID) {
		w.Remove(p.ID)
		return false
	}
	w.Add(p, id, now)
	return true
}
