package domain

import (
	"fmt"
	"strings"
)

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 999

type CartLine struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SelectedColor string  `json:"selected_color"`
	SelectedSize  string  `json:"selected_size"`
	UnitPrice     float64 `json:"price"`
}

func (l CartLine) sameKey(productID, color, size string) bool {
	return l.ProductID == productID && l.SelectedColor == color && l.SelectedSize == size
}

// Cart is the ledger of cart lines. A line is unique per (product, color, size).
type Cart []CartLine

// AddLine merges into the line with the same (product, color, size) key or
// appends a new one priced at the product's current price. newID is only
// used when a line is appended.
func (c *Cart) AddLine(p Product, qty int, color, size, newID string) (CartLine, error) {
	if qty < 1 || qty > MaxLineQuantity {
		return CartLine{}, ErrInvalidQuantity
	}
	if !p.InStock {
		return CartLine{}, fmt.Errorf("%w: %s", ErrOutOfStock, p.ID)
	}
	color, ok := pickOption(p.Colors, color)
	if !ok {
		return CartLine{}, fmt.Errorf("%w: color %q", ErrInvalidOption, color)
	}
	size, ok = pickOption(p.Sizes, size)
	if !ok {
		return CartLine{}, fmt.Errorf("%w: size %q", ErrInvalidOption, size)
	}
	for i := range *c {
		if (*c)[i].sameKey(p.ID, color, size) {
			if (*c)[i].Quantity > MaxLineQuantity-qty {
				return CartLine{}, fmt.Errorf("%w: line would exceed %d", ErrInvalidQuantity, MaxLineQuantity)
			}
			(*c)[i].Quantity += qty
			return (*c)[i], nil
		}
	}
	line := CartLine{
		ID:            newID,
		ProductID:     p.ID,
		Product:       p,
		Quantity:      qty,
		SelectedColor: color,
		SelectedSize:  size,
		UnitPrice:     p.Price,
	}
	*c = append(*c, line)
	return line, nil
}

// RemoveLine drops the line with id; unknown ids are ignored.
func (c *Cart) RemoveLine(id string) {
	out := (*c)[:0]
	for _, l := range *c {
		if l.ID != id {
			out = append(out, l)
		}
	}
	*c = out
}

// SetQuantity updates a line in place; qty <= 0 removes it. Unknown ids are
// ignored.
func (c *Cart) SetQuantity(id string, qty int) error {
	if qty <= 0 {
		c.RemoveLine(id)
		return nil
	}
	if qty > MaxLineQuantity {
		return ErrInvalidQuantity
	}
	for i := range *c {
		if (*c)[i].ID == id {
			(*c)[i].Quantity = qty
			return nil
		}
	}
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() { *c = Cart{} }

// Find looks a line up by id.
func (c Cart) Find(id string) (CartLine, bool) {
	for _, l := range c {
		if l.ID == id {
			return l, true
		}
	}
	return CartLine{}, false
}

// ItemCount sums the quantities of all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c {
		n += l.Quantity
	}
	return n
}

// Snapshot returns a copy detached from the ledger's backing array.
func (c Cart) Snapshot() []CartLine {
	out := make([]CartLine, len(c))
	copy(out, c)
	return out
}

// pickOption resolves want against the offered options, returning the
// product's own spelling. Products without options accept only a blank choice.
func pickOption(offered []string, want string) (string, bool) {
	want = strings.TrimSpace(want)
	if len(offered) == 0 {
		return "", want == ""
	}
	for _, o := range offered {
		if strings.EqualFold(o, want) {
			return o, true
		}
	}
	return want, false
}
