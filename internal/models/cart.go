package models

import "time"

// Cart represents a shopping cart keyed by an explicit visitor token.
// All amounts are in cents; carts never hold a negative quantity and a
// quantity of zero means the line is gone.
type Cart struct {
	Token     string     `json:"token"`
	Lines     []CartLine `json:"lines"`
	Total     int        `json:"total"` // in cents
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartLine represents one book in the cart with a snapshot of its
// display data at the time it was added
type CartLine struct {
	BookID    int    `json:"book_id"`
	Title     string `json:"title"`
	UnitPrice int    `json:"unit_price"` // in cents
	ImageURL  string `json:"image_url"`
	Quantity  int    `json:"quantity"`
	Subtotal  int    `json:"subtotal"` // in cents
}

// LineTotal computes unit price times quantity in cents. Quantity must
// already be non-negative here; ChangeQuantity is the clamping entry
// point for deltas.
func LineTotal(unitPrice, quantity int) (int, error) {
	if quantity < 0 {
		return 0, ErrInvalidQuantity
	}
	return unitPrice * quantity, nil
}

// ChangeQuantity applies a signed delta to the line for the given
// book. The resulting quantity clamps at zero and a zero quantity
// removes the line. A missing line is created when delta is positive;
// decrementing a missing line is ErrUnknownItem. On error the cart is
// unchanged.
func (c *Cart) ChangeQuantity(book *Book, delta int) error {
	idx := c.lineIndex(book.ID)

	if idx < 0 {
		if delta <= 0 {
			return ErrUnknownItem
		}

		subtotal, err := LineTotal(book.Price, delta)
		if err != nil {
			return err
		}

		c.Lines = append(c.Lines, CartLine{
			BookID:    book.ID,
			Title:     book.Title,
			UnitPrice: book.Price,
			ImageURL:  book.ImageURL,
			Quantity:  delta,
			Subtotal:  subtotal,
		})
		c.recalculate()
		return nil
	}

	quantity := c.Lines[idx].Quantity + delta
	if quantity < 0 {
		quantity = 0
	}

	c.applyQuantity(idx, quantity)
	return nil
}

// SetQuantity sets the absolute quantity for the line of the given
// book. Zero removes the line; negative is ErrInvalidQuantity and a
// missing line is ErrUnknownItem. On error the cart is unchanged.
func (c *Cart) SetQuantity(bookID, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	idx := c.lineIndex(bookID)
	if idx < 0 {
		return ErrUnknownItem
	}

	c.applyQuantity(idx, quantity)
	return nil
}

// RemoveLine removes the line for the given book
func (c *Cart) RemoveLine(bookID int) error {
	return c.SetQuantity(bookID, 0)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = nil
	c.Total = 0
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount returns the total number of copies across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// TotalInCurrency returns the cart total in the main currency unit as a float
func (c *Cart) TotalInCurrency() float64 {
	return float64(c.Total) / 100.0
}

// applyQuantity sets a known line to a non-negative quantity,
// removing it at zero, and refreshes the totals
func (c *Cart) applyQuantity(idx, quantity int) {
	if quantity == 0 {
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	} else {
		c.Lines[idx].Quantity = quantity
		c.Lines[idx].Subtotal = c.Lines[idx].UnitPrice * quantity
	}
	c.recalculate()
}

// lineIndex returns the index of the line for the given book, or -1
func (c *Cart) lineIndex(bookID int) int {
	for i := range c.Lines {
		if c.Lines[i].BookID == bookID {
			return i
		}
	}
	return -1
}

// recalculate refreshes the cart total from the line subtotals
func (c *Cart) recalculate() {
	c.Total = 0
	for _, line := range c.Lines {
		c.Total += line.Subtotal
	}
}
