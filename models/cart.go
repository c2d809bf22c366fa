package models

// CartLine is one product's quantity entry in the cart.
type CartLine struct {
	Product  Product
	Quantity int
}

// Cart is an ordered list of lines, one per product id, in first-add order.
// Cart is a value: every mutation returns a new Cart and leaves the receiver untouched.
type Cart struct {
	lines []CartLine
}

func NewCart() Cart {
	return Cart{}
}

func (c Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the cart lines.
func (c Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c Cart) Line(index int) (CartLine, bool) {
	if index < 0 || index >= len(c.lines) {
		return CartLine{}, false
	}
	return c.lines[index], true
}

func (c Cart) indexOf(productID int64) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddOrIncrement bumps the quantity of the line holding p by one,
// or appends a new line with quantity 1.
func (c Cart) AddOrIncrement(p Product) Cart {
	if i := c.indexOf(p.ID); i >= 0 {
		lines := c.Lines()
		lines[i] = CartLine{Product: lines[i].Product, Quantity: lines[i].Quantity + 1}
		return Cart{lines: lines}
	}
	lines := make([]CartLine, len(c.lines), len(c.lines)+1)
	copy(lines, c.lines)
	return Cart{lines: append(lines, CartLine{Product: p, Quantity: 1})}
}

// SetQuantity replaces the quantity of the line at index.
// Zero keeps the line; negative quantities are rejected with ErrInvalidQuantity.
func (c Cart) SetQuantity(index, quantity int) (Cart, error) {
	if quantity < 0 {
		return c, ErrInvalidQuantity
	}
	if index < 0 || index >= len(c.lines) {
		return c, ErrLineNotFound
	}
	lines := c.Lines()
	lines[index] = CartLine{Product: lines[index].Product, Quantity: quantity}
	return Cart{lines: lines}, nil
}
