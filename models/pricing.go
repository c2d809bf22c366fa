package models

import "github.com/shopspring/decimal"

// LineTotal is price times quantity for a single line.
func LineTotal(l CartLine) decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total sums LineTotal over the cart. An empty cart totals zero.
func Total(c Cart) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(LineTotal(l))
	}
	return total
}
