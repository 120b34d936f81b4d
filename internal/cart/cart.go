package cart

import (
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat sales tax applied to the subtotal.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Line is one product in the cart. Title, price and image are copied at add time.
type Line struct {
	ProductID int             `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is price times quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product, in insertion order. Totals are derived on
// every read. A Cart is not safe for concurrent use; callers serialize access.
type Cart struct {
	lines   []Line
	taxRate decimal.Decimal
}

// New returns an empty cart taxed at rate. A negative rate falls back to DefaultTaxRate.
func New(taxRate decimal.Decimal) *Cart {
	if taxRate.IsNegative() {
		taxRate = DefaultTaxRate
	}
	return &Cart{taxRate: taxRate}
}

func (c *Cart) indexOf(productID int) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of p in the cart, merging into an existing line.
func (c *Cart) Add(p catalog.Product) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
}

// ChangeQuantity moves a line by exactly one unit. Dropping below one removes the
// line. Unknown ids and deltas other than +1/-1 change nothing and report false.
func (c *Cart) ChangeQuantity(productID, delta int) bool {
	if delta != 1 && delta != -1 {
		return false
	}
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	next := c.lines[i].Quantity + delta
	if next < 1 {
		c.removeAt(i)
		return true
	}
	c.lines[i].Quantity = next
	return true
}

// Remove drops the line for productID. It reports whether a line existed.
func (c *Cart) Remove(productID int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount is the sum of quantities, not the number of lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) TaxRate() decimal.Decimal {
	return c.taxRate
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(c.taxRate)
}

func (c *Cart) Total() decimal.Decimal {
	subtotal := c.Subtotal()
	return subtotal.Add(subtotal.Mul(c.taxRate))
}

// Snapshot is a frozen copy of the cart's lines and totals.
type Snapshot struct {
	Lines     []Line
	ItemCount int
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// Snapshot freezes the current contents. Later cart mutations do not affect it.
func (c *Cart) Snapshot() Snapshot {
	subtotal := c.Subtotal()
	tax := subtotal.Mul(c.taxRate)
	return Snapshot{
		Lines:     c.Lines(),
		ItemCount: c.ItemCount(),
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
	}
}
