package cart

import (
	"sync"

	"github.com/palteria/palteria_api/internal/models"
)

// Line is one cart position: a catalog entry and how many crates of it.
// At most one line exists per product id; a quantity reaching zero removes
// the line entirely.
type Line struct {
	Product        models.CatalogEntry `json:"product"`
	QuantityCrates int                 `json:"quantityCrates"`
}

// Cart is the order-in-progress. It owns its line list: callers mutate only
// through methods and read through Items, which returns a snapshot copy,
// never the internal slice. Lifetime is the browsing session; carts are
// never persisted.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one more crate of the product in the cart, collapsing onto an
// existing line when the product is already present.
func (c *Cart) Add(entry models.CatalogEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID == entry.ID {
			c.lines[i].QuantityCrates++
			return
		}
	}
	c.lines = append(c.lines, Line{Product: entry, QuantityCrates: 1})
}

// Remove takes one crate of the product out of the cart; the line disappears
// when its quantity drops to zero. Unknown products are a no-op.
func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		c.lines[i].QuantityCrates--
		if c.lines[i].QuantityCrates <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// RemoveAll deletes the product's line unconditionally, whatever its quantity.
func (c *Cart) RemoveAll(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Items returns a snapshot of the current lines.
func (c *Cart) Items() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalCrates sums the quantities of all lines.
func (c *Cart) TotalCrates() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.QuantityCrates
	}
	return total
}

// TotalEstimated sums quantity times crate price over all lines.
func (c *Cart) TotalEstimated() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, l := range c.lines {
		total += float64(l.QuantityCrates) * l.Product.PricePerCrate
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = c.lines[:0]
}
