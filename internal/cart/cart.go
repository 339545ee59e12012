// Package cart keeps the in-memory shopping cart for a session.
package cart

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/five82/farmstand/internal/catalog"
)

// ErrOutOfStock is returned when a product has no remaining quantity to add.
var ErrOutOfStock = errors.New("out of stock")

// Adder adds a single unit of a product to a cart.
type Adder interface {
	Add(p catalog.Product) (Line, error)
}

// Ensure Cart implements Adder at compile time.
var _ Adder = (*Cart)(nil)

// Line is one product in the cart with the number of units added.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Subtotal returns the line price.
func (l Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Cart is safe for concurrent use. The zero value is an empty cart.
type Cart struct {
	mu    sync.Mutex
	order []string
	lines map[string]*Line
}

// Add puts one unit of p in the cart. The quantity on a line never exceeds
// the stock reported by the catalog.
func (c *Cart) Add(p catalog.Product) (Line, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return Line{}, fmt.Errorf("add %q: product has no id", p.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lines == nil {
		c.lines = make(map[string]*Line)
	}
	line, ok := c.lines[id]
	have := 0
	if ok {
		have = line.Quantity
	}
	if p.Quantity <= have {
		return Line{}, fmt.Errorf("add %q: %w", p.Name, ErrOutOfStock)
	}
	if !ok {
		line = &Line{}
		c.lines[id] = line
		c.order = append(c.order, id)
	}
	line.Product = p
	line.Quantity++
	return *line, nil
}

// Remove drops the line for id. It reports whether a line was removed.
func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[id]; !ok {
		return false
	}
	delete(c.lines, id)
	c.order = slices.DeleteFunc(c.order, func(v string) bool { return v == id })
	return true
}

// Lines returns the cart contents in the order products were first added.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Count returns the total number of units in the cart.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total returns the sum of all line subtotals.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, id := range c.order {
		total += c.lines[id].Subtotal()
	}
	return total
}
