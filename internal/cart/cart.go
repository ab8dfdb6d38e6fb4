// Package cart implements the per-session shopping cart: an ordered line
// list with derived totals, plus the two overlay visibility flags that the
// storefront keeps next to the cart because every view reads them.
package cart

import "sync"

// Line is one distinct product in the cart, keyed by product id.
type Line struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Item is the catalog-derived descriptor passed to Add; quantity is owned
// by the cart, not the caller.
type Item struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Brand string  `json:"brand"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// State is a consistent snapshot of the cart for serialization.
type State struct {
	Lines        []Line  `json:"lines"`
	TotalItems   int     `json:"total_items"`
	TotalPrice   float64 `json:"total_price"`
	CartOpen     bool    `json:"cart_open"`
	CheckoutOpen bool    `json:"checkout_open"`
}

type Cart struct {
	mu           sync.Mutex
	lines        []Line
	totalItems   int
	totalPrice   float64
	cartOpen     bool
	checkoutOpen bool
}

func New() *Cart {
	return &Cart{}
}

// Restore rebuilds a cart from a persisted snapshot.
func Restore(s State) *Cart {
	c := &Cart{
		lines:        append([]Line(nil), s.Lines...),
		cartOpen:     s.CartOpen,
		checkoutOpen: s.CheckoutOpen,
	}
	c.recompute()
	return c
}

// Add appends a new line with quantity 1, or increments the existing line
// for the same product id. Never fails.
func (c *Cart) Add(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Quantity++
			c.recompute()
			return
		}
	}

	c.lines = append(c.lines, Line{
		ID:       item.ID,
		Name:     item.Name,
		Brand:    item.Brand,
		Price:    item.Price,
		Image:    item.Image,
		Quantity: 1,
	})
	c.recompute()
}

// UpdateQuantity sets the line's quantity; a quantity of zero or less
// removes the line. No-op when the id is absent.
func (c *Cart) UpdateQuantity(id int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(id)
		return
	}

	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = quantity
			c.recompute()
			return
		}
	}
}

// Remove drops the line unconditionally. No-op when the id is absent.
func (c *Cart) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Cart) removeLocked(id int64) {
	for i, line := range c.lines {
		if line.ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.recompute()
			return
		}
	}
}

// Clear empties the cart. Called after a terminal successful checkout step
// or an explicit cart clear.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.recompute()
}

func (c *Cart) SetCartOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cartOpen = open
}

func (c *Cart) SetCheckoutOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkoutOpen = open
}

// Snapshot returns a copy of the current state; totals are always
// consistent with the line list because every mutation recomputes them
// under the same lock.
func (c *Cart) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Lines:        append([]Line(nil), c.lines...),
		TotalItems:   c.totalItems,
		TotalPrice:   c.totalPrice,
		CartOpen:     c.cartOpen,
		CheckoutOpen: c.checkoutOpen,
	}
}

// FirstLine returns the first line in cart order, used for the PIX binding.
func (c *Cart) FirstLine() (Line, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return Line{}, false
	}
	return c.lines[0], true
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

func (c *Cart) recompute() {
	items := 0
	price := 0.0
	for _, line := range c.lines {
		items += line.Quantity
		price += line.Price * float64(line.Quantity)
	}
	c.totalItems = items
	c.totalPrice = price
}
