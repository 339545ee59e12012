// Package view holds the product list view state: the source catalog, the
// active filter and sort, the derived list they produce, the cursor and the
// add-to-cart popup.
//
// Every mutation of a pipeline input recomputes the derived list with
// listing.Derive before returning, so Derived is always current.
package view

import (
	"fmt"

	"github.com/five82/farmstand/internal/cart"
	"github.com/five82/farmstand/internal/catalog"
	"github.com/five82/farmstand/internal/listing"
)

// Popup is the notification shown after a product is added to the cart.
type Popup struct {
	Visible  bool
	Name     string
	ImageURL string
	Quantity int // units of the product now in the cart
}

// State is the host of the product list. It is not safe for concurrent use;
// the UI event loop owns it.
type State struct {
	cart cart.Adder

	products []catalog.Product
	filter   listing.Filter
	sort     listing.Sort
	derived  []catalog.Product
	loading  bool
	cursor   int
	popup    Popup
}

// New returns an empty view state that adds to adder.
func New(adder cart.Adder) *State {
	s := &State{cart: adder}
	s.recompute()
	return s
}

// SetProducts replaces the source catalog.
func (s *State) SetProducts(products []catalog.Product) {
	s.products = append([]catalog.Product(nil), products...)
	s.recompute()
}

// Products returns the source catalog.
func (s *State) Products() []catalog.Product {
	return append([]catalog.Product{}, s.products...)
}

// SetLoading records whether a fetch is in flight.
func (s *State) SetLoading(loading bool) { s.loading = loading }

// Loading reports whether a fetch is in flight.
func (s *State) Loading() bool { return s.loading }

// SetFilter sets the name filter. An empty name clears it.
func (s *State) SetFilter(name string) {
	if s.filter.Name == name {
		return
	}
	s.filter = listing.Filter{Name: name}
	s.recompute()
}

// ClearFilter removes the name filter.
func (s *State) ClearFilter() { s.SetFilter("") }

// Filter returns the active filter.
func (s *State) Filter() listing.Filter { return s.filter }

// SetSort replaces the active sort.
func (s *State) SetSort(sort listing.Sort) {
	if s.sort == sort {
		return
	}
	s.sort = sort
	s.recompute()
}

// ToggleSort cycles key through ascending, descending and unset.
func (s *State) ToggleSort(key listing.SortKey) {
	s.SetSort(s.sort.Toggle(key))
}

// ClearSort removes the active sort.
func (s *State) ClearSort() { s.SetSort(listing.Sort{}) }

// Sort returns the active sort.
func (s *State) Sort() listing.Sort { return s.sort }

// Reset clears both the filter and the sort, restoring the source order.
func (s *State) Reset() {
	s.filter = listing.Filter{}
	s.sort = listing.Sort{}
	s.recompute()
}

// Derived returns the filtered and sorted list.
func (s *State) Derived() []catalog.Product {
	return append([]catalog.Product{}, s.derived...)
}

// Len returns the number of derived products.
func (s *State) Len() int { return len(s.derived) }

// Cursor returns the index of the selected product in the derived list.
func (s *State) Cursor() int { return s.cursor }

// MoveCursor moves the selection by delta, clamped to the derived list.
func (s *State) MoveCursor(delta int) {
	s.cursor = clamp(s.cursor+delta, len(s.derived))
}

// Selected returns the product under the cursor.
func (s *State) Selected() (catalog.Product, bool) {
	if s.cursor < 0 || s.cursor >= len(s.derived) {
		return catalog.Product{}, false
	}
	return s.derived[s.cursor], true
}

// AddToCart adds p to the cart and shows the popup for it. A popup that is
// already visible is replaced. On error the popup is left unchanged.
func (s *State) AddToCart(p catalog.Product) error {
	if s.cart == nil {
		return fmt.Errorf("add %q: no cart", p.Name)
	}
	line, err := s.cart.Add(p)
	if err != nil {
		return err
	}
	s.popup = Popup{
		Visible:  true,
		Name:     p.Name,
		ImageURL: p.ImageURL,
		Quantity: line.Quantity,
	}
	return nil
}

// AddSelected adds the product under the cursor to the cart.
func (s *State) AddSelected() error {
	p, ok := s.Selected()
	if !ok {
		return fmt.Errorf("add to cart: nothing selected")
	}
	return s.AddToCart(p)
}

// ClosePopup hides the popup.
func (s *State) ClosePopup() { s.popup = Popup{} }

// Popup returns the current popup.
func (s *State) Popup() Popup { return s.popup }

func (s *State) recompute() {
	s.derived = listing.Derive(s.products, s.filter, s.sort)
	s.cursor = clamp(s.cursor, len(s.derived))
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
