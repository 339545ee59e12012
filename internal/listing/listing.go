// Package listing derives the rendered product list from the catalog, a name
// filter and a single active sort.
package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/five82/farmstand/internal/catalog"
)

// Filter narrows the catalog. The zero value keeps every product.
type Filter struct {
	// Name is matched as a case-insensitive substring of the product name.
	Name string
}

// Active reports whether the filter removes anything.
func (f Filter) Active() bool {
	return f.Name != ""
}

// Match reports whether p passes the filter.
func (f Filter) Match(p catalog.Product) bool {
	if f.Name == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name))
}

// SortKey names the product field driving the order.
type SortKey int

const (
	SortNone SortKey = iota
	SortName
	SortPrice
	SortType
	SortQuantity
)

// SortKeys lists the selectable keys in display order.
var SortKeys = []SortKey{SortName, SortPrice, SortType, SortQuantity}

func (k SortKey) String() string {
	switch k {
	case SortName:
		return "name"
	case SortPrice:
		return "price"
	case SortType:
		return "type"
	case SortQuantity:
		return "quantity"
	default:
		return "none"
	}
}

// ParseSortKey maps a flag value to a SortKey. Blank and "none" unset the sort.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "name":
		return SortName, nil
	case "price":
		return SortPrice, nil
	case "type", "category":
		return SortType, nil
	case "quantity", "qty", "stock":
		return SortQuantity, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// Direction orders values ascending or descending.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection maps "asc"/"desc" (and their long forms) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort direction %q", s)
}

// Sort is the single active ordering. The zero value is unset.
type Sort struct {
	Key       SortKey
	Direction Direction
}

// Active reports whether a sort key is selected.
func (s Sort) Active() bool {
	return s.Key != SortNone
}

func (s Sort) String() string {
	if !s.Active() {
		return "none"
	}
	return s.Key.String() + " " + s.Direction.String()
}

// Toggle cycles the sort for key: a new key starts ascending and replaces the
// current one, an ascending key flips to descending, a descending key unsets.
func (s Sort) Toggle(key SortKey) Sort {
	if key == SortNone {
		return Sort{}
	}
	if s.Key != key {
		return Sort{Key: key, Direction: Ascending}
	}
	if s.Direction == Ascending {
		return Sort{Key: key, Direction: Descending}
	}
	return Sort{}
}

// Derive filters products and then orders the survivors. The input slice is
// never modified and the result never aliases it.
//
// Products comparing equal under the active key keep their relative input
// order, so the result is fully determined by the inputs.
func Derive(products []catalog.Product, f Filter, s Sort) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	if !s.Active() {
		return out
	}
	cmpFn := compareBy(s.Key)
	if s.Direction == Descending {
		asc := cmpFn
		cmpFn = func(a, b catalog.Product) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, cmpFn)
	return out
}

// Compare orders a and b under s. It is the relation Derive sorts by and
// returns 0 when s is unset.
func Compare(s Sort, a, b catalog.Product) int {
	if !s.Active() {
		return 0
	}
	c := compareBy(s.Key)(a, b)
	if s.Direction == Descending {
		return -c
	}
	return c
}

func compareBy(key SortKey) func(a, b catalog.Product) int {
	switch key {
	case SortName:
		return func(a, b catalog.Product) int { return compareFold(a.Name, b.Name) }
	case SortPrice:
		return func(a, b catalog.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortType:
		return func(a, b catalog.Product) int { return compareFold(a.Type, b.Type) }
	case SortQuantity:
		return func(a, b catalog.Product) int { return cmp.Compare(a.Quantity, b.Quantity) }
	}
	return func(catalog.Product, catalog.Product) int { return 0 }
}

// compareFold compares case-insensitively and falls back to a byte-wise
// comparison so "apple" and "Apple" still have a fixed order.
func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
