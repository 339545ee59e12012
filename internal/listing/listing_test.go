package listing

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/farmstand/internal/catalog"
)

func orangeFixture() []catalog.Product {
	return []catalog.Product{
		{ID: "1", Name: "Orange", Price: 99},
		{ID: "2", Name: "Orange orange", Price: 299},
	}
}

func randomCatalog(r *rand.Rand, n int) []catalog.Product {
	names := []string{"Apple", "apple", "Kale", "Orange", "orange juice", "Beet", "Basil", "Honey"}
	types := []string{"fruit", "Fruit", "greens", "herbs", "pantry", ""}
	out := make([]catalog.Product, n)
	for i := range out {
		out[i] = catalog.Product{
			ID:       fmt.Sprintf("p%d", i),
			Name:     names[r.IntN(len(names))],
			Type:     types[r.IntN(len(types))],
			Price:    float64(r.IntN(5)) * 1.25,
			Quantity: r.IntN(4),
		}
	}
	return out
}

func TestDerive_OrangeExample(t *testing.T) {
	products := orangeFixture()

	for _, q := range []string{"orange", "ORANGE", "OrAnGe"} {
		got := Derive(products, Filter{Name: q}, Sort{})
		if diff := cmp.Diff(products, got); diff != "" {
			t.Fatalf("filter %q mismatch (-want +got):\n%s", q, diff)
		}
	}

	got := Derive(products, Filter{Name: "orange"}, Sort{Key: SortPrice, Direction: Descending})
	if len(got) != 2 || got[0].Price != 299 || got[1].Price != 99 {
		t.Fatalf("price desc = %#v, want [299 99]", got)
	}
}

func TestDerive_FilterIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		products := randomCatalog(r, r.IntN(30))
		for _, q := range []string{"", "a", "APP", "orange", "zzz", " "} {
			f := Filter{Name: q}
			once := Derive(products, f, Sort{})
			twice := Derive(once, f, Sort{})
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Fatalf("filter %q not idempotent (-once +twice):\n%s", q, diff)
			}
		}
	}
}

func TestDerive_AdjacentPairsRespectOrder(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 50; i++ {
		products := randomCatalog(r, 1+r.IntN(40))
		for _, key := range SortKeys {
			for _, dir := range []Direction{Ascending, Descending} {
				s := Sort{Key: key, Direction: dir}
				got := Derive(products, Filter{}, s)
				for j := 1; j < len(got); j++ {
					if Compare(s, got[j-1], got[j]) > 0 {
						t.Fatalf("%s: pair %d out of order: %#v then %#v", s, j, got[j-1], got[j])
					}
				}
			}
		}
	}
}

func TestDerive_TiesKeepInputOrder(t *testing.T) {
	products := []catalog.Product{
		{ID: "a", Name: "Kale", Price: 2},
		{ID: "b", Name: "Beet", Price: 1},
		{ID: "c", Name: "Chard", Price: 2},
		{ID: "d", Name: "Leek", Price: 1},
	}
	asc := Derive(products, Filter{}, Sort{Key: SortPrice})
	if ids := idsOf(asc); ids != "b,d,a,c" {
		t.Fatalf("price asc ids = %s, want b,d,a,c", ids)
	}
	desc := Derive(products, Filter{}, Sort{Key: SortPrice, Direction: Descending})
	if ids := idsOf(desc); ids != "a,c,b,d" {
		t.Fatalf("price desc ids = %s, want a,c,b,d", ids)
	}
}

func TestDerive_ResetReturnsSource(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	products := randomCatalog(r, 25)

	_ = Derive(products, Filter{Name: "a"}, Sort{Key: SortName, Direction: Descending})
	got := Derive(products, Filter{}, Sort{})
	if diff := cmp.Diff(products, got); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	products := []catalog.Product{{ID: "2", Name: "b"}, {ID: "1", Name: "a"}}
	before := append([]catalog.Product(nil), products...)

	got := Derive(products, Filter{}, Sort{Key: SortName})
	if diff := cmp.Diff(before, products); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
	got[0].Name = "changed"
	if products[1].Name != "a" {
		t.Fatalf("result aliases input")
	}
}

func TestDerive_EmptyResultIsNonNil(t *testing.T) {
	got := Derive(nil, Filter{Name: "x"}, Sort{})
	if got == nil || len(got) != 0 {
		t.Fatalf("Derive(nil) = %#v, want empty non-nil", got)
	}
}

func TestDerive_NameSortIsCaseInsensitiveAndTotal(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Name: "banana"},
		{ID: "2", Name: "apple"},
		{ID: "3", Name: "Apple"},
		{ID: "4", Name: "Cherry"},
	}
	got := Derive(products, Filter{}, Sort{Key: SortName})
	if ids := idsOf(got); ids != "3,2,1,4" {
		t.Fatalf("name asc ids = %s, want 3,2,1,4", ids)
	}
}

func TestSort_Toggle(t *testing.T) {
	var s Sort
	s = s.Toggle(SortPrice)
	if s != (Sort{Key: SortPrice, Direction: Ascending}) {
		t.Fatalf("first toggle = %v, want price asc", s)
	}
	s = s.Toggle(SortPrice)
	if s != (Sort{Key: SortPrice, Direction: Descending}) {
		t.Fatalf("second toggle = %v, want price desc", s)
	}
	if got := s.Toggle(SortName); got != (Sort{Key: SortName}) {
		t.Fatalf("toggle new key = %v, want name asc replacing price", got)
	}
	s = s.Toggle(SortPrice)
	if s.Active() {
		t.Fatalf("third toggle = %v, want unset", s)
	}
	if got := s.Toggle(SortNone); got.Active() {
		t.Fatalf("toggle none = %v, want unset", got)
	}
}

func TestParseSortKeyAndDirection(t *testing.T) {
	cases := []struct {
		in   string
		want SortKey
	}{
		{"", SortNone},
		{"none", SortNone},
		{" Price ", SortPrice},
		{"category", SortType},
		{"qty", SortQuantity},
		{"name", SortName},
	}
	for _, tc := range cases {
		got, err := ParseSortKey(tc.in)
		if err != nil {
			t.Fatalf("ParseSortKey(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseSortKey(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseSortKey("rating"); err == nil {
		t.Fatalf("ParseSortKey(rating) returned nil error")
	}

	if d, err := ParseDirection("DESC"); err != nil || d != Descending {
		t.Fatalf("ParseDirection(DESC) = %v, %v; want desc", d, err)
	}
	if d, err := ParseDirection(""); err != nil || d != Ascending {
		t.Fatalf("ParseDirection(\"\") = %v, %v; want asc", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Fatalf("ParseDirection(up) returned nil error")
	}
}

func idsOf(products []catalog.Product) string {
	var out string
	for i, p := range products {
		if i > 0 {
			out += ","
		}
		out += p.ID
	}
	return out
}
