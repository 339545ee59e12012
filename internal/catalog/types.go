package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Product mirrors a record returned by /customer/getProductListings.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// UnmarshalJSON accepts both the document store's "_id" and a plain "id".
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var raw struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Product(raw.plain)
	if p.ID == "" {
		p.ID = raw.AltID
	}
	return nil
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Quantity > 0
}

// DisplayPrice formats the price with two decimals.
func (p Product) DisplayPrice() string {
	return fmt.Sprintf("$%.2f", p.Price)
}

// DisplayType returns the category label, or "uncategorized" when blank.
func (p Product) DisplayType() string {
	if t := strings.TrimSpace(p.Type); t != "" {
		return t
	}
	return "uncategorized"
}
