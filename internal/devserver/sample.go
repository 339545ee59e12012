package devserver

import "github.com/five82/farmstand/internal/catalog"

// SampleProducts returns the catalog served when none is configured.
func SampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "650a1f0c01", Name: "Heirloom Tomatoes", Type: "vegetable", Price: 4.5, Quantity: 24,
			Description: "Mixed colours, picked this morning.", ImageURL: "/images/tomatoes.jpg"},
		{ID: "650a1f0c02", Name: "Orange", Type: "fruit", Price: 0.99, Quantity: 120,
			Description: "Navel oranges.", ImageURL: "/images/orange.jpg"},
		{ID: "650a1f0c03", Name: "Orange Blossom Honey", Type: "pantry", Price: 12, Quantity: 8,
			Description: "Raw, unfiltered, 500g jar.", ImageURL: "/images/honey.jpg"},
		{ID: "650a1f0c04", Name: "Lacinato Kale", Type: "greens", Price: 3, Quantity: 0,
			Description: "Bunch.", ImageURL: "/images/kale.jpg"},
		{ID: "650a1f0c05", Name: "Pasture Eggs", Type: "dairy", Price: 6.25, Quantity: 30,
			Description: "One dozen, mixed sizes.", ImageURL: "/images/eggs.jpg"},
		{ID: "650a1f0c06", Name: "basil", Type: "herbs", Price: 2.5, Quantity: 15,
			Description: "Genovese basil, potted.", ImageURL: "/images/basil.jpg"},
		{ID: "650a1f0c07", Name: "Sourdough Loaf", Type: "bakery", Price: 7, Quantity: 5,
			Description: "Baked Saturday.", ImageURL: "/images/sourdough.jpg"},
	}
}
