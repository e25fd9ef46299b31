// internal/domain/catalog/catalog.go
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FeaturedLimit is the number of products shown on the home page
const FeaturedLimit = 8

var ErrProductNotFound = errors.New("product not found")

// Catalog is a read-only, in-memory product list
type Catalog struct {
	products []Product
	byID     map[string]int
	images   map[string]string
}

// New builds a catalog from the given products. Product ids must be unique and
// government prices may not exceed standard prices.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		images:   make(map[string]string),
	}

	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has no id", p.Name)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if p.Price.IsNegative() || p.GovernmentPrice.IsNegative() {
			return nil, fmt.Errorf("product %q has a negative price", p.ID)
		}
		if p.GovernmentPrice.GreaterThan(p.Price) {
			return nil, fmt.Errorf("product %q government price exceeds standard price", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %q has negative stock", p.ID)
		}

		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

// Default returns the built-in storefront catalog
func Default() *Catalog {
	c, err := New(seedProducts())
	if err != nil {
		panic(fmt.Sprintf("invalid built-in catalog: %v", err))
	}
	c.images = seedCategoryImages()
	return c
}

// Get returns the product with the given id
func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return c.products[i], nil
}

// List returns all products, optionally restricted to one category (case-insensitive)
func (c *Catalog) List(category string) []Product {
	result := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Featured returns the products highlighted on the home page
func (c *Catalog) Featured() []Product {
	n := FeaturedLimit
	if len(c.products) < n {
		n = len(c.products)
	}
	featured := make([]Product, n)
	copy(featured, c.products[:n])
	return featured
}

// Categories returns one entry per category in first-seen order
func (c *Catalog) Categories() []Category {
	var categories []Category
	index := make(map[string]int)

	for _, p := range c.products {
		i, ok := index[p.Category]
		if !ok {
			index[p.Category] = len(categories)
			categories = append(categories, Category{
				Name:  p.Category,
				Image: c.images[p.Category],
			})
			i = len(categories) - 1
		}
		categories[i].ItemCount++
	}

	return categories
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

func seedCategoryImages() map[string]string {
	return map[string]string{
		"Office Equipment": "/assets/category-office.jpg",
		"Technology":       "/assets/category-tech.jpg",
		"Lighting":         "/assets/category-lighting.jpg",
	}
}

func seedProducts() []Product {
	price := decimal.RequireFromString

	return []Product{
		{
			ID:              "1",
			Name:            "Ergonomic Office Chair",
			Description:     "Fully adjustable mesh chair with lumbar support, 4D armrests and a synchronized tilt mechanism for all-day comfort.",
			Price:           price("449.99"),
			GovernmentPrice: price("359.99"),
			Category:        "Office Equipment",
			Image:           "/assets/product-chair.jpg",
			Stock:           45,
			SKU:             "OFF-CHR-001",
		},
		{
			ID:              "2",
			Name:            "Standing Desk Converter",
			Description:     "Gas-spring desktop riser that converts any desk into a sit-stand workstation in seconds.",
			Price:           price("299.99"),
			GovernmentPrice: price("239.99"),
			Category:        "Office Equipment",
			Image:           "/assets/product-desk.jpg",
			Stock:           30,
			SKU:             "OFF-DSK-002",
		},
		{
			ID:              "3",
			Name:            "27\" 4K Monitor",
			Description:     "IPS panel with 99% sRGB coverage, USB-C power delivery and a height-adjustable stand.",
			Price:           price("549.99"),
			GovernmentPrice: price("439.99"),
			Category:        "Technology",
			Image:           "/assets/product-monitor.jpg",
			Stock:           25,
			SKU:             "TEC-MON-003",
		},
		{
			ID:              "4",
			Name:            "Wireless Keyboard and Mouse Set",
			Description:     "Quiet low-profile keyboard with a matching ergonomic mouse and a single USB receiver.",
			Price:           price("89.99"),
			GovernmentPrice: price("71.99"),
			Category:        "Technology",
			Image:           "/assets/product-keyboard.jpg",
			Stock:           120,
			SKU:             "TEC-KBM-004",
		},
		{
			ID:              "5",
			Name:            "LED Desk Lamp",
			Description:     "Dimmable task lamp with five color temperatures, a wireless charging base and a memory function.",
			Price:           price("79.99"),
			GovernmentPrice: price("63.99"),
			Category:        "Lighting",
			Image:           "/assets/product-lamp.jpg",
			Stock:           80,
			SKU:             "LGT-LMP-005",
		},
		{
			ID:              "6",
			Name:            "Laser Multifunction Printer",
			Description:     "Duplex monochrome laser printer with scanning, copying and 40 ppm output for busy offices.",
			Price:           price("399.99"),
			GovernmentPrice: price("319.99"),
			Category:        "Office Equipment",
			Image:           "/assets/product-printer.jpg",
			Stock:           18,
			SKU:             "OFF-PRN-006",
		},
		{
			ID:              "7",
			Name:            "Business Laptop 14\"",
			Description:     "Lightweight laptop with a 12-core processor, 16 GB memory, 512 GB SSD and all-day battery life.",
			Price:           price("1299.99"),
			GovernmentPrice: price("1039.99"),
			Category:        "Technology",
			Image:           "/assets/product-laptop.jpg",
			Stock:           15,
			SKU:             "TEC-LAP-007",
		},
		{
			ID:              "8",
			Name:            "LED Panel Light 2x4",
			Description:     "Flat-panel troffer replacement delivering 5000 lumens at 40 W with a 50,000 hour rated life.",
			Price:           price("129.99"),
			GovernmentPrice: price("103.99"),
			Category:        "Lighting",
			Image:           "/assets/product-panel.jpg",
			Stock:           60,
			SKU:             "LGT-PNL-008",
		},
		{
			ID:              "9",
			Name:            "Video Conference Camera",
			Description:     "1080p wide-angle camera with dual noise-cancelling microphones and auto framing.",
			Price:           price("199.99"),
			GovernmentPrice: price("159.99"),
			Category:        "Technology",
			Image:           "/assets/product-camera.jpg",
			Stock:           40,
			SKU:             "TEC-CAM-009",
		},
		{
			ID:              "10",
			Name:            "Filing Cabinet, 4 Drawer",
			Description:     "Steel vertical filing cabinet with full-extension drawers and a central lock.",
			Price:           price("259.99"),
			GovernmentPrice: price("207.99"),
			Category:        "Office Equipment",
			Image:           "/assets/product-cabinet.jpg",
			Stock:           0,
			SKU:             "OFF-CAB-010",
		},
	}
}
