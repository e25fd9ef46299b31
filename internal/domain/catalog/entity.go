// internal/domain/catalog/entity.go
package catalog

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog product with standard and government pricing
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`            // Standard unit price
	GovernmentPrice decimal.Decimal `json:"government_price"` // Never above Price
	Category        string          `json:"category"`
	Image           string          `json:"image"`
	Stock           int             `json:"stock"`
	SKU             string          `json:"sku"`
}

// InStock reports whether at least one unit is available
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Category summarizes a product category for the home page
type Category struct {
	Name      string `json:"name"`
	Image     string `json:"image"`
	ItemCount int    `json:"item_count"`
}
