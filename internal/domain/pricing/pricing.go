// internal/domain/pricing/pricing.go
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// AccountType decides which price list applies
type AccountType string

const (
	AccountIndividual AccountType = "individual"
	AccountGovernment AccountType = "government"
)

// Valid reports whether t is a known account type
func (t AccountType) Valid() bool {
	return t == AccountIndividual || t == AccountGovernment
}

// TaxRate is the flat sales tax applied to every cart
var TaxRate = decimal.RequireFromString("0.08")

var hundred = decimal.NewFromInt(100)

// Line is a product and the quantity requested of it
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Totals represents calculated cart totals. Values are exact; round with Format
// only when displaying them.
type Totals struct {
	ItemCount     int             `json:"item_count"`     // Number of distinct lines
	TotalQuantity int             `json:"total_quantity"` // Sum of all quantities
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// UnitPrice returns the price of one unit for the account type
func UnitPrice(p catalog.Product, accountType AccountType) decimal.Decimal {
	if accountType == AccountGovernment {
		return p.GovernmentPrice
	}
	return p.Price
}

// DiscountPercent returns the whole-number government saving on p, or 0 for
// individual accounts and zero-priced products.
func DiscountPercent(p catalog.Product, accountType AccountType) int {
	if accountType != AccountGovernment || p.Price.IsZero() {
		return 0
	}
	return int(p.Price.Sub(p.GovernmentPrice).Div(p.Price).Mul(hundred).Round(0).IntPart())
}

// LineTotal returns unit price times quantity
func LineTotal(line Line, accountType AccountType) decimal.Decimal {
	return UnitPrice(line.Product, accountType).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// CartTotals computes subtotal, tax and total for the lines
func CartTotals(lines []Line, accountType AccountType) Totals {
	totals := Totals{
		ItemCount: len(lines),
		Subtotal:  decimal.Zero,
	}

	for _, line := range lines {
		totals.TotalQuantity += line.Quantity
		totals.Subtotal = totals.Subtotal.Add(LineTotal(line, accountType))
	}

	totals.Tax = totals.Subtotal.Mul(TaxRate)
	totals.Total = totals.Subtotal.Add(totals.Tax)

	return totals
}

// Format renders a monetary amount with two decimal places
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
