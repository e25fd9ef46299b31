package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront/internal/domain/catalog"
)

func product(id, price, govPrice string) catalog.Product {
	return catalog.Product{
		ID:              id,
		Price:           decimal.RequireFromString(price),
		GovernmentPrice: decimal.RequireFromString(govPrice),
	}
}

func TestUnitPrice(t *testing.T) {
	p := product("1", "100", "80")

	assert.True(t, UnitPrice(p, AccountIndividual).Equal(decimal.NewFromInt(100)))
	assert.True(t, UnitPrice(p, AccountGovernment).Equal(decimal.NewFromInt(80)))
}

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name        string
		product     catalog.Product
		accountType AccountType
		want        int
	}{
		{"individual never discounted", product("1", "100", "80"), AccountIndividual, 0},
		{"government 20 percent", product("1", "100", "80"), AccountGovernment, 20},
		{"rounds to nearest", product("1", "449.99", "359.99"), AccountGovernment, 20},
		{"rounds half up", product("1", "200", "179"), AccountGovernment, 11},
		{"zero price guarded", product("1", "0", "0"), AccountGovernment, 0},
		{"no discount", product("1", "50", "50"), AccountGovernment, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountPercent(tt.product, tt.accountType))
		})
	}
}

func TestCartTotals_GovernmentScenario(t *testing.T) {
	lines := []Line{{Product: product("1", "100", "80"), Quantity: 2}}

	totals := CartTotals(lines, AccountGovernment)

	assert.Equal(t, "160.00", Format(totals.Subtotal))
	assert.Equal(t, "12.80", Format(totals.Tax))
	assert.Equal(t, "172.80", Format(totals.Total))
	assert.Equal(t, 1, totals.ItemCount)
	assert.Equal(t, 2, totals.TotalQuantity)
}

func TestCartTotals_IsAdditive(t *testing.T) {
	lines := []Line{
		{Product: product("1", "449.99", "359.99"), Quantity: 3},
		{Product: product("2", "79.99", "63.99"), Quantity: 1},
		{Product: product("3", "0.10", "0.07"), Quantity: 7},
	}
	factor := decimal.RequireFromString("1.08")

	for _, accountType := range []AccountType{AccountIndividual, AccountGovernment} {
		totals := CartTotals(lines, accountType)

		sum := decimal.Zero
		for _, line := range lines {
			sum = sum.Add(UnitPrice(line.Product, accountType).Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		assert.True(t, totals.Total.Equal(sum.Mul(factor)), "account type %s", accountType)
		assert.True(t, totals.Subtotal.Equal(sum))
		assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)))
	}
}

func TestCartTotals_Empty(t *testing.T) {
	totals := CartTotals(nil, AccountIndividual)

	assert.True(t, totals.Total.IsZero())
	assert.Equal(t, 0, totals.ItemCount)
	assert.Equal(t, "0.00", Format(totals.Total))
}

func TestCartTotals_KeepsFullPrecision(t *testing.T) {
	lines := []Line{{Product: product("1", "0.05", "0.05"), Quantity: 1}}

	totals := CartTotals(lines, AccountIndividual)

	assert.Equal(t, "0.004", totals.Tax.String())
	assert.Equal(t, "0.00", Format(totals.Tax))
	assert.Equal(t, "0.05", Format(totals.Total))
}

func TestAccountType_Valid(t *testing.T) {
	assert.True(t, AccountIndividual.Valid())
	assert.True(t, AccountGovernment.Valid())
	assert.False(t, AccountType("corporate").Valid())
	assert.False(t, AccountType("").Valid())
}
