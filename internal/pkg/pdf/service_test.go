package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/store"
)

func TestGenerateHTML(t *testing.T) {
	cfg := &config.Config{Receipt: config.ReceiptConfig{
		CompanyName:  "Acme Supply",
		CompanyEmail: "orders@acme.test",
	}}
	s := NewService(cfg)
	s.now = func() time.Time { return time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC) }

	desk := catalog.Product{ID: "1", Name: "Standing Desk", SKU: "OFF-DSK-001", Price: decimal.NewFromInt(100), GovernmentPrice: decimal.NewFromInt(80)}
	lines := []store.CartLine{{Product: desk, Quantity: 2}}
	totals := pricing.CartTotals(lines, pricing.AccountGovernment)

	order := store.Order{
		ID:              "ORD-1700000000000-000",
		CustomerName:    "Jane <Doe>",
		CustomerEmail:   "jane@example.com",
		AccountType:     pricing.AccountGovernment,
		Items:           lines,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Status:          store.OrderStatusPending,
		ShippingAddress: "1 Main St, Springfield, 12345",
		CreatedAt:       time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		TrackingNumber:  "TRK00000000ABCD",
	}

	html, err := s.generateHTML(s.receiptData(order))
	require.NoError(t, err)

	assert.Contains(t, html, "RCP-ORD-1700000000000-000")
	assert.Contains(t, html, "February 3, 2024")
	assert.Contains(t, html, "February 1, 2024")
	assert.Contains(t, html, "Acme Supply")
	assert.Contains(t, html, "Government pricing")
	assert.Contains(t, html, "TRK00000000ABCD")
	assert.Contains(t, html, "$80.00")
	assert.Contains(t, html, "$160.00")
	assert.Contains(t, html, "$12.80")
	assert.Contains(t, html, "$172.80")
	assert.Contains(t, html, "Jane &lt;Doe&gt;")
}
