package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/pricing"
)

func TestEncodeState_Layout(t *testing.T) {
	cat := testCatalog(t)
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	st := state{
		accountType: pricing.AccountGovernment,
		cart:        []CartLine{{Product: product(t, cat, "p2"), Quantity: 2}},
		orders: []Order{{
			ID:              "ORD-1-000",
			CustomerID:      "CUST-1",
			CustomerName:    "Jane",
			CustomerEmail:   "jane@example.com",
			AccountType:     pricing.AccountIndividual,
			Items:           []CartLine{{Product: product(t, cat, "p1"), Quantity: 1}},
			Subtotal:        product(t, cat, "p1").Price,
			Tax:             product(t, cat, "p1").Price.Mul(pricing.TaxRate),
			Total:           product(t, cat, "p1").Price.Add(product(t, cat, "p1").Price.Mul(pricing.TaxRate)),
			Status:          OrderStatusShipped,
			ShippingAddress: "1 Main St, Springfield, 12345",
			CreatedAt:       created,
			UpdatedAt:       created,
		}},
	}

	data, err := encodeState(st)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.EqualValues(t, 1, raw["version"])
	assert.Equal(t, "government", raw["accountType"])

	cart := raw["cart"].([]any)
	require.Len(t, cart, 1)
	assert.Equal(t, map[string]any{"productId": "p2", "quantity": float64(2)}, cart[0])

	order := raw["orders"].([]any)[0].(map[string]any)
	assert.Equal(t, "individual", order["userType"])
	assert.Equal(t, "shipped", order["status"])
	assert.Equal(t, "2024-05-06T07:08:09Z", order["createdAt"])
	assert.NotContains(t, order, "trackingNumber")
}

func TestDecodeState_ReencodesIdentically(t *testing.T) {
	cat := testCatalog(t)
	created := time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC)
	st := state{
		accountType: pricing.AccountIndividual,
		cart:        []CartLine{{Product: product(t, cat, "p1"), Quantity: 3}},
		orders: []Order{{
			ID:             "ORD-2-000",
			AccountType:    pricing.AccountGovernment,
			Items:          []CartLine{{Product: product(t, cat, "p2"), Quantity: 4}},
			Status:         OrderStatusPending,
			CreatedAt:      created,
			UpdatedAt:      created,
			TrackingNumber: "TRK12345678ABCD",
		}},
	}

	first, err := encodeState(st)
	require.NoError(t, err)

	decoded, dropped, err := decodeState(first, cat)
	require.NoError(t, err)
	assert.Zero(t, dropped)

	second, err := encodeState(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestDecodeState_Errors(t *testing.T) {
	cat := testCatalog(t)
	order := func(extra string) string {
		return `{"version":1,"accountType":"individual","cart":[],"orders":[` + extra + `]}`
	}
	valid := `{"id":"ORD-1-000","userType":"individual","status":"pending","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}`

	tests := []struct {
		name string
		data string
	}{
		{"not json", `[]`},
		{"missing version", `{"accountType":"individual"}`},
		{"bad time", order(`{"id":"ORD-1-000","userType":"individual","status":"pending","createdAt":"yesterday","updatedAt":"2024-01-01T00:00:00Z"}`)},
		{"missing id", order(`{"userType":"individual","status":"pending","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}`)},
		{"duplicate id", order(valid + "," + valid)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeState([]byte(tt.data), cat)
			assert.Error(t, err)
		})
	}
}
