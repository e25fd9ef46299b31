// internal/domain/store/entity.go
package store

import (
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/pricing"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// CartLine is one product in the cart with its quantity
type CartLine = pricing.Line

// Order is the snapshot taken when a cart is checked out. Items, totals,
// AccountType and CreatedAt never change after creation.
type Order struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   string              `json:"customer_email"`
	AccountType     pricing.AccountType `json:"account_type"`
	Items           []CartLine          `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Tax             decimal.Decimal     `json:"tax"`
	Total           decimal.Decimal     `json:"total"`
	Status          OrderStatus         `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	TrackingNumber  string              `json:"tracking_number,omitempty"`
}

// ItemCount returns the number of distinct products in the order
func (o Order) ItemCount() int {
	return len(o.Items)
}

// LineTotal returns the frozen price of one order line
func (o Order) LineTotal(line CartLine) decimal.Decimal {
	return pricing.LineTotal(line, o.AccountType)
}

func (o Order) clone() Order {
	o.Items = cloneLines(o.Items)
	return o
}

// CheckoutForm represents the data submitted on the checkout page
type CheckoutForm struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	ZipCode    string `json:"zip_code" binding:"required"`
	CardNumber string `json:"card_number" binding:"required"`
	ExpiryDate string `json:"expiry_date" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}

// ShippingAddress joins the address fields into one line
func (f CheckoutForm) ShippingAddress() string {
	return strings.TrimSpace(f.Address) + ", " + strings.TrimSpace(f.City) + ", " + strings.TrimSpace(f.ZipCode)
}

// Validate checks the customer and shipping fields. Card details are never
// stored and are not checked here.
func (f CheckoutForm) Validate() error {
	required := map[string]string{
		"name":     f.Name,
		"email":    f.Email,
		"address":  f.Address,
		"city":     f.City,
		"zip code": f.ZipCode,
	}
	for _, field := range []string{"name", "email", "address", "city", "zip code"} {
		if strings.TrimSpace(required[field]) == "" {
			return wrapf(ErrInvalidCheckout, "%s is required", field)
		}
	}

	if _, err := mail.ParseAddress(f.Email); err != nil {
		return wrapf(ErrInvalidCheckout, "invalid email address %q", f.Email)
	}

	return nil
}

// EventType names a store change
type EventType string

const (
	EventOrderPlaced        EventType = "order.placed"
	EventOrderStatusChanged EventType = "order.status_changed"
)

// Event is emitted after a committed order change
type Event struct {
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	OrderID   string      `json:"order_id"`
	Status    OrderStatus `json:"status"`
	Order     Order       `json:"order"`
	At        time.Time   `json:"at"`
}

func cloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
