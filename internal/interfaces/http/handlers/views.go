// internal/interfaces/http/handlers/views.go
package handlers

import (
	"time"

	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/store"
)

// ProductView is a product priced for the caller's account type
type ProductView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Image           string `json:"image"`
	SKU             string `json:"sku"`
	Price           string `json:"price"` // Unit price for the account type
	StandardPrice   string `json:"standard_price"`
	GovernmentPrice string `json:"government_price"`
	DiscountPercent int    `json:"discount_percent"`
	Stock           int    `json:"stock"`
	InStock         bool   `json:"in_stock"`
}

// CartLineView is one cart line with its current price
type CartLineView struct {
	Product   ProductView `json:"product"`
	Quantity  int         `json:"quantity"`
	LineTotal string      `json:"line_total"`
}

// CartView is the cart page
type CartView struct {
	AccountType   pricing.AccountType `json:"account_type"`
	Items         []CartLineView      `json:"items"`
	ItemCount     int                 `json:"item_count"`
	TotalQuantity int                 `json:"total_quantity"`
	Subtotal      string              `json:"subtotal"`
	Tax           string              `json:"tax"`
	Total         string              `json:"total"`
}

// OrderLineView is one order line at its frozen price
type OrderLineView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// OrderView is the order confirmation page
type OrderView struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   string              `json:"customer_email"`
	AccountType     pricing.AccountType `json:"account_type"`
	Items           []OrderLineView     `json:"items"`
	ItemCount       int                 `json:"item_count"`
	Subtotal        string              `json:"subtotal"`
	Tax             string              `json:"tax"`
	Total           string              `json:"total"`
	Status          store.OrderStatus   `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	TrackingNumber  string              `json:"tracking_number,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// TrackingStep is one stage on the tracking page
type TrackingStep struct {
	Status    store.OrderStatus `json:"status"`
	Label     string            `json:"label"`
	Completed bool              `json:"completed"`
	Current   bool              `json:"current"`
}

// TrackingView is the track order page
type TrackingView struct {
	OrderID         string            `json:"order_id"`
	Status          store.OrderStatus `json:"status"`
	TrackingNumber  string            `json:"tracking_number,omitempty"`
	ShippingAddress string            `json:"shipping_address"`
	Cancelled       bool              `json:"cancelled"`
	Steps           []TrackingStep    `json:"steps"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

var stepLabels = map[store.OrderStatus]string{
	store.OrderStatusPending:    "Order Placed",
	store.OrderStatusConfirmed:  "Confirmed",
	store.OrderStatusProcessing: "Processing",
	store.OrderStatusShipped:    "Shipped",
	store.OrderStatusDelivered:  "Delivered",
}

func newProductView(p catalog.Product, accountType pricing.AccountType) ProductView {
	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Image:           p.Image,
		SKU:             p.SKU,
		Price:           pricing.Format(pricing.UnitPrice(p, accountType)),
		StandardPrice:   pricing.Format(p.Price),
		GovernmentPrice: pricing.Format(p.GovernmentPrice),
		DiscountPercent: pricing.DiscountPercent(p, accountType),
		Stock:           p.Stock,
		InStock:         p.InStock(),
	}
}

func newProductViews(products []catalog.Product, accountType pricing.AccountType) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p, accountType))
	}
	return views
}

func newCartView(lines []store.CartLine, accountType pricing.AccountType, totals pricing.Totals) CartView {
	view := CartView{
		AccountType:   accountType,
		Items:         make([]CartLineView, 0, len(lines)),
		ItemCount:     totals.ItemCount,
		TotalQuantity: totals.TotalQuantity,
		Subtotal:      pricing.Format(totals.Subtotal),
		Tax:           pricing.Format(totals.Tax),
		Total:         pricing.Format(totals.Total),
	}
	for _, line := range lines {
		view.Items = append(view.Items, CartLineView{
			Product:   newProductView(line.Product, accountType),
			Quantity:  line.Quantity,
			LineTotal: pricing.Format(pricing.LineTotal(line, accountType)),
		})
	}
	return view
}

func newOrderView(o store.Order) OrderView {
	view := OrderView{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		AccountType:     o.AccountType,
		Items:           make([]OrderLineView, 0, len(o.Items)),
		ItemCount:       o.ItemCount(),
		Subtotal:        pricing.Format(o.Subtotal),
		Tax:             pricing.Format(o.Tax),
		Total:           pricing.Format(o.Total),
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		TrackingNumber:  o.TrackingNumber,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, item := range o.Items {
		view.Items = append(view.Items, OrderLineView{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			SKU:       item.Product.SKU,
			Image:     item.Product.Image,
			Quantity:  item.Quantity,
			UnitPrice: pricing.Format(pricing.UnitPrice(item.Product, o.AccountType)),
			LineTotal: pricing.Format(o.LineTotal(item)),
		})
	}
	return view
}

func newOrderViews(orders []store.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}

// newTrackingView marks every step up to the current status as completed.
// Cancelled orders have no current step.
func newTrackingView(o store.Order) TrackingView {
	current := o.Status.Step()
	view := TrackingView{
		OrderID:         o.ID,
		Status:          o.Status,
		TrackingNumber:  o.TrackingNumber,
		ShippingAddress: o.ShippingAddress,
		Cancelled:       o.Status == store.OrderStatusCancelled,
		UpdatedAt:       o.UpdatedAt,
	}
	for i, step := range store.FulfillmentSteps() {
		view.Steps = append(view.Steps, TrackingStep{
			Status:    step,
			Label:     stepLabels[step],
			Completed: current >= 0 && i <= current,
			Current:   i == current,
		})
	}
	return view
}
