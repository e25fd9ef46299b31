package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/pricing"
)

// snapshotVersion is bumped whenever the persisted layout changes
const snapshotVersion = 1

// snapshot is the persisted layout of one session
type snapshot struct {
	Version     int             `json:"version"`
	AccountType string          `json:"accountType"`
	Cart        []cartEntry     `json:"cart"`
	Orders      []orderSnapshot `json:"orders"`
}

type cartEntry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type orderSnapshot struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customerId"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	UserType        string              `json:"userType"`
	Items           []orderItemSnapshot `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Tax             decimal.Decimal     `json:"tax"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shippingAddress"`
	CreatedAt       string              `json:"createdAt"`
	UpdatedAt       string              `json:"updatedAt"`
	TrackingNumber  string              `json:"trackingNumber,omitempty"`
}

type orderItemSnapshot struct {
	Product  productSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

type productSnapshot struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	GovernmentPrice decimal.Decimal `json:"governmentPrice"`
	Category        string          `json:"category"`
	Image           string          `json:"image"`
	Stock           int             `json:"stock"`
	SKU             string          `json:"sku"`
}

// state is everything a Store owns
type state struct {
	accountType pricing.AccountType
	cart        []CartLine
	orders      []Order
}

func defaultState() state {
	return state{accountType: pricing.AccountIndividual}
}

func encodeState(st state) ([]byte, error) {
	snap := snapshot{
		Version:     snapshotVersion,
		AccountType: string(st.accountType),
		Cart:        make([]cartEntry, 0, len(st.cart)),
		Orders:      make([]orderSnapshot, 0, len(st.orders)),
	}

	for _, line := range st.cart {
		snap.Cart = append(snap.Cart, cartEntry{ProductID: line.Product.ID, Quantity: line.Quantity})
	}

	for _, o := range st.orders {
		so := orderSnapshot{
			ID:              o.ID,
			CustomerID:      o.CustomerID,
			CustomerName:    o.CustomerName,
			CustomerEmail:   o.CustomerEmail,
			UserType:        string(o.AccountType),
			Items:           make([]orderItemSnapshot, 0, len(o.Items)),
			Subtotal:        o.Subtotal,
			Tax:             o.Tax,
			Total:           o.Total,
			Status:          string(o.Status),
			ShippingAddress: o.ShippingAddress,
			CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339Nano),
			UpdatedAt:       o.UpdatedAt.UTC().Format(time.RFC3339Nano),
			TrackingNumber:  o.TrackingNumber,
		}
		for _, item := range o.Items {
			so.Items = append(so.Items, orderItemSnapshot{
				Product:  toProductSnapshot(item.Product),
				Quantity: item.Quantity,
			})
		}
		snap.Orders = append(snap.Orders, so)
	}

	return json.Marshal(snap)
}

// decodeState rebuilds a state from persisted bytes. Cart entries for products
// missing from the catalog or with non-positive quantities are dropped and
// duplicate entries are merged; the number of dropped entries is returned.
// Any other inconsistency is reported as an error.
func decodeState(data []byte, cat *catalog.Catalog) (state, int, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return state{}, 0, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return state{}, 0, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	st := state{accountType: pricing.AccountType(snap.AccountType)}
	if !st.accountType.Valid() {
		return state{}, 0, fmt.Errorf("%w: %q", ErrInvalidAccountType, snap.AccountType)
	}

	dropped := 0
	for _, entry := range snap.Cart {
		if entry.Quantity < 1 || cat == nil {
			dropped++
			continue
		}
		product, err := cat.Get(entry.ProductID)
		if err != nil {
			dropped++
			continue
		}
		if i := findLine(st.cart, product.ID); i >= 0 {
			st.cart[i].Quantity += entry.Quantity
			continue
		}
		st.cart = append(st.cart, CartLine{Product: product, Quantity: entry.Quantity})
	}

	seen := make(map[string]bool, len(snap.Orders))
	for _, so := range snap.Orders {
		o, err := fromOrderSnapshot(so)
		if err != nil {
			return state{}, 0, fmt.Errorf("order %s: %w", so.ID, err)
		}
		if seen[o.ID] {
			return state{}, 0, fmt.Errorf("duplicate order id %s", o.ID)
		}
		seen[o.ID] = true
		st.orders = append(st.orders, o)
	}

	return st, dropped, nil
}

func fromOrderSnapshot(so orderSnapshot) (Order, error) {
	if so.ID == "" {
		return Order{}, fmt.Errorf("missing order id")
	}

	accountType := pricing.AccountType(so.UserType)
	if !accountType.Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidAccountType, so.UserType)
	}

	status := OrderStatus(so.Status)
	if !status.Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, so.Status)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, so.CreatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("createdAt: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, so.UpdatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("updatedAt: %w", err)
	}

	o := Order{
		ID:              so.ID,
		CustomerID:      so.CustomerID,
		CustomerName:    so.CustomerName,
		CustomerEmail:   so.CustomerEmail,
		AccountType:     accountType,
		Items:           make([]CartLine, 0, len(so.Items)),
		Subtotal:        so.Subtotal,
		Tax:             so.Tax,
		Total:           so.Total,
		Status:          status,
		ShippingAddress: so.ShippingAddress,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		TrackingNumber:  so.TrackingNumber,
	}
	for _, item := range so.Items {
		o.Items = append(o.Items, CartLine{Product: fromProductSnapshot(item.Product), Quantity: item.Quantity})
	}

	return o, nil
}

func toProductSnapshot(p catalog.Product) productSnapshot {
	return productSnapshot{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		GovernmentPrice: p.GovernmentPrice,
		Category:        p.Category,
		Image:           p.Image,
		Stock:           p.Stock,
		SKU:             p.SKU,
	}
}

func fromProductSnapshot(p productSnapshot) catalog.Product {
	return catalog.Product{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		GovernmentPrice: p.GovernmentPrice,
		Category:        p.Category,
		Image:           p.Image,
		Stock:           p.Stock,
		SKU:             p.SKU,
	}
}

func findLine(lines []CartLine, productID string) int {
	for i := range lines {
		if lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
