// internal/domain/analytics/service.go
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/store"
)

// topProductsLimit caps the best-seller list on the dashboard
const topProductsLimit = 5

// Service computes admin dashboard figures from order history
type Service struct {
	now func() time.Time
}

// NewService creates a new analytics service
func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

// DashboardStats represents overall dashboard statistics
type DashboardStats struct {
	// Sales metrics
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	RevenueToday     decimal.Decimal `json:"revenue_today"`
	RevenueThisMonth decimal.Decimal `json:"revenue_this_month"`
	AvgOrderValue    decimal.Decimal `json:"avg_order_value"`

	// Order metrics
	TotalOrders     int `json:"total_orders"`
	PendingOrders   int `json:"pending_orders"`
	DeliveredOrders int `json:"delivered_orders"`
	CancelledOrders int `json:"cancelled_orders"`
	OrdersToday     int `json:"orders_today"`

	// Account mix
	GovernmentOrders int `json:"government_orders"`
	IndividualOrders int `json:"individual_orders"`

	SalesByStatus []StatusData       `json:"sales_by_status"`
	TopProducts   []ProductSalesData `json:"top_products"`
}

// StatusData is the number and value of orders in one status
type StatusData struct {
	Status store.OrderStatus `json:"status"`
	Count  int               `json:"count"`
	Value  decimal.Decimal   `json:"value"`
}

// ProductSalesData is the sales figure for one product
type ProductSalesData struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	TotalSold   int             `json:"total_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
	OrderCount  int             `json:"order_count"`
}

// GetDashboardStats summarizes the given orders. Revenue counts every order
// total as placed, cancelled orders included.
func (s *Service) GetDashboardStats(orders []store.Order) *DashboardStats {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{
		TotalRevenue:     decimal.Zero,
		RevenueToday:     decimal.Zero,
		RevenueThisMonth: decimal.Zero,
		AvgOrderValue:    decimal.Zero,
		TotalOrders:      len(orders),
	}

	byStatus := make(map[store.OrderStatus]*StatusData)
	byProduct := make(map[string]*ProductSalesData)

	for _, order := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(order.Total)

		if !order.CreatedAt.Before(today) {
			stats.RevenueToday = stats.RevenueToday.Add(order.Total)
			stats.OrdersToday++
		}
		if !order.CreatedAt.Before(thisMonth) {
			stats.RevenueThisMonth = stats.RevenueThisMonth.Add(order.Total)
		}

		switch order.Status {
		case store.OrderStatusPending:
			stats.PendingOrders++
		case store.OrderStatusDelivered:
			stats.DeliveredOrders++
		case store.OrderStatusCancelled:
			stats.CancelledOrders++
		}

		if order.AccountType == pricing.AccountGovernment {
			stats.GovernmentOrders++
		} else {
			stats.IndividualOrders++
		}

		sd, ok := byStatus[order.Status]
		if !ok {
			sd = &StatusData{Status: order.Status, Value: decimal.Zero}
			byStatus[order.Status] = sd
		}
		sd.Count++
		sd.Value = sd.Value.Add(order.Total)

		// Cancelled orders never shipped, so they do not count as sales
		if order.Status == store.OrderStatusCancelled {
			continue
		}
		for _, item := range order.Items {
			pd, ok := byProduct[item.Product.ID]
			if !ok {
				pd = &ProductSalesData{
					ProductID:   item.Product.ID,
					ProductName: item.Product.Name,
					SKU:         item.Product.SKU,
					Revenue:     decimal.Zero,
				}
				byProduct[item.Product.ID] = pd
			}
			pd.TotalSold += item.Quantity
			pd.Revenue = pd.Revenue.Add(order.LineTotal(item))
			pd.OrderCount++
		}
	}

	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.TotalOrders)))
	}

	stats.SalesByStatus = make([]StatusData, 0, len(byStatus))
	for _, step := range append(store.FulfillmentSteps(), store.OrderStatusCancelled) {
		if sd, ok := byStatus[step]; ok {
			stats.SalesByStatus = append(stats.SalesByStatus, *sd)
		}
	}

	stats.TopProducts = topProducts(byProduct, topProductsLimit)

	return stats
}

func topProducts(byProduct map[string]*ProductSalesData, limit int) []ProductSalesData {
	products := make([]ProductSalesData, 0, len(byProduct))
	for _, pd := range byProduct {
		products = append(products, *pd)
	}

	sort.Slice(products, func(i, j int) bool {
		if !products[i].Revenue.Equal(products[j].Revenue) {
			return products[i].Revenue.GreaterThan(products[j].Revenue)
		}
		return products[i].ProductID < products[j].ProductID
	})

	if len(products) > limit {
		products = products[:limit]
	}
	return products
}
