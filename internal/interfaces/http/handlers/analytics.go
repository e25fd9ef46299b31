// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/analytics"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/store"
)

// UpdateOrderStatusRequest represents an admin status change
type UpdateOrderStatusRequest struct {
	Status store.OrderStatus `json:"status" binding:"required"`
}

// AnalyticsHandler handles admin dashboard endpoints
type AnalyticsHandler struct {
	analyticsService *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetDashboard handles GET /admin/dashboard
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	orders := s.Orders()
	stats := h.analyticsService.GetDashboardStats(orders)

	respond(c, s, http.StatusOK, "Dashboard statistics retrieved successfully", gin.H{
		"stats": gin.H{
			"total_revenue":      pricing.Format(stats.TotalRevenue),
			"revenue_today":      pricing.Format(stats.RevenueToday),
			"revenue_this_month": pricing.Format(stats.RevenueThisMonth),
			"avg_order_value":    pricing.Format(stats.AvgOrderValue),
			"total_orders":       stats.TotalOrders,
			"pending_orders":     stats.PendingOrders,
			"delivered_orders":   stats.DeliveredOrders,
			"cancelled_orders":   stats.CancelledOrders,
			"orders_today":       stats.OrdersToday,
			"government_orders":  stats.GovernmentOrders,
			"individual_orders":  stats.IndividualOrders,

			// Raw values for calculations
			"raw": stats,
		},
		"orders":   newOrderViews(orders),
		"statuses": append(store.FulfillmentSteps(), store.OrderStatusCancelled),
	})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *AnalyticsHandler) UpdateOrderStatus(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := s.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, s, http.StatusOK, "Order status updated successfully", newOrderView(order))
}
