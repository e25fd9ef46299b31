// internal/interfaces/http/handlers/order.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/store"
)

// ReceiptRenderer renders an order receipt as PDF
type ReceiptRenderer interface {
	GenerateReceipt(order store.Order) (*bytes.Buffer, error)
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	receipts ReceiptRenderer
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(receipts ReceiptRenderer) *OrderHandler {
	return &OrderHandler{receipts: receipts}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	orders := newOrderViews(s.Orders())
	respond(c, s, http.StatusOK, "Orders retrieved successfully", gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	order, err := s.Order(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, s, http.StatusOK, "Order retrieved successfully", newOrderView(order))
}

// TrackOrder handles GET /orders/:id/tracking
func (h *OrderHandler) TrackOrder(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	order, err := s.Order(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, s, http.StatusOK, "Order tracking retrieved successfully", newTrackingView(order))
}

// GetReceipt handles GET /orders/:id/receipt
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	order, err := s.Order(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	pdfBuffer, err := h.receipts.GenerateReceipt(order)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", order.ID))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}
