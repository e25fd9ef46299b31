// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/store"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct{}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	// An empty cart is reported before form errors
	if s.CartCount() == 0 {
		respondError(c, store.ErrEmptyCart)
		return
	}

	var form store.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid checkout data",
			"details": err.Error(),
		})
		return
	}

	order, err := s.PlaceOrder(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, s, http.StatusCreated, "Order placed successfully", newOrderView(order))
}
