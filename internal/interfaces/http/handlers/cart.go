// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/store"
)

// AddToCartRequest represents an add-to-cart request
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents a quantity change
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartHandler handles cart endpoints
type CartHandler struct {
	catalog *catalog.Catalog
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cat *catalog.Catalog) *CartHandler {
	return &CartHandler{catalog: cat}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	respond(c, s, http.StatusOK, "Cart retrieved successfully", cartView(s))
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	respond(c, s, http.StatusOK, "Cart count retrieved successfully", gin.H{
		"count": s.CartCount(),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.Get(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	// The merged line may not exceed stock
	inCart := s.Quantity(product.ID)
	if req.Quantity > product.Stock-inCart {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": stockMessage(product, inCart),
		})
		return
	}

	if err := s.AddToCart(c.Request.Context(), product, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	respond(c, s, http.StatusOK, "Item added to cart successfully", cartView(s))
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	productID := c.Param("id")
	if product, err := h.catalog.Get(productID); err == nil && *req.Quantity > product.Stock {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": stockMessage(product, 0),
		})
		return
	}

	s.UpdateQuantity(c.Request.Context(), productID, *req.Quantity)

	respond(c, s, http.StatusOK, "Cart item updated successfully", cartView(s))
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	s.RemoveFromCart(c.Request.Context(), c.Param("id"))

	respond(c, s, http.StatusOK, "Item removed from cart successfully", cartView(s))
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	s.ClearCart(c.Request.Context())

	respond(c, s, http.StatusOK, "Cart cleared successfully", cartView(s))
}

func stockMessage(product catalog.Product, inCart int) string {
	if inCart > 0 {
		return fmt.Sprintf("Only %d units of %s available, %d already in cart", product.Stock, product.Name, inCart)
	}
	return fmt.Sprintf("Only %d units of %s available", product.Stock, product.Name)
}

func cartView(s *store.Store) CartView {
	return newCartView(s.CartView())
}
