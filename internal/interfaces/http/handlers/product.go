// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler creates a new product handler
func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(c.Query("category"))
	products := newProductViews(h.catalog.List(category), s.AccountType())

	respond(c, s, http.StatusOK, "Products retrieved successfully", gin.H{
		"products": products,
		"category": category,
		"total":    len(products),
	})
}

// GetFeaturedProducts handles GET /products/featured
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	respond(c, s, http.StatusOK, "Featured products retrieved successfully",
		newProductViews(h.catalog.Featured(), s.AccountType()))
}

// GetCategories handles GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    h.catalog.Categories(),
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	product, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	accountType := s.AccountType()
	related := make([]ProductView, 0)
	for _, p := range h.catalog.List(product.Category) {
		if p.ID != product.ID {
			related = append(related, newProductView(p, accountType))
		}
	}

	respond(c, s, http.StatusOK, "Product retrieved successfully", gin.H{
		"product":      newProductView(product, accountType),
		"account_type": accountType,
		"related":      related,
	})
}
