// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/analytics"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// Dependencies holds what the route handlers need
type Dependencies struct {
	Catalog   *catalog.Catalog
	Stores    middleware.StoreProvider
	Receipts  handlers.ReceiptRenderer
	Analytics *analytics.Service
}

// SetupProductRoutes sets up catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, deps Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Catalog)

	rg.GET("/categories", productHandler.GetCategories)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// SetupAccountRoutes sets up account type routes
func SetupAccountRoutes(rg *gin.RouterGroup) {
	accountHandler := handlers.NewAccountHandler()

	account := rg.Group("/account")
	{
		account.GET("", accountHandler.GetAccount)
		account.PUT("", accountHandler.UpdateAccount)
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Catalog)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

// SetupCheckoutRoutes sets up checkout routes
func SetupCheckoutRoutes(rg *gin.RouterGroup) {
	checkoutHandler := handlers.NewCheckoutHandler()

	rg.POST("/checkout", checkoutHandler.Checkout)
}

// SetupOrderRoutes sets up order routes
func SetupOrderRoutes(rg *gin.RouterGroup, deps Dependencies) {
	orderHandler := handlers.NewOrderHandler(deps.Receipts)

	orders := rg.Group("/orders")
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/tracking", orderHandler.TrackOrder)
		orders.GET("/:id/receipt", orderHandler.GetReceipt)
	}
}

// SetupAdminRoutes sets up admin routes
func SetupAdminRoutes(rg *gin.RouterGroup, deps Dependencies) {
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics)

	admin := rg.Group("/admin")
	{
		admin.GET("/dashboard", analyticsHandler.GetDashboard)
		admin.PUT("/orders/:id/status", analyticsHandler.UpdateOrderStatus)
	}
}

// SetupRoutes sets up all API routes behind the session middleware
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	rg.Use(middleware.Session(deps.Stores))

	SetupProductRoutes(rg, deps)
	SetupAccountRoutes(rg)
	SetupCartRoutes(rg, deps)
	SetupCheckoutRoutes(rg)
	SetupOrderRoutes(rg, deps)
	SetupAdminRoutes(rg, deps)
}
