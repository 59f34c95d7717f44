// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/domain/cart"
	"github.com/your-org/storefront-cart/internal/domain/catalog"
	"github.com/your-org/storefront-cart/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-cart/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-cart/internal/pkg/session"
	"gorm.io/gorm"
)

// Dependencies bundles what the route handlers need
type Dependencies struct {
	DB       *gorm.DB
	Sessions *cart.Manager
	Config   *config.Config
	Logger   *logrus.Logger
	Tokens   *session.TokenManager
}

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	catalogService := catalog.NewService(deps.DB, deps.Logger)

	setupProductRoutes(rg, catalogService, deps)
	setupCartRoutes(rg, catalogService, deps)
}

// setupProductRoutes sets up catalog listing routes
func setupProductRoutes(rg *gin.RouterGroup, catalogService *catalog.Service, deps Dependencies) {
	productHandler := handlers.NewProductHandler(catalogService, deps.Logger)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// setupCartRoutes sets up the cart operation surface. Every cart route runs
// behind the shopper session middleware so a session id always exists.
func setupCartRoutes(rg *gin.RouterGroup, catalogService *catalog.Service, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Sessions, catalogService, deps.Logger)

	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.ShopperSession(deps.Config, deps.Tokens))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/open", cartHandler.OpenCart)
		cartGroup.POST("/close", cartHandler.CloseCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}
