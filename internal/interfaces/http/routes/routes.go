// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/your-org/coffeebean-backend/internal/domain/branch"
	"github.com/your-org/coffeebean-backend/internal/domain/cart"
	"github.com/your-org/coffeebean-backend/internal/domain/catalog"
	"github.com/your-org/coffeebean-backend/internal/domain/checkout"
	"github.com/your-org/coffeebean-backend/internal/domain/favorites"
	"github.com/your-org/coffeebean-backend/internal/domain/order"
	"github.com/your-org/coffeebean-backend/internal/interfaces/http/handlers"
	"github.com/your-org/coffeebean-backend/internal/interfaces/http/middleware"
	"github.com/your-org/coffeebean-backend/internal/pkg/auth"
)

// Dependencies bundles the services the route tree is built from.
type Dependencies struct {
	Verifier        auth.Verifier
	CatalogService  *catalog.Service
	BranchService   *branch.Service
	CartService     *cart.Service
	CheckoutService *checkout.Service
	OrderService    *order.Service
	FavoriteService *favorites.Service
}

// SetupRoutes wires every route group under the given base group.
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	SetupCatalogRoutes(rg, deps)
	SetupBranchRoutes(rg, deps)
	SetupCartRoutes(rg, deps)
	SetupCheckoutRoutes(rg, deps)
	SetupFavoritesRoutes(rg, deps)
}

// SetupCatalogRoutes sets up product and promo routes
func SetupCatalogRoutes(rg *gin.RouterGroup, deps Dependencies) {
	catalogHandler := handlers.NewCatalogHandler(deps.CatalogService)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/search", catalogHandler.SearchProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}

	rg.GET("/promos", catalogHandler.GetPromos)
}

// SetupBranchRoutes sets up store branch routes
func SetupBranchRoutes(rg *gin.RouterGroup, deps Dependencies) {
	branchHandler := handlers.NewBranchHandler(deps.BranchService)

	branches := rg.Group("/branches")
	{
		branches.GET("", branchHandler.GetBranches)
		branches.GET("/nearest", branchHandler.GetNearestBranch)
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.CartService)

	carts := rg.Group("/cart")
	carts.Use(middleware.FirebaseAuth(deps.Verifier)) // All cart routes require authentication
	{
		carts.GET("", cartHandler.GetCart)
		carts.GET("/count", cartHandler.GetItemCount)
		carts.DELETE("", cartHandler.ClearCart)
		carts.POST("/lines", cartHandler.AddLine)
		carts.PUT("/lines/:lineId", cartHandler.UpdateLine)
		carts.DELETE("/lines/:lineId", cartHandler.RemoveLine)
	}
}

// SetupCheckoutRoutes sets up checkout and order history routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, deps Dependencies) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.CheckoutService)
	orderHandler := handlers.NewOrderHandler(deps.OrderService)

	co := rg.Group("/checkout")
	co.Use(middleware.FirebaseAuth(deps.Verifier))
	{
		co.GET("/quote", checkoutHandler.GetQuote)
		co.POST("/orders", checkoutHandler.PlaceOrder)
	}

	orders := rg.Group("/orders")
	orders.Use(middleware.FirebaseAuth(deps.Verifier))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
	}
}

// SetupFavoritesRoutes sets up favorite product routes
func SetupFavoritesRoutes(rg *gin.RouterGroup, deps Dependencies) {
	favoritesHandler := handlers.NewFavoritesHandler(deps.FavoriteService)

	favs := rg.Group("/favorites")
	favs.Use(middleware.FirebaseAuth(deps.Verifier))
	{
		favs.GET("", favoritesHandler.GetFavorites)
		favs.PUT("/:productId", favoritesHandler.AddFavorite)
		favs.DELETE("/:productId", favoritesHandler.RemoveFavorite)
	}
}
