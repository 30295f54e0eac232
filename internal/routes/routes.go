package routes

import (
	"github.com/gin-gonic/gin"

	"thescent/internal/handlers"
	"thescent/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	cartHandler *handlers.CartHandler,
	wishlistHandler *handlers.WishlistHandler,
	reviewHandler *handlers.ReviewHandler,
	addressHandler *handlers.AddressHandler,
	orderHandler *handlers.OrderHandler,
	engagementHandler *handlers.EngagementHandler,
) *gin.Engine {
	api := r.Group("/api")

	// ---- auth
	// Credential endpoints are throttled so the account lockout cannot be
	// probed at wire speed.
	api.POST("/register", middleware.RateLimit(2), authHandler.Register)
	api.POST("/login", middleware.RateLimit(2), authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/user", authHandler.CurrentUser)

	// ---- catalog (public)
	api.GET("/categories", catalogHandler.ListCategories)
	api.GET("/categories/:slug", catalogHandler.GetCategory)

	products := api.Group("/products")
	{
		products.GET("", catalogHandler.ListProducts)
		products.GET("/featured", catalogHandler.ListFeatured)
		products.GET("/category/:categoryId", catalogHandler.ListByCategory)
		products.GET("/:slug", catalogHandler.GetProduct)
		products.GET("/:slug/reviews", reviewHandler.ListByProduct)
	}

	api.GET("/scent-profiles", catalogHandler.ListScentProfiles)
	api.GET("/moods", catalogHandler.ListMoods)
	api.GET("/lifestyle-items", catalogHandler.ListLifestyleItems)
	api.POST("/scent-finder", catalogHandler.ScentFinder)

	// ---- engagement (public, contact attaches user id when present)
	api.POST("/newsletter", engagementHandler.Subscribe)
	api.POST("/contact", engagementHandler.Contact)

	// ---- protected
	authed := api.Group("")
	authed.Use(middleware.RequireAuth())

	cart := authed.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.UpdateItem)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
	}

	wishlist := authed.Group("/wishlist")
	{
		wishlist.GET("", wishlistHandler.List)
		wishlist.POST("", wishlistHandler.Add)
		wishlist.DELETE("/:productId", wishlistHandler.Remove)
	}

	authed.POST("/reviews", reviewHandler.Create)

	addresses := authed.Group("/addresses")
	{
		addresses.GET("", addressHandler.List)
		addresses.POST("", addressHandler.Create)
		addresses.PUT("/:id", addressHandler.Update)
		addresses.DELETE("/:id", addressHandler.Delete)
	}

	orders := authed.Group("/orders")
	{
		orders.POST("", orderHandler.Create)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.GET("/:id/invoice", orderHandler.Invoice)
	}

	return r
}
