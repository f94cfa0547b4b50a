package routes

import (
	"polo_storefront/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes monte l'API de la boutique. device authentifie l'appareil,
// loginLimit protège la connexion contre les essais répétés.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, device, loginLimit gin.HandlerFunc) {
	api := r.Group("/api")

	// Device
	api.POST("/device", h.RegisterDevice)

	shop := api.Group("", device)

	// Catalog
	shop.GET("/products", h.ListProducts)
	shop.GET("/products/featured", h.FeaturedProducts)
	shop.GET("/products/:id", h.GetProduct)
	shop.GET("/categories", h.ListCategories)
	shop.GET("/search/history", h.SearchHistory)
	shop.DELETE("/search/history", h.ClearSearchHistory)

	// Cart
	shop.GET("/cart", h.GetCart)
	shop.POST("/cart/add", h.AddToCart)
	shop.PUT("/cart/:productId", h.UpdateCartItem)
	shop.DELETE("/cart/:productId", h.RemoveCartItem)
	shop.DELETE("/cart", h.ClearCart)

	// Favorites
	shop.GET("/favorites", h.ListFavorites)
	shop.POST("/favorites/:productId/toggle", h.ToggleFavorite)

	// Auth
	shop.POST("/auth/register", h.Register)
	shop.POST("/auth/login", loginLimit, h.Login)
	shop.POST("/auth/logout", h.Logout)
	shop.GET("/auth/me", h.Me)
	shop.PUT("/auth/me", h.UpdateProfile)

	// Checkout
	shop.POST("/checkout/start", h.StartCheckout)
	shop.GET("/checkout", h.GetCheckout)
	shop.PUT("/checkout", h.UpdateCheckout)
	shop.POST("/checkout/next", h.NextStep)
	shop.POST("/checkout/back", h.PreviousStep)
	shop.POST("/checkout/submit", h.SubmitCheckout)

	// Orders
	shop.GET("/orders", h.ListOrders)
	shop.GET("/orders/:id/whatsapp.png", h.OrderWhatsAppQR)

	// Preferences & UI
	shop.GET("/preferences", h.GetPreferences)
	shop.PUT("/preferences", h.UpdatePreferences)
	shop.POST("/navigate/:page", h.Navigate)
	shop.GET("/toast", h.GetToast)
	shop.DELETE("/toast", h.DismissToast)
}
