package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
	"pasarumkm/internal/middleware"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Order    *OrderHandler
	Merchant *MerchantHandler
	Address  *AddressHandler
	Favorite *FavoriteHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers, users domain.UserUseCase, logger *logrus.Logger) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public surface: auth, the merchant directory and the session cart.
	router.POST("/auth/register", h.Auth.Register)
	router.POST("/auth/login", h.Auth.Login)
	router.POST("/auth/logout", h.Auth.Logout)

	router.GET("/umkm", h.Catalog.ListMerchants)
	router.GET("/umkm/:slug", h.Catalog.GetMerchant)
	router.GET("/umkm/:slug/products", h.Catalog.ListProducts)

	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", h.Cart.GetCart)
		cartGroup.DELETE("", h.Cart.ClearCart)
		cartGroup.POST("/items", h.Cart.AddItem)
		cartGroup.PATCH("/items/:itemId", h.Cart.SetQuantity)
		cartGroup.DELETE("/items/:itemId", h.Cart.RemoveItem)
	}

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(users, logger))
	{
		protected.GET("/profile", h.Auth.GetProfile)
		protected.PATCH("/profile", h.Auth.UpdateProfile)

		protected.POST("/checkout", h.Checkout.Checkout)

		orderGroup := protected.Group("/orders")
		{
			orderGroup.GET("", h.Order.ListOrders)
			orderGroup.GET("/:id", h.Order.GetOrder)
			orderGroup.GET("/:id/events", h.Order.StreamOrderEvents)
			orderGroup.POST("/:id/pay", h.Checkout.ConfirmPayment)
		}

		addressGroup := protected.Group("/addresses")
		{
			addressGroup.POST("", h.Address.CreateAddress)
			addressGroup.GET("", h.Address.ListAddresses)
			addressGroup.PATCH("/:id", h.Address.UpdateAddress)
			addressGroup.DELETE("/:id", h.Address.DeleteAddress)
			addressGroup.POST("/:id/primary", h.Address.SetPrimary)
		}

		favoriteGroup := protected.Group("/favorites")
		{
			favoriteGroup.GET("", h.Favorite.ListFavorites)
			favoriteGroup.GET("/:merchantId", h.Favorite.GetFavoriteStatus)
			favoriteGroup.PUT("/:merchantId", h.Favorite.AddFavorite)
			favoriteGroup.DELETE("/:merchantId", h.Favorite.RemoveFavorite)
		}

		// Registration upgrades the account; the rest of the dashboard
		// requires the mitra flag.
		protected.POST("/mitra/register", h.Merchant.RegisterMerchant)

		mitraGroup := protected.Group("/mitra")
		mitraGroup.Use(middleware.MitraOnly(logger))
		{
			mitraGroup.GET("/store", h.Merchant.GetOwnStore)
			mitraGroup.PATCH("/store", h.Merchant.UpdateStoreSettings)

			mitraGroup.POST("/products", h.Merchant.CreateProduct)
			mitraGroup.GET("/products", h.Merchant.ListProducts)
			mitraGroup.PATCH("/products/:id", h.Merchant.UpdateProduct)
			mitraGroup.DELETE("/products/:id", h.Merchant.DeleteProduct)

			mitraGroup.GET("/orders", h.Merchant.ListOrders)
			mitraGroup.PATCH("/orders/:id/status", h.Merchant.UpdateOrderStatus)
			mitraGroup.POST("/orders/:id/payment", h.Merchant.MarkPaymentReceived)
		}
	}
}
