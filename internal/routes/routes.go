package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"mars_shop/internal/admin"
	"mars_shop/internal/auth"
	"mars_shop/internal/cart"
	"mars_shop/internal/catalog"
	adminHandlers "mars_shop/internal/handlers/admin"
	"mars_shop/internal/handlers/product"
	"mars_shop/internal/handlers/user"
	"mars_shop/internal/middleware"
	"mars_shop/internal/orders"
	"mars_shop/internal/services"
)

// Deps regroupe les services construits dans main. Redis, Images et
// Events peuvent être nil.
type Deps struct {
	Auth         *auth.Service
	Catalog      *catalog.Service
	Carts        *cart.Service
	Orders       *orders.Service
	Admin        *admin.Service
	Images       *services.ImageStore
	Events       user.CartEvents
	Redis        *redis.Client
	Sessions     sessions.Store
	CookieSecure bool
	CORSOrigins  []string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	products := product.New(d.Catalog, d.Images)
	users := user.New(user.Deps{
		Auth:           d.Auth,
		Carts:          d.Carts,
		Orders:         d.Orders,
		Events:         d.Events,
		CookieSecure:   d.CookieSecure,
		AllowedOrigins: d.CORSOrigins,
	})
	back := adminHandlers.New(d.Admin)

	requireAuth := middleware.AuthRequired(d.Auth)
	adminOnly := []gin.HandlerFunc{requireAuth, middleware.RequireAdmin, middleware.AuditAdminActions()}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(
		middleware.Sessions(d.Sessions),
		middleware.OptionalAuth(d.Auth),
		middleware.APIRateLimit(d.Redis),
	)

	// Auth
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", middleware.RegisterRateLimit(d.Redis), users.Register)
		authGroup.POST("/login", middleware.LoginRateLimit(d.Redis), users.Login)
		authGroup.POST("/logout", requireAuth, users.Logout)
		authGroup.GET("/me", requireAuth, users.Me)
		authGroup.PUT("/me", requireAuth, users.UpdateMe)
	}

	// Catalogue
	api.GET("/products", products.ListProducts)
	api.GET("/products/:id", products.GetProduct)
	api.POST("/products", append(adminOnly, products.CreateProduct)...)
	api.PUT("/products/:id", append(adminOnly, products.UpdateProduct)...)
	api.DELETE("/products/:id", append(adminOnly, products.DeleteProduct)...)

	api.GET("/categories", products.ListCategories)
	api.POST("/categories", append(adminOnly, products.CreateCategory)...)
	api.PUT("/categories/:id", append(adminOnly, products.UpdateCategory)...)
	api.DELETE("/categories/:id", append(adminOnly, products.DeleteCategory)...)

	// Panier (utilisateur connecté ou invité)
	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", users.GetCart)
		cartGroup.GET("/ws", users.CartWebSocket)
		cartGroup.POST("", middleware.CartRateLimit(d.Redis), users.AddToCart)
		cartGroup.DELETE("", users.ClearCart)
		cartGroup.PUT("/:productId", middleware.CartRateLimit(d.Redis), users.UpdateCartItem)
		cartGroup.DELETE("/:productId", users.RemoveCartItem)
	}

	// Commandes
	orderGroup := api.Group("/orders")
	{
		orderGroup.POST("/checkout", middleware.CheckoutRateLimit(d.Redis), users.Checkout)
		orderGroup.POST("", middleware.CheckoutRateLimit(d.Redis), users.PlaceOrder)
		orderGroup.GET("", requireAuth, users.ListOrders)
		orderGroup.GET("/:id", requireAuth, users.GetOrder)
		orderGroup.GET("/:id/qrcode", requireAuth, users.OrderQRCode)
	}

	// Traductions
	api.GET("/i18n/languages", user.Languages)
	api.PUT("/i18n/language", user.SetLanguage)
	api.GET("/i18n/:lang", user.Dictionary)

	// Back-office
	adminGroup := api.Group("/admin", adminOnly...)
	{
		adminGroup.GET("/dashboard", back.Dashboard)
		adminGroup.GET("/orders", back.ListOrders)
		adminGroup.POST("/orders/:id/complete", back.CompleteOrder)
		adminGroup.POST("/orders/:id/cancel", back.CancelOrder)
		adminGroup.PUT("/orders/:id", back.UpdateOrder)
		adminGroup.GET("/export/orders", back.ExportOrders)
		adminGroup.GET("/export/products", back.ExportProducts)
		adminGroup.POST("/uploads", products.UploadImage)
	}
}
