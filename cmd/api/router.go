package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/middleware"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	auth := middleware.AuthMiddleware(c.JWTManager, c.UserService.TokenVersion)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupAccountRoutes(v1, c, auth)
		setupProductRoutes(v1, c)
		setupCartRoutes(v1, c, auth)
		setupWishlistRoutes(v1, c, auth)
		setupOrderRoutes(v1, c, auth)
		setupPaymentRoutes(v1, c, auth)
		setupContactRoutes(v1, c)
		setupAdminRoutes(v1, c, auth)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
		auth.POST("/verify-otp", c.UserHandler.VerifyRegistration)
		auth.POST("/resend-verification", c.UserHandler.ResendVerification)
		auth.POST("/forgot-password", c.UserHandler.ForgotPassword)
		auth.POST("/reset-password", c.UserHandler.ResetPassword)
	}
}

// ========================================
// ACCOUNT ROUTES
// ========================================
func setupAccountRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	users := v1.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", c.UserHandler.Profile)
		users.PUT("/me", c.UserHandler.UpdateProfile)
		users.PUT("/change-password", c.UserHandler.ChangePassword)
		users.POST("/change-email/initiate", c.UserHandler.InitiateEmailChange)
		users.POST("/change-email/finalize", c.UserHandler.FinalizeEmailChange)
	}
}

// ========================================
// PRODUCT ROUTES
// ========================================
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.Browse)
		products.GET("/featured", c.ProductHandler.Featured)
		products.GET("/:id", c.ProductHandler.Get)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	cart := v1.Group("/cart")
	cart.Use(auth)
	{
		cart.GET("", c.CartHandler.Get)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PUT("/items/:productId", c.CartHandler.UpdateQuantity)
		cart.DELETE("/items/:productId", c.CartHandler.RemoveItem)
		cart.DELETE("", c.CartHandler.Clear)
	}
}

// ========================================
// WISHLIST ROUTES
// ========================================
func setupWishlistRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	wishlist := v1.Group("/wishlist")
	wishlist.Use(auth)
	{
		wishlist.GET("", c.WishlistHandler.List)
		wishlist.POST("/:productId", c.WishlistHandler.Add)
		wishlist.DELETE("/:productId", c.WishlistHandler.Remove)
		wishlist.POST("/:productId/move-to-cart", c.WishlistHandler.MoveToCart)
	}
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	orders := v1.Group("/orders")
	orders.Use(auth)
	{
		orders.GET("", c.OrderHandler.ListMine)
		orders.POST("/:id/cancel", c.OrderHandler.Cancel)
		orders.POST("/:id/return", c.OrderHandler.RequestReturn)
	}
}

// ========================================
// PAYMENT ROUTES
// ========================================
func setupPaymentRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	v1.POST("/checkout", auth, c.PaymentHandler.Checkout)

	payment := v1.Group("/payment")
	payment.Use(auth)
	{
		payment.GET("/success", c.PaymentHandler.Success)
		payment.GET("/cancel", c.PaymentHandler.Cancel)
	}
}

// ========================================
// CONTACT ROUTES
// ========================================
func setupContactRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/contact", c.ContactHandler.Submit)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	admin := v1.Group("/admin")
	admin.Use(auth, middleware.AdminMiddleware())
	{
		admin.GET("/users", c.UserHandler.ListAll)
		admin.PUT("/credentials", c.UserHandler.UpdateCredentials)

		admin.GET("/products", c.ProductHandler.ListAll)
		admin.POST("/products", c.ProductHandler.Create)
		admin.PUT("/products/:id", c.ProductHandler.Update)
		admin.DELETE("/products/:id", c.ProductHandler.Delete)

		admin.GET("/orders", c.OrderHandler.ListAll)
		admin.PATCH("/orders/:id/status", c.OrderHandler.UpdateStatus)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
