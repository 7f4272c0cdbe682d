package container

import (
	"context"
	"fmt"
	"time"

	"github.com/kodalibharatheswar/AnviBoutique/internal/config"
	infraCache "github.com/kodalibharatheswar/AnviBoutique/internal/infrastructure/cache"
	"github.com/kodalibharatheswar/AnviBoutique/internal/infrastructure/database"
	"github.com/kodalibharatheswar/AnviBoutique/internal/infrastructure/email"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/cache"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/jwt"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
	cartHandler "github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart/handler"
	cartRepo "github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart/repository"
	cartService "github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart/service"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/contact"
	contactHandler "github.com/kodalibharatheswar/AnviBoutique/internal/domains/contact/handler"
	contactService "github.com/kodalibharatheswar/AnviBoutique/internal/domains/contact/service"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/order"
	orderHandler "github.com/kodalibharatheswar/AnviBoutique/internal/domains/order/handler"
	orderRepo "github.com/kodalibharatheswar/AnviBoutique/internal/domains/order/repository"
	orderService "github.com/kodalibharatheswar/AnviBoutique/internal/domains/order/service"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/payment"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/payment/gateway"
	paymentHandler "github.com/kodalibharatheswar/AnviBoutique/internal/domains/payment/handler"
	paymentService "github.com/kodalibharatheswar/AnviBoutique/internal/domains/payment/service"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/product"
	productHandler "github.com/kodalibharatheswar/AnviBoutique/internal/domains/product/handler"
	productRepo "github.com/kodalibharatheswar/AnviBoutique/internal/domains/product/repository"
	productService "github.com/kodalibharatheswar/AnviBoutique/internal/domains/product/service"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/user"
	userHandler "github.com/kodalibharatheswar/AnviBoutique/internal/domains/user/handler"
	userRepo "github.com/kodalibharatheswar/AnviBoutique/internal/domains/user/repository"
	userService "github.com/kodalibharatheswar/AnviBoutique/internal/domains/user/service"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/wishlist"
	wishlistHandler "github.com/kodalibharatheswar/AnviBoutique/internal/domains/wishlist/handler"
	wishlistRepo "github.com/kodalibharatheswar/AnviBoutique/internal/domains/wishlist/repository"
	wishlistService "github.com/kodalibharatheswar/AnviBoutique/internal/domains/wishlist/service"
)

// Container holds the full dependency graph, built once at startup.
type Container struct {
	// ========================================
	// INFRASTRUCTURE
	// ========================================

	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Notifier   email.Notifier

	// ========================================
	// REPOSITORIES
	// ========================================

	UserRepo     user.Repository
	CustomerRepo user.CustomerRepository
	TokenRepo    user.TokenRepository
	ProductRepo  product.Repository
	CartRepo     cart.Repository
	WishlistRepo wishlist.Repository
	OrderRepo    order.Repository

	// ========================================
	// SERVICES
	// ========================================

	UserService     user.Service
	ProductService  product.Service
	CartService     cart.Service
	WishlistService wishlist.Service
	OrderService    order.Service
	PaymentService  payment.Service
	ContactService  contact.Service

	// ========================================
	// HANDLERS
	// ========================================

	UserHandler     *userHandler.UserHandler
	ProductHandler  *productHandler.ProductHandler
	CartHandler     *cartHandler.CartHandler
	WishlistHandler *wishlistHandler.WishlistHandler
	OrderHandler    *orderHandler.OrderHandler
	PaymentHandler  *paymentHandler.PaymentHandler
	ContactHandler  *contactHandler.ContactHandler
}

// NewContainer initializes the dependency graph in layer order: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	logger.Info("configuration loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.Bootstrap(ctx, cfg.Admin); err != nil {
		return nil, fmt.Errorf("bootstrap database: %w", err)
	}
	c.DB = db
	logger.Info("database connected", nil)

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		// Cached reads fall through to the database; only the checkout
		// lock degrades to row-lock-only protection.
		logger.Warn("redis unavailable, continuing without it", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	c.Notifier = email.NewSMTPNotifier(cfg.SMTP)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.CustomerRepo = userRepo.NewCustomerRepository(pool)
	c.TokenRepo = userRepo.NewTokenRepository(pool)
	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.CartRepo = cartRepo.NewPostgresRepository(pool)
	c.WishlistRepo = wishlistRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.CustomerRepo,
		c.TokenRepo,
		c.Notifier,
		c.JWTManager,
		time.Duration(c.Config.OTP.ExpiryMinutes)*time.Minute,
	)
	c.ProductService = productService.NewProductService(c.ProductRepo, c.Cache)
	c.CartService = cartService.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = wishlistService.NewWishlistService(c.WishlistRepo, c.ProductRepo, c.CartService)
	c.OrderService = orderService.NewOrderService(c.DB.Pool, c.OrderRepo, c.CartRepo)

	stripeGateway := gateway.NewStripeClient(gateway.StripeConfig{
		SecretKey: c.Config.Stripe.SecretKey,
		APIURL:    c.Config.Stripe.APIURL,
	})
	c.PaymentService = paymentService.NewCheckoutService(
		stripeGateway,
		c.CartRepo,
		c.UserRepo,
		c.OrderService,
		c.Cache,
		paymentService.Config{
			BaseURL:       c.Config.App.BaseURL,
			Currency:      c.Config.Stripe.Currency,
			VerifySession: c.Config.Stripe.VerifySession,
		},
	)
	c.ContactService = contactService.NewContactService(c.Notifier)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
	c.WishlistHandler = wishlistHandler.NewWishlistHandler(c.WishlistService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.PaymentService)
	c.ContactHandler = contactHandler.NewContactHandler(c.ContactService)
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("close redis", err)
		}
	}
}
