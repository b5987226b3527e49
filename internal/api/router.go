package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitstore/storefront/internal/api/handler"
	"github.com/fitstore/storefront/internal/api/middleware"
	"github.com/fitstore/storefront/internal/core/ports"
	"github.com/fitstore/storefront/internal/core/service"
	"github.com/fitstore/storefront/internal/infrastructure/config"
	storemongo "github.com/fitstore/storefront/internal/infrastructure/db/mongo"
	storeredis "github.com/fitstore/storefront/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	mail ports.MailEnqueuer,
	gateway ports.PaymentGateway,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowCredentials: true,
	}))
	e.Use(middleware.Session(cfg.AppSecret))

	// --- Dependencies ---
	userRepo := storemongo.NewUserRepository(db)
	itemRepo := storemongo.NewItemRepository(db)
	cartRepo := storemongo.NewCartRepository(db)
	orderRepo := storemongo.NewOrderRepository(db)
	throttle := storeredis.NewResetThrottle(rdb)

	authService := service.NewAuthService(userRepo, mail, throttle, cfg.AppSecret, 0, log)
	userService := service.NewUserService(userRepo, log)
	itemService := service.NewItemService(itemRepo, userRepo, log)
	cartService := service.NewCartService(cartRepo, itemRepo, log)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, userRepo, gateway, mail, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(checkoutService)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/signin", authHandler.Signin)
	e.POST("/auth/signout", authHandler.Signout)
	e.POST("/auth/request-reset", authHandler.RequestReset)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// --- Item routes (reads are public) ---
	e.GET("/items", itemHandler.List)
	e.GET("/items/search", itemHandler.Search)
	e.GET("/items/:id", itemHandler.Get)
	e.POST("/items", itemHandler.Create)
	e.PATCH("/items/:id", itemHandler.Update)
	e.DELETE("/items/:id", itemHandler.Delete)

	// --- Authenticated routes ---
	authed := e.Group("", middleware.RequireSession())
	authed.GET("/me", userHandler.Me)
	authed.POST("/users/:id/permissions", userHandler.UpdatePermissions)
	authed.GET("/cart", cartHandler.Get)
	authed.POST("/cart", cartHandler.Add)
	authed.DELETE("/cart/:id", cartHandler.Remove)
	authed.GET("/orders", orderHandler.List)
	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders/:id", orderHandler.Get)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e
}
