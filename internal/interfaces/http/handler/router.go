package handler

import (
	"net/http"

	"github.com/gaspacks/backend/internal/infrastructure/auth"
	"github.com/gaspacks/backend/internal/infrastructure/logger"
	"github.com/gaspacks/backend/internal/interfaces/http/dto"
	"github.com/gaspacks/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig carries everything route registration needs.
type RouterConfig struct {
	Cart       *CartHandler
	Checkout   *CheckoutHandler
	Dispensary *DispensaryHandler
	Products   *ProductHandler
	Identity   *IdentityHandler
	System     *SystemHandler

	Verifier *auth.TokenVerifier
	Statuses middleware.AccountStatusReader
	AdminKey string

	CORS         middleware.CORSConfig
	Tracing      middleware.TracingConfig
	MaxBodyBytes int64
}

// NewEngine builds the gin engine with the full middleware chain and
// every route. Unknown methods on known paths answer 405; unknown paths
// answer 404, both in the standard envelope.
func NewEngine(cfg RouterConfig, log *zap.Logger) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(middleware.TracingWithConfig(cfg.Tracing))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.DeviceID())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	engine.Use(middleware.Secure())
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}

	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed,
			dto.NewErrorResponse(dto.ErrCodeMethodNotAllowed, "Method not allowed"))
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound,
			dto.NewErrorResponse(dto.ErrCodeNotFound, "Route not found"))
	})

	engine.GET("/health", cfg.System.Health)
	engine.GET("/ready", cfg.System.Ready)

	api := engine.Group("/api/v1")

	adminOnly := middleware.RequireAdminKey(cfg.AdminKey)

	products := api.Group("/products")
	{
		products.GET("", cfg.Products.List)
		products.GET("/:id", cfg.Products.GetByID)
		products.POST("", adminOnly, cfg.Products.Create)
	}

	cart := api.Group("/cart")
	{
		cart.GET("", cfg.Cart.Get)
		cart.DELETE("", cfg.Cart.Clear)
		cart.POST("/items", cfg.Cart.AddItem)
		cart.PUT("/items", cfg.Cart.SetQuantity)
		cart.POST("/items/increment", cfg.Cart.IncrementItem)
		cart.POST("/items/decrement", cfg.Cart.DecrementItem)
		cart.POST("/items/remove", cfg.Cart.RemoveItem)
		cart.POST("/reconcile", middleware.JWTAuth(cfg.Verifier), cfg.Cart.Reconcile)

		cart.GET("/panel", cfg.Cart.PanelState)
		cart.POST("/panel/open", cfg.Cart.OpenPanel)
		cart.POST("/panel/close", cfg.Cart.ClosePanel)
		cart.POST("/panel/toggle", cfg.Cart.TogglePanel)
	}

	checkout := api.Group("/checkout")
	{
		checkout.POST("/quote", cfg.Checkout.Quote)
		checkout.POST("", cfg.Checkout.Submit)
	}

	dispensaries := api.Group("/dispensaries")
	{
		dispensaries.GET("/nearby", cfg.Dispensary.Nearby)
		dispensaries.GET("/search", cfg.Dispensary.Search)
		dispensaries.POST("/import", adminOnly, cfg.Dispensary.Import)
	}

	account := api.Group("/account", middleware.JWTAuth(cfg.Verifier))
	{
		account.GET("/status", cfg.Identity.Status)
		account.POST("/identity", middleware.RequireActiveAccount(cfg.Statuses), cfg.Identity.SubmitIdentity)
	}

	api.POST("/webhooks/identity", adminOnly, cfg.Identity.ProfileWebhook)

	return engine
}
