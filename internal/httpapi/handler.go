package httpapi

import (
	"net/http"

	"grocery-be/internal/address"
	"grocery-be/internal/auth"
	"grocery-be/internal/cart"
	"grocery-be/internal/category"
	"grocery-be/internal/config"
	"grocery-be/internal/logger"
	"grocery-be/internal/metrics"
	"grocery-be/internal/middleware"
	"grocery-be/internal/order"
	"grocery-be/internal/product"
	"grocery-be/internal/user"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Handler groups the services the REST surface is built on.
type Handler struct {
	cfg *config.Config

	products   product.Service
	categories category.Service
	carts      cart.Service
	addresses  address.Service
	orders     order.Service
	users      user.Service
	verifier   auth.TokenVerifier

	metrics  *metrics.Store
	validate *validatorv10.Validate
}

func NewHandler(
	cfg *config.Config,
	products product.Service,
	categories category.Service,
	carts cart.Service,
	addresses address.Service,
	orders order.Service,
	users user.Service,
	verifier auth.TokenVerifier,
	m *metrics.Store,
) *Handler {
	return &Handler{
		cfg:        cfg,
		products:   products,
		categories: categories,
		carts:      carts,
		addresses:  addresses,
		orders:     orders,
		users:      users,
		verifier:   verifier,
		metrics:    m,
		validate:   validatorv10.New(),
	}
}

// NewRouter builds the full route tree.
func (h *Handler) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.AccessLogMiddleware())
	r.Use(h.metrics.Middleware())
	r.Use(middleware.Authenticate(h.cfg.JWTSecret))

	limiter := middleware.NewLimiter()
	r.Use(limiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/api/v1")

	// Public catalog and service-area surface.
	v1.GET("/products", h.listProducts)
	v1.GET("/products/:id", h.getProduct)
	v1.GET("/categories", h.listCategories)
	v1.GET("/categories/:id", h.getCategory)
	v1.GET("/postcodes/:postcode/verify", h.verifyPostcode)
	v1.POST("/auth/login", h.login)

	// Authenticated surface.
	authed := v1.Group("", middleware.RequireAuth())
	authed.GET("/me", h.me)
	authed.GET("/cart", h.getCart)
	authed.POST("/cart/items", h.addToCart)
	authed.PUT("/cart/items/:productID", h.updateCartItem)
	authed.DELETE("/cart/items/:productID", h.removeCartItem)
	authed.DELETE("/cart", h.clearCart)
	authed.POST("/cart/sync", h.syncCart)

	authed.GET("/addresses", h.listAddresses)
	authed.POST("/addresses", h.createAddress)
	authed.GET("/addresses/:id", h.getAddress)
	authed.PUT("/addresses/:id", h.updateAddress)
	authed.DELETE("/addresses/:id", h.deleteAddress)

	authed.POST("/checkout", h.checkout)
	authed.GET("/orders", h.listOrders)
	authed.GET("/orders/:id", h.getOrder)
	authed.GET("/orders/:id/invoice", h.getInvoice)

	// Admin surface.
	admin := v1.Group("/admin", middleware.RequireAdminKey(h.cfg.AdminKeyHash))
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.POST("/categories", h.createCategory)
	admin.GET("/postcodes", h.listPostcodes)
	admin.POST("/postcodes", h.addPostcode)
	admin.DELETE("/postcodes/:id", h.removePostcode)
	admin.GET("/orders", h.adminListOrders)
	admin.GET("/orders/:id", h.adminGetOrder)
	admin.PUT("/orders/:id/status", h.updateOrderStatus)

	return r
}
