// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/shineline/storefront-backend/internal/cartstore"
	"github.com/shineline/storefront-backend/internal/catalog"
	"github.com/shineline/storefront-backend/internal/config"
	"github.com/shineline/storefront-backend/internal/handlers"
	"github.com/shineline/storefront-backend/internal/middleware"
	"github.com/shineline/storefront-backend/internal/services"
	"github.com/shineline/storefront-backend/internal/session"
	"github.com/shineline/storefront-backend/internal/utils"
)

func Initialize(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *gin.Engine {
	// Initialize stores and services
	guestStore := cartstore.NewGuestStore(redisClient, time.Duration(cfg.Cart.GuestCartTTL)*time.Hour)
	accountStore := cartstore.NewAccountStore(db)
	catalogService := catalog.NewService(db)

	cartService := services.NewCartService(guestStore, accountStore, catalogService, cartstore.AddMode(cfg.Cart.AddMode))
	validationService := services.NewValidationService(accountStore, catalogService)
	observer := session.NewObserver(cartService)

	// Initialize handlers
	cartHandler := handlers.NewCartHandler(cartService)
	validationHandler := handlers.NewValidationHandler(validationService)
	sessionHandler := handlers.NewSessionHandler(observer)
	productHandler := handlers.NewProductHandler(catalogService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Catalog routes (read-only)
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
		}

		// Cart routes serve guests and account holders alike; the session
		// state picked up by OptionalAuth selects the backing store.
		cart := v1.Group("/cart")
		cart.Use(middleware.OptionalAuth())
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateQuantity)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
			cart.DELETE("", cartHandler.ClearCart)

			cart.POST("/validate", middleware.AuthRequired(), validationHandler.ValidateCart)
		}

		// Auth transition events from the external auth provider's client
		sessionRoutes := v1.Group("/session")
		sessionRoutes.Use(middleware.SessionRateLimit(), middleware.OptionalAuth())
		{
			sessionRoutes.POST("/events", sessionHandler.HandleEvent)
		}
	}

	return r
}
