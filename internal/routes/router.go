package routes

import (
	"context"
	"net/http"

	"food-delivery-backend/internal/config"
	"food-delivery-backend/internal/delivery/http/handler"
	"food-delivery-backend/internal/infrastructure/database/postgres"
	"food-delivery-backend/internal/logger"
	"food-delivery-backend/internal/metrics"
	"food-delivery-backend/internal/middleware"
	"food-delivery-backend/internal/usecase/auth"
	"food-delivery-backend/internal/usecase/order"
	"food-delivery-backend/internal/usecase/restaurant"
	"food-delivery-backend/internal/usecase/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes wires repositories, services and handlers. Background work
// (token cleanup, rate limiter eviction) runs until ctx is cancelled.
func SetupRoutes(ctx context.Context, cfg *config.Config, db *postgres.DB, sender auth.EmailSender) *gin.Engine {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// order: recovery, request ID, metrics, logging, security headers, CORS, request size limit, rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.Server.IsProduction()))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxRequestBytes))
	if cfg.RateLimit.GeneralRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst)
		go limiter.Run(ctx)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	userRepository := postgres.NewUserRepository(db)
	restaurantRepository := postgres.NewRestaurantRepository(db)
	menuRepository := postgres.NewMenuRepository(db)
	orderRepository := postgres.NewOrderRepository(db)

	authService := auth.NewService(userRepository, sender, cfg)
	userService := user.NewService(userRepository)
	restaurantService := restaurant.NewService(restaurantRepository, menuRepository, orderRepository)
	orderService := order.NewService(orderRepository, restaurantRepository, menuRepository)

	if cfg.App.TokenCleanupInterval > 0 {
		go authService.StartTokenCleanupJob(ctx, cfg.App.TokenCleanupInterval)
	}

	requireSession := middleware.AuthMiddleware(cfg)
	requireVerified := middleware.VerifiedEmailMiddleware(userRepository)

	root := router.Group("")
	{
		handler.NewAuthHandler(authService).RegisterRoutes(root, requireSession)
		handler.NewRestaurantHandler(restaurantService).RegisterRoutes(root, requireSession)
		handler.NewOrderHandler(orderService).RegisterRoutes(root, requireSession, requireVerified)

		protected := root.Group("", requireSession)
		handler.NewUserHandler(userService).RegisterRoutes(protected)
	}

	logger.Info("All routes initialized")
	return router
}
