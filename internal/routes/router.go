package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/config"
	"marketplace-backend/internal/delivery/http/handler"
	"marketplace-backend/internal/infrastructure/database/postgres"
	"marketplace-backend/internal/logger"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/token"
	accountUsecase "marketplace-backend/internal/usecase/account"
	catalogUsecase "marketplace-backend/internal/usecase/catalog"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
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

	issuer := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)
	blacklist := token.NewBlacklist()

	accountRepository := postgres.NewAccountRepository(db)
	accountService := accountUsecase.NewService(accountRepository, issuer, blacklist, cfg)
	accountHandler := handler.NewAccountHandler(accountService)

	productRepository := postgres.NewProductRepository(db)
	categoryRepository := postgres.NewCategoryRepository(db)
	catalogService := catalogUsecase.NewService(productRepository, categoryRepository)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	v1 := router.Group("/api/v1")
	{
		accountHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(issuer, blacklist))
		{
			accountHandler.RegisterProtectedRoutes(protected)

			vendor := protected.Group("")
			vendor.Use(middleware.VendorOrManagement())
			{
				catalogHandler.RegisterVendorRoutes(vendor)
			}

			management := protected.Group("")
			management.Use(middleware.ProductManagement())
			{
				catalogHandler.RegisterManagementRoutes(management)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				accountHandler.RegisterAdminRoutes(admin)
				catalogHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
