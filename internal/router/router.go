// internal/router/router.go
package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/outfit-backend/internal/config"
	"github.com/javajoker/outfit-backend/internal/handlers"
	"github.com/javajoker/outfit-backend/internal/middleware"
	"github.com/javajoker/outfit-backend/internal/outfit"
	"github.com/javajoker/outfit-backend/internal/services"
	"github.com/javajoker/outfit-backend/internal/utils"
)

// Initialize builds the HTTP engine. Background work started for it, such as
// rate limiter cleanup, stops when ctx is done.
func Initialize(ctx context.Context, db *gorm.DB, cfg *config.Config, completer outfit.Completer) *gin.Engine {
	// Initialize services
	engine := outfit.NewEngine(services.EngineConfigFrom(cfg.Outfit), completer, logrus.WithField("component", "outfit_engine"))
	catalogService := services.NewCatalogService(db, cfg)
	feedbackService := services.NewFeedbackService(db, cfg)
	outfitService := services.NewOutfitService(db, cfg, catalogService, feedbackService, engine)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalogService)
	outfitHandler := handlers.NewOutfitHandler(outfitService, feedbackService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(middleware.OptionalAuth())
	r.Use(middleware.GeneralRateLimit(ctx, cfg.RateLimit.GeneralPerSecond))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Outfit routes
		outfits := v1.Group("/outfits")
		{
			outfits.POST("/generate", middleware.GenerateRateLimit(ctx, cfg.RateLimit.GeneratePerMinute), outfitHandler.GenerateOutfits)
			outfits.POST("/feedback", outfitHandler.RecordFeedback)
			outfits.GET("/feedback", middleware.AuthRequired(), outfitHandler.GetFeedback)
			outfits.GET("/generations", middleware.AuthRequired(), middleware.AdminRequired(), outfitHandler.GetGenerations)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
		}

		// Category routes
		v1.GET("/categories", getCategoriesHandler)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/stats", adminHandler.GetDashboardStats)
			admin.GET("/analytics", adminHandler.GetAnalytics)
		}
	}

	return r
}

func getCategoriesHandler(c *gin.Context) {
	categories := []map[string]interface{}{
		{"id": string(outfit.CategoryTop), "name": "Tops", "icon": "shirt"},
		{"id": string(outfit.CategoryBottom), "name": "Bottoms", "icon": "pants"},
		{"id": string(outfit.CategoryShoes), "name": "Shoes", "icon": "shoe"},
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}
