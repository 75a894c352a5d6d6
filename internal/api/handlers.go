package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	DB      *gorm.DB
	Auth    service.IAuthService
	Recipes service.IRecipeService
	Limits  SimilarLimits
	// WriteLimiter rate limits catalog writes; nil when Redis is unavailable.
	WriteLimiter *middleware.RateLimiter
}

// HealthCheck returns the health status of the API and its database
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := database.Ping(ctx, db); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unhealthy",
					"error":  "database unreachable",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Recipe catalog API is running",
			"version": "v1.0.0",
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck(deps.DB))
	router.GET("/api/health", HealthCheck(deps.DB))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	NewAuthHandler(deps.Auth).RegisterRoutes(v1)
	NewRecipeHandler(deps.Recipes, deps.Auth, deps.Limits, deps.WriteLimiter).RegisterRoutes(v1)
}
