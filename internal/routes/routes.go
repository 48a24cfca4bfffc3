package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/config"
	"github.com/xyz-asif/spire/internal/features/behaviors"
	"github.com/xyz-asif/spire/internal/features/content"
	"github.com/xyz-asif/spire/internal/features/places"
	"github.com/xyz-asif/spire/internal/features/recommendations"
	"github.com/xyz-asif/spire/internal/features/users"
	"github.com/xyz-asif/spire/internal/pkg/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRoutes mounts every feature under /api/v1. ctx bounds background
// housekeeping started by the routes.
func SetupRoutes(ctx context.Context, router *gin.Engine, db *mongo.Database, cfg *config.Config, service *recommendations.Service) {
	api := apiGroup(ctx, router, cfg)

	users.RegisterRoutes(api, db, cfg)
	content.RegisterRoutes(api, db, cfg)
	behaviors.RegisterRoutes(api, db, cfg)
	places.RegisterRoutes(api, db, cfg)
	recommendations.RegisterRoutes(ctx, api, db, cfg, service)
}

// apiGroup returns /api/v1 with the per-IP limit every route shares.
func apiGroup(ctx context.Context, router *gin.Engine, cfg *config.Config) *gin.RouterGroup {
	limiter := ratelimit.New(cfg.GlobalRateLimit, time.Minute)
	limiter.StartCleanup(ctx, 5*time.Minute)

	api := router.Group("/api/v1")
	api.Use(ratelimit.Middleware(limiter))
	return api
}
