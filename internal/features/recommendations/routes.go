package recommendations

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/config"
	"github.com/xyz-asif/spire/internal/features/behaviors"
	"github.com/xyz-asif/spire/internal/features/content"
	"github.com/xyz-asif/spire/internal/features/places"
	"github.com/xyz-asif/spire/internal/features/users"
	"github.com/xyz-asif/spire/internal/middleware"
	"github.com/xyz-asif/spire/internal/pkg/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewServiceFromDB wires the service to the Mongo repositories
func NewServiceFromDB(db *mongo.Database) *Service {
	return NewService(
		users.NewRepository(db),
		content.NewRepository(db),
		behaviors.NewRepository(db),
		places.NewRepository(db),
		NewRepository(db),
	)
}

// RegisterRoutes mounts the recommendation endpoints. The generate limiter
// is swept until ctx ends.
func RegisterRoutes(ctx context.Context, router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, service *Service) {
	handler := NewHandler(NewRepository(db), places.NewRepository(db), service, cfg.RecommendationLimit)
	authMiddleware := middleware.AuthFromConfig(cfg)
	generateLimiter := ratelimit.New(cfg.GenerateRateLimit, time.Minute)
	generateLimiter.StartCleanup(ctx, 5*time.Minute)

	recs := router.Group("/recommendations")
	recs.Use(authMiddleware)
	{
		recs.GET("", handler.List)
		recs.POST("/generate", ratelimit.UserBasedMiddleware(generateLimiter), handler.Generate)
		recs.GET("/feedback", handler.ListFeedback)
		recs.POST("/feedback", handler.CreateFeedback)
		recs.POST("/:id/viewed", handler.MarkViewed)
		recs.POST("/:id/dismiss", handler.Dismiss)
	}

	router.POST("/users/me/preferences/refresh", authMiddleware, handler.RefreshPreferences)
}
