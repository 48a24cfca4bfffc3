package behaviors

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/config"
	"github.com/xyz-asif/spire/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	handler := NewHandler(NewRepository(db))

	behaviors := router.Group("/behaviors", middleware.AuthFromConfig(cfg))
	{
		behaviors.POST("", handler.Track)
		behaviors.GET("", handler.List)
	}
}
