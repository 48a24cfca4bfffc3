package places

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/config"
	"github.com/xyz-asif/spire/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	handler := NewHandler(NewRepository(db))
	authMiddleware := middleware.AuthFromConfig(cfg)

	places := router.Group("/places")
	{
		places.GET("", handler.List)
		places.GET("/saved", authMiddleware, handler.Saved)
		places.GET("/:id", handler.Get)
		places.POST("/:id/save", authMiddleware, handler.Save)
	}

	router.GET("/events", handler.Events)
}
