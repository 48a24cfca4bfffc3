package users

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/config"
	"github.com/xyz-asif/spire/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	handler := NewHandler(NewRepository(db))
	authMiddleware := middleware.AuthFromConfig(cfg)

	users := router.Group("/users")
	{
		users.GET("/me", authMiddleware, handler.GetMe)
		users.GET("/username/:username", handler.GetUserByUsername)
	}
}
