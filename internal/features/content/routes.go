package content

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/config"
	"github.com/xyz-asif/spire/internal/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers post and board routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	handler := NewHandler(NewRepository(db))
	authMiddleware := middleware.AuthFromConfig(cfg)
	optionalAuth := middleware.OptionalAuthFromConfig(cfg)

	posts := router.Group("/posts")
	{
		posts.POST("", authMiddleware, handler.CreatePost)
		posts.GET("/:id", handler.GetPost)
		posts.POST("/:id/like", authMiddleware, handler.LikePost)
		posts.DELETE("/:id/like", authMiddleware, handler.UnlikePost)
	}

	boards := router.Group("/boards")
	{
		boards.POST("", authMiddleware, handler.CreateBoard)
		boards.GET("", optionalAuth, handler.ListBoards)
		boards.POST("/:id/posts", authMiddleware, handler.AddPostToBoard)
	}
}
