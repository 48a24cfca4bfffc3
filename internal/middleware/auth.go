package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/config"
	"github.com/xyz-asif/spire/internal/pkg/jwt"
	"github.com/xyz-asif/spire/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ctxUserID   = "userID"
	ctxUsername = "username"
)

// Auth validates the bearer token and stores the caller identity on the context
func Auth(cfg *jwt.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		// Support both "Bearer <token>" (case-insensitive) and raw token in header
		fields := strings.Fields(authHeader)
		tokenString := authHeader
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			tokenString = fields[1]
		}

		claims, err := jwt.ValidateToken(tokenString, cfg)
		if err != nil {
			response.Unauthorized(c, "Invalid token", "AUTH_FAILED")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// OptionalAuth sets the caller identity when a valid token is present and
// lets anonymous requests through otherwise
func OptionalAuth(cfg *jwt.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := strings.Fields(c.GetHeader("Authorization"))
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			if claims, err := jwt.ValidateToken(fields[1], cfg); err == nil {
				c.Set(ctxUserID, claims.UserID)
				c.Set(ctxUsername, claims.Username)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or "" outside Auth
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// CurrentUserObjectID parses the authenticated user id as an ObjectID
func CurrentUserObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(CurrentUserID(c))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// AuthFromConfig builds Auth from the application config
func AuthFromConfig(cfg *config.Config) gin.HandlerFunc {
	return Auth(jwt.DefaultConfig(cfg.JWTSecret, cfg.JWTExpire))
}

// OptionalAuthFromConfig builds OptionalAuth from the application config
func OptionalAuthFromConfig(cfg *config.Config) gin.HandlerFunc {
	return OptionalAuth(jwt.DefaultConfig(cfg.JWTSecret, cfg.JWTExpire))
}
