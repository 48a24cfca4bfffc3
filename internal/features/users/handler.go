package users

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/middleware"
	"github.com/xyz-asif/spire/internal/pkg/response"
	apperrors "github.com/xyz-asif/spire/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the subset of Repository used by the handler
type Store interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// GetMe godoc
// @Summary Get current user
// @Description Get the authenticated user's profile including favorite categories
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	user, err := h.store.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "User not found", "USER_NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to load user")
		return
	}

	response.Success(c, user)
}

// GetUserByUsername godoc
// @Summary Get user profile by username
// @Description Get public profile of a user by their username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} response.SuccessResponse{data=PublicProfileResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /users/username/{username} [get]
func (h *Handler) GetUserByUsername(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "Username is required", "INVALID_USERNAME")
		return
	}

	user, err := h.store.GetByUsername(c.Request.Context(), username)
	if err != nil {
		response.FromError(c, err, "User not found")
		return
	}

	response.Success(c, user.ToPublicProfile())
}
