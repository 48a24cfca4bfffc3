package behaviors

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/middleware"
	"github.com/xyz-asif/spire/internal/pkg/pagination"
	"github.com/xyz-asif/spire/internal/pkg/response"
	"github.com/xyz-asif/spire/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the subset of Repository used by the handler
type Store interface {
	Create(ctx context.Context, b *Behavior) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]Behavior, int64, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Track godoc
// @Summary Track interaction
// @Description Record a view, save, share or like for the recommendation engine
// @Tags behaviors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TrackRequest true "Interaction"
// @Success 201 {object} response.SuccessResponse{data=Behavior}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /behaviors [post]
func (h *Handler) Track(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.Message(err))
		return
	}

	contentID, err := primitive.ObjectIDFromHex(req.ContentID)
	if err != nil {
		response.BadRequest(c, "Invalid content ID format", "INVALID_ID")
		return
	}

	behavior := &Behavior{
		UserID:          userID,
		InteractionType: req.InteractionType,
		ContentType:     req.ContentType,
		ContentID:       contentID,
		Tags:            validator.NormalizeTags(req.Tags),
	}
	if err := h.store.Create(c.Request.Context(), behavior); err != nil {
		response.DatabaseError(c, "Failed to record behavior")
		return
	}

	response.Created(c, behavior)
}

// List godoc
// @Summary List own interactions
// @Tags behaviors
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.PaginatedResponse{data=[]Behavior}
// @Router /behaviors [get]
func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	page := pagination.FromQuery(c)
	items, total, err := h.store.ListByUser(c.Request.Context(), userID, page.Skip(), int64(page.Limit))
	if err != nil {
		response.DatabaseError(c, "Failed to list behaviors")
		return
	}

	response.Paginated(c, items, total, page.Limit, page.Page)
}
