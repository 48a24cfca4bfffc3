package places

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/middleware"
	"github.com/xyz-asif/spire/internal/pkg/pagination"
	"github.com/xyz-asif/spire/internal/pkg/response"
	"github.com/xyz-asif/spire/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the subset of Repository used by the handler
type Store interface {
	List(ctx context.Context, q ListQuery, skip, limit int64) ([]Place, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Place, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*Place, error)
	SavePlace(ctx context.Context, userID, placeID primitive.ObjectID, notes string) (bool, error)
	SavedByUser(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]SavedPlace, int64, error)
	UpcomingEvents(ctx context.Context, from time.Time, city string, limit int64) ([]Event, error)
}

type Handler struct {
	store Store
	now   func() time.Time
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store, now: time.Now}
}

// List godoc
// @Summary List places
// @Description Active places, filterable by city, type and tag
// @Tags places
// @Produce json
// @Param city query string false "City"
// @Param type query string false "Place type"
// @Param tag query string false "Aesthetic or mood tag"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.PaginatedResponse{data=[]Place}
// @Router /places [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query", "INVALID_QUERY")
		return
	}
	q.Tag = validator.NormalizeTag(q.Tag)
	page := pagination.FromQuery(c)

	items, total, err := h.store.List(c.Request.Context(), q, page.Skip(), int64(page.Limit))
	if err != nil {
		response.DatabaseError(c, "Failed to list places")
		return
	}

	response.Paginated(c, items, total, page.Limit, page.Page)
}

// Get godoc
// @Summary Get place
// @Description Returns a place and counts the view
// @Tags places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} response.SuccessResponse{data=Place}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /places/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	placeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid place ID format", "INVALID_ID")
		return
	}

	place, err := h.store.IncrementViews(c.Request.Context(), placeID)
	if err != nil {
		response.FromError(c, err, "Place not found")
		return
	}

	response.Success(c, place)
}

// Save godoc
// @Summary Save place
// @Description Bookmark a place. Saving twice is a no-op.
// @Tags places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Place ID"
// @Param request body SaveRequest false "Notes"
// @Success 200 {object} response.SuccessResponse{data=SaveResponse}
// @Success 201 {object} response.SuccessResponse{data=SaveResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /places/{id}/save [post]
func (h *Handler) Save(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	placeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid place ID format", "INVALID_ID")
		return
	}

	var req SaveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, validator.Message(err))
			return
		}
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetByID(ctx, placeID); err != nil {
		response.FromError(c, err, "Place not found")
		return
	}

	created, err := h.store.SavePlace(ctx, userID, placeID, req.Notes)
	if err != nil {
		response.DatabaseError(c, "Failed to save place")
		return
	}
	if created {
		response.Created(c, SaveResponse{Saved: true, State: "place saved"})
		return
	}
	response.Success(c, SaveResponse{Saved: true, State: "place already saved"})
}

// Saved godoc
// @Summary List saved places
// @Tags places
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.PaginatedResponse{data=[]SavedPlace}
// @Router /places/saved [get]
func (h *Handler) Saved(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	page := pagination.FromQuery(c)
	items, total, err := h.store.SavedByUser(c.Request.Context(), userID, page.Skip(), int64(page.Limit))
	if err != nil {
		response.DatabaseError(c, "Failed to list saved places")
		return
	}

	response.Paginated(c, items, total, page.Limit, page.Page)
}

// Events godoc
// @Summary Upcoming events
// @Tags events
// @Produce json
// @Param city query string false "City"
// @Param limit query int false "Max events (default 20, max 100)"
// @Success 200 {object} response.SuccessResponse{data=[]Event}
// @Router /events [get]
func (h *Handler) Events(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > pagination.MaxLimit {
		limit = 20
	}

	events, err := h.store.UpcomingEvents(c.Request.Context(), h.now(), c.Query("city"), int64(limit))
	if err != nil {
		response.DatabaseError(c, "Failed to list events")
		return
	}

	response.Success(c, events)
}
