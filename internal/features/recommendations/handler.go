package recommendations

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/features/places"
	"github.com/xyz-asif/spire/internal/middleware"
	"github.com/xyz-asif/spire/internal/pkg/pagination"
	"github.com/xyz-asif/spire/internal/pkg/response"
	"github.com/xyz-asif/spire/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the subset of Repository used by the handler
type Store interface {
	ListForUser(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]UserRecommendation, int64, error)
	GetForUser(ctx context.Context, userID, id primitive.ObjectID) (*UserRecommendation, error)
	MarkViewed(ctx context.Context, userID, id primitive.ObjectID) error
	Dismiss(ctx context.Context, userID, id primitive.ObjectID) error
	CreateFeedback(ctx context.Context, fb *Feedback) error
	ListFeedback(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]Feedback, int64, error)
}

// PlaceLookup resolves place ids for embedding
type PlaceLookup interface {
	GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]places.Place, error)
}

// Engine runs generation and preference refresh for one user
type Engine interface {
	GenerateForUser(ctx context.Context, userID primitive.ObjectID, limit int) (RunResult, error)
	RefreshFavoriteCategories(ctx context.Context, userID primitive.ObjectID) ([]string, error)
}

type Handler struct {
	store        Store
	places       PlaceLookup
	engine       Engine
	defaultLimit int
}

func NewHandler(store Store, placeLookup PlaceLookup, engine Engine, defaultLimit int) *Handler {
	return &Handler{
		store:        store,
		places:       placeLookup,
		engine:       engine,
		defaultLimit: NormalizeLimit(defaultLimit),
	}
}

// List godoc
// @Summary List recommendations
// @Description The caller's open recommendations, best score first, with the place embedded
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.PaginatedResponse{data=[]RecommendationView}
// @Failure 401 {object} response.ErrorResponse
// @Router /recommendations [get]
func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	page := pagination.FromQuery(c)
	ctx := c.Request.Context()

	items, total, err := h.store.ListForUser(ctx, userID, page.Skip(), int64(page.Limit))
	if err != nil {
		response.DatabaseError(c, "Failed to list recommendations")
		return
	}

	ids := make([]primitive.ObjectID, len(items))
	for i, item := range items {
		ids[i] = item.PlaceID
	}
	placeByID, err := h.places.GetMany(ctx, ids)
	if err != nil {
		response.DatabaseError(c, "Failed to load places")
		return
	}

	views := make([]RecommendationView, len(items))
	for i, item := range items {
		views[i] = RecommendationView{UserRecommendation: item}
		if p, ok := placeByID[item.PlaceID]; ok {
			views[i].Place = &p
		}
	}

	response.Paginated(c, views, total, page.Limit, page.Page)
}

// Generate godoc
// @Summary Generate recommendations
// @Description Scores the place catalog for the caller and stores new matches
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum recommendations to keep (default 20, max 100)"
// @Success 200 {object} response.SuccessResponse{data=RunResult}
// @Failure 401 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /recommendations/generate [post]
func (h *Handler) Generate(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.BadRequest(c, "Limit must be a positive integer", "INVALID_LIMIT")
			return
		}
		limit = NormalizeLimit(n)
	}

	result, err := h.engine.GenerateForUser(c.Request.Context(), userID, limit)
	if err != nil {
		response.FromError(c, err, "Failed to generate recommendations")
		return
	}

	response.Success(c, result)
}

// MarkViewed godoc
// @Summary Mark recommendation viewed
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recommendation ID"
// @Success 200 {object} response.SuccessResponse{data=StatusResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /recommendations/{id}/viewed [post]
func (h *Handler) MarkViewed(c *gin.Context) {
	h.setFlag(c, h.store.MarkViewed, "recommendation marked as viewed")
}

// Dismiss godoc
// @Summary Dismiss recommendation
// @Description A dismissed place is never recommended to the caller again
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recommendation ID"
// @Success 200 {object} response.SuccessResponse{data=StatusResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /recommendations/{id}/dismiss [post]
func (h *Handler) Dismiss(c *gin.Context) {
	h.setFlag(c, h.store.Dismiss, "recommendation dismissed")
}

func (h *Handler) setFlag(c *gin.Context, set func(context.Context, primitive.ObjectID, primitive.ObjectID) error, status string) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid recommendation ID format", "INVALID_ID")
		return
	}

	if err := set(c.Request.Context(), userID, id); err != nil {
		response.FromError(c, err, "Recommendation not found")
		return
	}

	response.Success(c, StatusResponse{Status: status})
}

// CreateFeedback godoc
// @Summary Send recommendation feedback
// @Tags recommendations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FeedbackRequest true "Feedback"
// @Success 201 {object} response.SuccessResponse{data=Feedback}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /recommendations/feedback [post]
func (h *Handler) CreateFeedback(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.Message(err))
		return
	}

	recID, err := primitive.ObjectIDFromHex(req.RecommendationID)
	if err != nil {
		response.BadRequest(c, "Invalid recommendation ID format", "INVALID_ID")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetForUser(ctx, userID, recID); err != nil {
		response.FromError(c, err, "Recommendation not found")
		return
	}

	fb := &Feedback{
		UserID:           userID,
		RecommendationID: recID,
		FeedbackType:     req.FeedbackType,
	}
	if err := h.store.CreateFeedback(ctx, fb); err != nil {
		response.DatabaseError(c, "Failed to save feedback")
		return
	}

	response.Created(c, fb)
}

// ListFeedback godoc
// @Summary List own feedback
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.PaginatedResponse{data=[]Feedback}
// @Router /recommendations/feedback [get]
func (h *Handler) ListFeedback(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	page := pagination.FromQuery(c)
	items, total, err := h.store.ListFeedback(c.Request.Context(), userID, page.Skip(), int64(page.Limit))
	if err != nil {
		response.DatabaseError(c, "Failed to list feedback")
		return
	}

	response.Paginated(c, items, total, page.Limit, page.Page)
}

// RefreshPreferences godoc
// @Summary Refresh favorite categories
// @Description Recomputes the caller's favorite categories from their posts and boards
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=PreferencesResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /users/me/preferences/refresh [post]
func (h *Handler) RefreshPreferences(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	categories, err := h.engine.RefreshFavoriteCategories(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err, "Failed to refresh preferences")
		return
	}

	response.Success(c, PreferencesResponse{FavoriteCategories: categories})
}
