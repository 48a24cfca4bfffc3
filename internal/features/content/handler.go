package content

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/spire/internal/middleware"
	"github.com/xyz-asif/spire/internal/pkg/pagination"
	"github.com/xyz-asif/spire/internal/pkg/response"
	"github.com/xyz-asif/spire/internal/pkg/validator"
	apperrors "github.com/xyz-asif/spire/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the subset of Repository used by the handler
type Store interface {
	CreatePost(ctx context.Context, post *Post) error
	CreateBoard(ctx context.Context, board *Board) error
	GetPost(ctx context.Context, id primitive.ObjectID) (*Post, error)
	GetBoard(ctx context.Context, id primitive.ObjectID) (*Board, error)
	VisibleBoards(ctx context.Context, viewer primitive.ObjectID, skip, limit int64) ([]Board, int64, error)
	AddPostToBoard(ctx context.Context, boardID, postID primitive.ObjectID) (bool, error)
	LikePost(ctx context.Context, userID, postID primitive.ObjectID) (bool, error)
	UnlikePost(ctx context.Context, userID, postID primitive.ObjectID) (bool, error)
}

// Handler handles post and board HTTP requests
type Handler struct {
	store Store
}

// NewHandler creates a new content handler
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// CreatePost godoc
// @Summary Create post
// @Description Share a photo or video with tags, mood and aesthetic
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post"
// @Success 201 {object} response.SuccessResponse{data=Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.Message(err))
		return
	}

	post := &Post{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ContentType: req.ContentType,
		MediaURL:    req.MediaURL,
		SourceURL:   req.SourceURL,
		Tags:        validator.NormalizeTags(req.Tags),
		Mood:        validator.NormalizeTag(req.Mood),
		Aesthetic:   validator.NormalizeTag(req.Aesthetic),
	}

	if err := h.store.CreatePost(c.Request.Context(), post); err != nil {
		response.DatabaseError(c, "Failed to create post")
		return
	}

	response.Created(c, post)
}

// GetPost godoc
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID format", "INVALID_ID")
		return
	}

	post, err := h.store.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.FromError(c, err, "Post not found")
		return
	}

	response.Success(c, post)
}

// LikePost godoc
// @Summary Like post
// @Description Like a post. Liking twice is a no-op.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=LikeStatusResponse}
// @Success 201 {object} response.SuccessResponse{data=LikeStatusResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{id}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
	userID, postID, post, ok := h.loadPostForUser(c)
	if !ok {
		return
	}

	created, err := h.store.LikePost(c.Request.Context(), userID, postID)
	if err != nil {
		response.InternalServerError(c, "Failed to like post", "LIKE_FAILED")
		return
	}

	count := post.LikesCount
	if created {
		count++
		response.Created(c, LikeStatusResponse{HasLiked: true, LikesCount: count})
		return
	}

	response.Success(c, LikeStatusResponse{HasLiked: true, LikesCount: count})
}

// UnlikePost godoc
// @Summary Unlike post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=LikeStatusResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /posts/{id}/like [delete]
func (h *Handler) UnlikePost(c *gin.Context) {
	userID, postID, post, ok := h.loadPostForUser(c)
	if !ok {
		return
	}

	existed, err := h.store.UnlikePost(c.Request.Context(), userID, postID)
	if err != nil {
		response.InternalServerError(c, "Failed to unlike post", "UNLIKE_FAILED")
		return
	}
	if !existed {
		response.NotFound(c, "Like not found", "LIKE_NOT_FOUND")
		return
	}

	count := post.LikesCount - 1
	if count < 0 {
		count = 0
	}
	response.Success(c, LikeStatusResponse{HasLiked: false, LikesCount: count})
}

func (h *Handler) loadPostForUser(c *gin.Context) (primitive.ObjectID, primitive.ObjectID, *Post, bool) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return userID, primitive.NilObjectID, nil, false
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID format", "INVALID_ID")
		return userID, postID, nil, false
	}

	post, err := h.store.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.FromError(c, err, "Post not found")
		return userID, postID, nil, false
	}
	return userID, postID, post, true
}

// CreateBoard godoc
// @Summary Create board
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBoardRequest true "Board"
// @Success 201 {object} response.SuccessResponse{data=Board}
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /boards [post]
func (h *Handler) CreateBoard(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.Message(err))
		return
	}

	board := &Board{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		Tags:        validator.NormalizeTags(req.Tags),
	}

	if err := h.store.CreateBoard(c.Request.Context(), board); err != nil {
		response.DatabaseError(c, "Failed to create board")
		return
	}

	response.Created(c, board)
}

// ListBoards godoc
// @Summary List boards
// @Description Public boards, plus the caller's private boards when authenticated
// @Tags boards
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.PaginatedResponse{data=[]Board}
// @Router /boards [get]
func (h *Handler) ListBoards(c *gin.Context) {
	viewer, _ := middleware.CurrentUserObjectID(c)
	page := pagination.FromQuery(c)

	boards, total, err := h.store.VisibleBoards(c.Request.Context(), viewer, page.Skip(), int64(page.Limit))
	if err != nil {
		response.DatabaseError(c, "Failed to list boards")
		return
	}

	response.Paginated(c, boards, total, page.Limit, page.Page)
}

// AddPostToBoard godoc
// @Summary Add post to board
// @Description Adds a post to one of the caller's boards. Adding twice is a no-op.
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Param request body AddPostRequest true "Post to add"
// @Success 200 {object} response.SuccessResponse{data=AddPostResponse}
// @Success 201 {object} response.SuccessResponse{data=AddPostResponse}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /boards/{id}/posts [post]
func (h *Handler) AddPostToBoard(c *gin.Context) {
	userID, ok := middleware.CurrentUserObjectID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "UNAUTHORIZED")
		return
	}

	boardID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid board ID format", "INVALID_ID")
		return
	}

	var req AddPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "postId is required", "INVALID_REQUEST")
		return
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		response.BadRequest(c, "Invalid post ID format", "INVALID_ID")
		return
	}

	ctx := c.Request.Context()

	board, err := h.store.GetBoard(ctx, boardID)
	if err != nil {
		response.FromError(c, err, "Board not found")
		return
	}
	if !board.IsVisibleTo(userID) {
		response.NotFound(c, "Board not found", "NOT_FOUND")
		return
	}
	if board.UserID != userID {
		response.Forbidden(c, "Only the board owner can add posts", "FORBIDDEN")
		return
	}

	if _, err := h.store.GetPost(ctx, postID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Post not found", "POST_NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to load post")
		return
	}

	added, err := h.store.AddPostToBoard(ctx, boardID, postID)
	if err != nil {
		response.DatabaseError(c, "Failed to add post to board")
		return
	}
	if added {
		response.Created(c, AddPostResponse{Added: true})
		return
	}
	response.Success(c, AddPostResponse{Added: false})
}
