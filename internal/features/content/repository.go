package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/xyz-asif/spire/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles posts, boards and the relations between them
type Repository struct {
	posts      *mongo.Collection
	boards     *mongo.Collection
	boardPosts *mongo.Collection
	likes      *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	r := &Repository{
		posts:      db.Collection("posts"),
		boards:     db.Collection("boards"),
		boardPosts: db.Collection("board_posts"),
		likes:      db.Collection("post_likes"),
	}

	ctx := context.Background()
	_, _ = r.posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	_, _ = r.boards.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isPrivate", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	_, _ = r.boardPosts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Unique compound index - a post appears once per board
			Keys:    bson.D{{Key: "boardId", Value: 1}, {Key: "postId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	_, _ = r.likes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Unique compound index - prevents duplicate likes
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "postId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	return r
}

// CreatePost inserts a post
func (r *Repository) CreatePost(ctx context.Context, post *Post) error {
	now := time.Now()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if _, err := r.posts.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// CreateBoard inserts a board
func (r *Repository) CreateBoard(ctx context.Context, board *Board) error {
	now := time.Now()
	board.ID = primitive.NewObjectID()
	board.CreatedAt = now
	board.UpdatedAt = now
	if board.Tags == nil {
		board.Tags = []string{}
	}

	if _, err := r.boards.InsertOne(ctx, board); err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	return nil
}

// GetPost finds a post by id
func (r *Repository) GetPost(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	var post Post
	if err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// GetBoard finds a board by id
func (r *Repository) GetBoard(ctx context.Context, id primitive.ObjectID) (*Board, error) {
	var board Board
	if err := r.boards.FindOne(ctx, bson.M{"_id": id}).Decode(&board); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}
	return &board, nil
}

// PostsByUser returns every post of the user, newest first
func (r *Repository) PostsByUser(ctx context.Context, userID primitive.ObjectID) ([]Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.posts.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("posts by user: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// BoardsByUser returns every board of the user, private ones included
func (r *Repository) BoardsByUser(ctx context.Context, userID primitive.ObjectID) ([]Board, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.boards.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("boards by user: %w", err)
	}
	defer cursor.Close(ctx)

	boards := []Board{}
	if err := cursor.All(ctx, &boards); err != nil {
		return nil, fmt.Errorf("decode boards: %w", err)
	}
	return boards, nil
}

// VisibleBoards lists public boards plus the viewer's own, newest first
func (r *Repository) VisibleBoards(ctx context.Context, viewer primitive.ObjectID, skip, limit int64) ([]Board, int64, error) {
	filter := bson.M{"isPrivate": false}
	if !viewer.IsZero() {
		filter = bson.M{"$or": []bson.M{
			{"isPrivate": false},
			{"userId": viewer},
		}}
	}

	total, err := r.boards.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count boards: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.boards.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list boards: %w", err)
	}
	defer cursor.Close(ctx)

	boards := []Board{}
	if err := cursor.All(ctx, &boards); err != nil {
		return nil, 0, fmt.Errorf("decode boards: %w", err)
	}
	return boards, total, nil
}

// AddPostToBoard links post into board if absent. It reports whether a link was created.
func (r *Repository) AddPostToBoard(ctx context.Context, boardID, postID primitive.ObjectID) (bool, error) {
	link := &BoardPost{
		ID:      primitive.NewObjectID(),
		BoardID: boardID,
		PostID:  postID,
		AddedAt: time.Now(),
	}

	if _, err := r.boardPosts.InsertOne(ctx, link); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("add post to board: %w", err)
	}

	_, err := r.boards.UpdateOne(ctx,
		bson.M{"_id": boardID},
		bson.M{"$inc": bson.M{"postCount": 1}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return true, fmt.Errorf("increment board post count: %w", err)
	}
	return true, nil
}

// LikePost records a like if absent. The post's likesCount only moves when a like is created.
func (r *Repository) LikePost(ctx context.Context, userID, postID primitive.ObjectID) (bool, error) {
	like := &Like{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}

	if _, err := r.likes.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("like post: %w", err)
	}

	if _, err := r.posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"likesCount": 1}}); err != nil {
		return true, fmt.Errorf("increment like count: %w", err)
	}
	return true, nil
}

// UnlikePost removes a like. It reports whether a like existed.
func (r *Repository) UnlikePost(ctx context.Context, userID, postID primitive.ObjectID) (bool, error) {
	result, err := r.likes.DeleteOne(ctx, bson.M{"userId": userID, "postId": postID})
	if err != nil {
		return false, fmt.Errorf("unlike post: %w", err)
	}
	if result.DeletedCount == 0 {
		return false, nil
	}

	// Floor at zero
	_, err = r.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "likesCount": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"likesCount": -1}},
	)
	if err != nil {
		return true, fmt.Errorf("decrement like count: %w", err)
	}
	return true, nil
}
