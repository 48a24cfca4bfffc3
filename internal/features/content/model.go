package content

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content types for posts
const (
	ContentTypeImage = "image"
	ContentTypeVideo = "video"
)

// Post is a photo or video shared by a user. MediaURL references media
// hosted elsewhere; this service stores no files.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	ContentType string             `bson:"contentType" json:"contentType"`
	MediaURL    string             `bson:"mediaUrl" json:"mediaUrl"`
	SourceURL   string             `bson:"sourceUrl,omitempty" json:"sourceUrl,omitempty"`
	Tags        []string           `bson:"tags" json:"tags"`
	Mood        string             `bson:"mood,omitempty" json:"mood,omitempty"`
	Aesthetic   string             `bson:"aesthetic,omitempty" json:"aesthetic,omitempty"`
	LikesCount  int                `bson:"likesCount" json:"likesCount"`
	SavesCount  int                `bson:"savesCount" json:"savesCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Board groups posts under a title
type Board struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	IsPrivate   bool               `bson:"isPrivate" json:"isPrivate"`
	Tags        []string           `bson:"tags" json:"tags"`
	PostCount   int                `bson:"postCount" json:"postCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsVisibleTo reports whether viewer may see the board
func (b *Board) IsVisibleTo(viewer primitive.ObjectID) bool {
	return !b.IsPrivate || b.UserID == viewer
}

// BoardPost links a post into a board, unique per (board, post)
type BoardPost struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BoardID primitive.ObjectID `bson:"boardId" json:"boardId"`
	PostID  primitive.ObjectID `bson:"postId" json:"postId"`
	AddedAt time.Time          `bson:"addedAt" json:"addedAt"`
}

// Like is a user's like on a post, unique per (user, post)
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreatePostRequest for POST /posts
type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=2000"`
	ContentType string   `json:"contentType" binding:"required,oneof=image video"`
	MediaURL    string   `json:"mediaUrl" binding:"required,url"`
	SourceURL   string   `json:"sourceUrl" binding:"omitempty,url"`
	Tags        []string `json:"tags" binding:"max=30,dive,tag"`
	Mood        string   `json:"mood" binding:"omitempty,tag"`
	Aesthetic   string   `json:"aesthetic" binding:"omitempty,tag"`
}

// CreateBoardRequest for POST /boards
type CreateBoardRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=2000"`
	IsPrivate   bool     `json:"isPrivate"`
	Tags        []string `json:"tags" binding:"max=30,dive,tag"`
}

// AddPostRequest for POST /boards/:id/posts
type AddPostRequest struct {
	PostID string `json:"postId" binding:"required"`
}

// LikeStatusResponse after like/unlike
type LikeStatusResponse struct {
	HasLiked   bool `json:"hasLiked"`
	LikesCount int  `json:"likesCount"`
}

// AddPostResponse after adding a post to a board
type AddPostResponse struct {
	Added bool `json:"added"`
}
