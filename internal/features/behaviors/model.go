package behaviors

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interaction types
const (
	InteractionView  = "view"
	InteractionSave  = "save"
	InteractionShare = "share"
	InteractionLike  = "like"
)

// Behavior is one tracked user interaction. Tags carry the tags of the
// content at the time of the interaction.
type Behavior struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	InteractionType string             `bson:"interactionType" json:"interactionType"`
	ContentType     string             `bson:"contentType" json:"contentType"`
	ContentID       primitive.ObjectID `bson:"contentId" json:"contentId"`
	Tags            []string           `bson:"tags" json:"tags"`
	Timestamp       time.Time          `bson:"timestamp" json:"timestamp"`
}

// TrackRequest for POST /behaviors
type TrackRequest struct {
	InteractionType string   `json:"interactionType" binding:"required,oneof=view save share like"`
	ContentType     string   `json:"contentType" binding:"required,oneof=post board place"`
	ContentID       string   `json:"contentId" binding:"required"`
	Tags            []string `json:"tags" binding:"max=30,dive,tag"`
}
