package recommendations

import (
	"time"

	"github.com/xyz-asif/spire/internal/features/places"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback types
const (
	FeedbackInterested    = "interested"
	FeedbackNotInterested = "not_interested"
	FeedbackVisited       = "visited"
	FeedbackSaved         = "saved"
)

// UserRecommendation is a persisted (user, place) match. Score and reasons
// are fixed at creation; only Viewed and Dismissed change afterwards.
type UserRecommendation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	PlaceID      primitive.ObjectID `bson:"placeId" json:"placeId"`
	Score        float64            `bson:"score" json:"score"`
	MatchReasons []string           `bson:"matchReasons" json:"matchReasons"`
	Viewed       bool               `bson:"viewed" json:"viewed"`
	Dismissed    bool               `bson:"dismissed" json:"dismissed"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Feedback is an append-only reaction to a recommendation
type Feedback struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	RecommendationID primitive.ObjectID `bson:"recommendationId" json:"recommendationId"`
	FeedbackType     string             `bson:"feedbackType" json:"feedbackType"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// RecommendationView is a recommendation with its place embedded
type RecommendationView struct {
	UserRecommendation
	Place *places.Place `json:"place,omitempty"`
}

// FeedbackRequest for POST /recommendations/feedback
type FeedbackRequest struct {
	RecommendationID string `json:"recommendationId" binding:"required"`
	FeedbackType     string `json:"feedbackType" binding:"required,oneof=interested not_interested visited saved"`
}

// RunResult summarizes one user's generation run
type RunResult struct {
	UserID  primitive.ObjectID `json:"userId"`
	Path    string             `json:"path" example:"profile"`
	Scored  int                `json:"scored"`
	Ranked  int                `json:"ranked"`
	Created int                `json:"created"`
}

// BatchResult summarizes a run across many users
type BatchResult struct {
	RunID     string        `json:"runId"`
	Users     int           `json:"users"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Created   int           `json:"created"`
	Duration  time.Duration `json:"duration"`
}

// PreferencesResponse after a favorite category refresh
type PreferencesResponse struct {
	FavoriteCategories []string `json:"favoriteCategories"`
}

// StatusResponse for flag updates
type StatusResponse struct {
	Status string `json:"status" example:"recommendation dismissed"`
}
