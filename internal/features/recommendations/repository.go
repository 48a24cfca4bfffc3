package recommendations

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

// Repository persists recommendations and their feedback
type Repository struct {
	recommendations *mongo.Collection
	feedback        *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	r := &Repository{
		recommendations: db.Collection("user_recommendations"),
		feedback:        db.Collection("recommendation_feedback"),
	}

	ctx := context.Background()
	_, _ = r.recommendations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Unique compound index - one row per (user, place)
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "placeId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			// Listing order for a user's open recommendations
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "dismissed", Value: 1},
				{Key: "score", Value: -1},
				{Key: "createdAt", Value: -1},
			},
		},
	})
	_, _ = r.feedback.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "recommendationId", Value: 1}}},
	})

	return r
}

// CreateIfAbsent inserts rec unless (user, place) already has a row.
// A concurrent duplicate resolves to "not created" through the unique index.
func (r *Repository) CreateIfAbsent(ctx context.Context, rec *UserRecommendation) (bool, error) {
	now := time.Now()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.MatchReasons == nil {
		rec.MatchReasons = []string{}
	}

	if _, err := r.recommendations.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("create recommendation: %w", err)
	}
	return true, nil
}

// ExistingPlaceIDs returns every place already recommended to the user,
// dismissed or not
func (r *Repository) ExistingPlaceIDs(ctx context.Context, userID primitive.ObjectID) (PlaceSet, error) {
	opts := options.Find().SetProjection(bson.M{"placeId": 1, "_id": 0})
	cursor, err := r.recommendations.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("existing recommendations: %w", err)
	}
	defer cursor.Close(ctx)

	set := PlaceSet{}
	for cursor.Next(ctx) {
		var row struct {
			PlaceID primitive.ObjectID `bson:"placeId"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode recommendation: %w", err)
		}
		set[row.PlaceID] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return set, nil
}

// ListForUser returns the user's open recommendations, best first
func (r *Repository) ListForUser(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]UserRecommendation, int64, error) {
	filter := bson.M{"userId": userID, "dismissed": false}

	total, err := r.recommendations.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count recommendations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.recommendations.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list recommendations: %w", err)
	}
	defer cursor.Close(ctx)

	items := []UserRecommendation{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode recommendations: %w", err)
	}
	return items, total, nil
}

// GetForUser finds one of the user's recommendations
func (r *Repository) GetForUser(ctx context.Context, userID, id primitive.ObjectID) (*UserRecommendation, error) {
	var rec UserRecommendation
	if err := r.recommendations.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get recommendation: %w", err)
	}
	return &rec, nil
}

// MarkViewed sets viewed on one of the user's recommendations
func (r *Repository) MarkViewed(ctx context.Context, userID, id primitive.ObjectID) error {
	return r.setFlag(ctx, userID, id, "viewed")
}

// Dismiss sets dismissed on one of the user's recommendations
func (r *Repository) Dismiss(ctx context.Context, userID, id primitive.ObjectID) error {
	return r.setFlag(ctx, userID, id, "dismissed")
}

func (r *Repository) setFlag(ctx context.Context, userID, id primitive.ObjectID, field string) error {
	result, err := r.recommendations.UpdateOne(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{field: true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", field, err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CreateFeedback appends a feedback entry
func (r *Repository) CreateFeedback(ctx context.Context, fb *Feedback) error {
	fb.ID = primitive.NewObjectID()
	fb.CreatedAt = time.Now()
	if _, err := r.feedback.InsertOne(ctx, fb); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// ListFeedback returns the user's feedback, newest first
func (r *Repository) ListFeedback(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]Feedback, int64, error) {
	filter := bson.M{"userId": userID}

	total, err := r.feedback.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.feedback.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}
	defer cursor.Close(ctx)

	items := []Feedback{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode feedback: %w", err)
	}
	return items, total, nil
}
