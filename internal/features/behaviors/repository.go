package behaviors

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database interactions for behaviors
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("user_behaviors")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Recent behaviors per user
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "contentType", Value: 1}, {Key: "contentId", Value: 1}},
		},
	})

	return &Repository{collection: collection}
}

// Create appends a behavior. A zero timestamp is set to now.
func (r *Repository) Create(ctx context.Context, b *Behavior) error {
	b.ID = primitive.NewObjectID()
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now()
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("create behavior: %w", err)
	}
	return nil
}

// RecentByUser returns at most limit behaviors, most recent first
func (r *Repository) RecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]Behavior, error) {
	items, _, err := r.find(ctx, userID, 0, int64(limit), false)
	return items, err
}

// ListByUser returns a page of the user's behaviors and the total count
func (r *Repository) ListByUser(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]Behavior, int64, error) {
	return r.find(ctx, userID, skip, limit, true)
}

func (r *Repository) find(ctx context.Context, userID primitive.ObjectID, skip, limit int64, withTotal bool) ([]Behavior, int64, error) {
	filter := bson.M{"userId": userID}

	var total int64
	if withTotal {
		var err error
		if total, err = r.collection.CountDocuments(ctx, filter); err != nil {
			return nil, 0, fmt.Errorf("count behaviors: %w", err)
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find behaviors: %w", err)
	}
	defer cursor.Close(ctx)

	items := []Behavior{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode behaviors: %w", err)
	}
	return items, total, nil
}
