package places

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

// Repository handles the place catalog, events and saved places
type Repository struct {
	places *mongo.Collection
	events *mongo.Collection
	saved  *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	r := &Repository{
		places: db.Collection("places"),
		events: db.Collection("events"),
		saved:  db.Collection("saved_places"),
	}

	ctx := context.Background()
	_, _ = r.places.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "placeType", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "viewsCount", Value: -1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	_, _ = r.events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "startDate", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "startDate", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	})
	_, _ = r.saved.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Unique compound index - a place is saved once per user
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "placeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})

	return r
}

// ActivePlaces returns the full active catalog, newest first
func (r *Repository) ActivePlaces(ctx context.Context) ([]Place, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.places.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("active places: %w", err)
	}
	defer cursor.Close(ctx)

	places := []Place{}
	if err := cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("decode places: %w", err)
	}
	return places, nil
}

// List returns a filtered page of active places
func (r *Repository) List(ctx context.Context, q ListQuery, skip, limit int64) ([]Place, int64, error) {
	filter := bson.M{"isActive": true}
	if q.City != "" {
		filter["city"] = q.City
	}
	if q.PlaceType != "" {
		filter["placeType"] = q.PlaceType
	}
	if q.Tag != "" {
		filter["$or"] = []bson.M{
			{"aestheticTags": q.Tag},
			{"moodTags": q.Tag},
		}
	}

	total, err := r.places.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count places: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.places.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list places: %w", err)
	}
	defer cursor.Close(ctx)

	places := []Place{}
	if err := cursor.All(ctx, &places); err != nil {
		return nil, 0, fmt.Errorf("decode places: %w", err)
	}
	return places, total, nil
}

// GetByID finds an active place by id
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Place, error) {
	var place Place
	if err := r.places.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&place); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get place: %w", err)
	}
	return &place, nil
}

// GetMany loads places by id in any order, skipping unknown ids
func (r *Repository) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]Place, error) {
	out := make(map[primitive.ObjectID]Place, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := r.places.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("get places: %w", err)
	}
	defer cursor.Close(ctx)

	var places []Place
	if err := cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("decode places: %w", err)
	}
	for _, p := range places {
		out[p.ID] = p
	}
	return out, nil
}

// IncrementViews bumps viewsCount and returns the updated place
func (r *Repository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*Place, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var place Place
	err := r.places.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "isActive": true},
		bson.M{"$inc": bson.M{"viewsCount": 1}},
		opts,
	).Decode(&place)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("increment views: %w", err)
	}
	return &place, nil
}

// EnsurePlace inserts place unless one with the same name exists.
// It reports whether the place was created.
func (r *Repository) EnsurePlace(ctx context.Context, place *Place) (bool, error) {
	prepPlace(place)
	result, err := r.places.UpdateOne(ctx,
		bson.M{"name": place.Name},
		bson.M{"$setOnInsert": place},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("ensure place %q: %w", place.Name, err)
	}
	if result.UpsertedCount == 0 {
		var existing Place
		if err := r.places.FindOne(ctx, bson.M{"name": place.Name}).Decode(&existing); err == nil {
			*place = existing
		}
		return false, nil
	}
	return true, nil
}

func prepPlace(place *Place) {
	now := time.Now()
	if place.ID.IsZero() {
		place.ID = primitive.NewObjectID()
	}
	place.CreatedAt = now
	place.UpdatedAt = now
	if place.AestheticTags == nil {
		place.AestheticTags = []string{}
	}
	if place.MoodTags == nil {
		place.MoodTags = []string{}
	}
	if place.Features == nil {
		place.Features = []string{}
	}
}

// SavePlace bookmarks a place if absent. savesCount only moves when a bookmark is created.
func (r *Repository) SavePlace(ctx context.Context, userID, placeID primitive.ObjectID, notes string) (bool, error) {
	saved := &SavedPlace{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		PlaceID:   placeID,
		Notes:     notes,
		CreatedAt: time.Now(),
	}

	if _, err := r.saved.InsertOne(ctx, saved); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("save place: %w", err)
	}

	if _, err := r.places.UpdateOne(ctx, bson.M{"_id": placeID}, bson.M{"$inc": bson.M{"savesCount": 1}}); err != nil {
		return true, fmt.Errorf("increment saves count: %w", err)
	}
	return true, nil
}

// SavedByUser lists the user's saved places, newest first
func (r *Repository) SavedByUser(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]SavedPlace, int64, error) {
	filter := bson.M{"userId": userID}
	total, err := r.saved.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count saved places: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.saved.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list saved places: %w", err)
	}
	defer cursor.Close(ctx)

	items := []SavedPlace{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode saved places: %w", err)
	}
	return items, total, nil
}

// UpcomingEvents lists active events starting on or after from, soonest first
func (r *Repository) UpcomingEvents(ctx context.Context, from time.Time, city string, limit int64) ([]Event, error) {
	filter := bson.M{"isActive": true, "startDate": bson.M{"$gte": startOfDay(from)}}
	if city != "" {
		filter["city"] = city
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "startTime", Value: 1}}).
		SetLimit(limit)
	cursor, err := r.events.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// EnsureEvent inserts event unless one with the same title exists
func (r *Repository) EnsureEvent(ctx context.Context, event *Event) (bool, error) {
	prepEvent(event)
	result, err := r.events.UpdateOne(ctx,
		bson.M{"title": event.Title},
		bson.M{"$setOnInsert": event},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("ensure event %q: %w", event.Title, err)
	}
	return result.UpsertedCount > 0, nil
}

func prepEvent(event *Event) {
	now := time.Now()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.AestheticTags == nil {
		event.AestheticTags = []string{}
	}
	if event.MoodTags == nil {
		event.MoodTags = []string{}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
