package places

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memSeeder struct {
	places map[string]Place
	events map[string]Event
}

func (m *memSeeder) EnsurePlace(_ context.Context, p *Place) (bool, error) {
	if existing, ok := m.places[p.Name]; ok {
		*p = existing
		return false, nil
	}
	p.ID = primitive.NewObjectID()
	m.places[p.Name] = *p
	return true, nil
}

func (m *memSeeder) EnsureEvent(_ context.Context, e *Event) (bool, error) {
	if _, ok := m.events[e.Title]; ok {
		return false, nil
	}
	m.events[e.Title] = *e
	return true, nil
}

func TestSeed_IsIdempotent(t *testing.T) {
	store := &memSeeder{places: map[string]Place{}, events: map[string]Event{}}
	today := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

	first, err := Seed(context.Background(), store, today)
	require.NoError(t, err)
	assert.Len(t, first.PlacesCreated, 5)
	assert.Len(t, first.EventsCreated, 3)

	second, err := Seed(context.Background(), store, today)
	require.NoError(t, err)
	assert.Empty(t, second.PlacesCreated)
	assert.Empty(t, second.EventsCreated)
}

func TestSeed_LinksEventsToHostPlaces(t *testing.T) {
	store := &memSeeder{places: map[string]Place{}, events: map[string]Event{}}
	today := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

	_, err := Seed(context.Background(), store, today)
	require.NoError(t, err)

	rooftop := store.events["Sunset Rooftop Sessions"]
	require.NotNil(t, rooftop.PlaceID)
	assert.Equal(t, store.places["Velvet Underground Bar"].ID, *rooftop.PlaceID)
	assert.Equal(t, time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC), rooftop.StartDate)

	assert.Nil(t, store.events["Sunday Farmers Market"].PlaceID)

	exhibition := store.events["Abstract Dreams Exhibition"]
	require.NotNil(t, exhibition.EndDate)
	assert.Equal(t, time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC), *exhibition.EndDate)
}
