package places

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seeder is the write surface the sample catalog needs
type Seeder interface {
	EnsurePlace(ctx context.Context, place *Place) (bool, error)
	EnsureEvent(ctx context.Context, event *Event) (bool, error)
}

// SeedResult counts what a seed run inserted
type SeedResult struct {
	PlacesCreated []string
	EventsCreated []string
}

type sampleEvent struct {
	event     Event
	hostPlace string
}

// SamplePlaces returns the demo catalog
func SamplePlaces() []Place {
	return []Place{
		{
			Name:          "The Minimalist Cafe",
			Description:   "A serene coffee shop with clean lines, natural light, and artisanal brews. Perfect for quiet work sessions or contemplative afternoons.",
			PlaceType:     TypeCafe,
			Address:       "123 Oak Street",
			City:          "Brooklyn",
			State:         "NY",
			Country:       "USA",
			Phone:         "(555) 123-4567",
			Website:       "https://minimalistcafe.example",
			Instagram:     "@minimalistcafe",
			AestheticTags: []string{"minimalist", "modern", "clean", "bright"},
			MoodTags:      []string{"peaceful", "focused", "calming"},
			Features:      []string{"free wifi", "natural light", "vegan options", "outdoor seating"},
			IsActive:      true,
		},
		{
			Name:          "Velvet Underground Bar",
			Description:   "Dark, moody cocktail bar with vintage decor and live jazz on weekends. An intimate space for evening conversations.",
			PlaceType:     TypeBar,
			Address:       "456 Bourbon Lane",
			City:          "New Orleans",
			State:         "LA",
			Country:       "USA",
			Phone:         "(555) 987-6543",
			Website:       "https://velvetunderground.example",
			Instagram:     "@velvetundergroundbar",
			AestheticTags: []string{"vintage", "dark", "cozy", "romantic"},
			MoodTags:      []string{"intimate", "sophisticated", "romantic"},
			Features:      []string{"live music", "craft cocktails", "dim lighting", "speakeasy vibe"},
			IsActive:      true,
		},
		{
			Name:          "Sunflower Garden Bistro",
			Description:   "Farm-to-table restaurant with a sunny patio filled with plants. Fresh, seasonal menu in a cheerful atmosphere.",
			PlaceType:     TypeRestaurant,
			Address:       "789 Garden Way",
			City:          "Portland",
			State:         "OR",
			Country:       "USA",
			Phone:         "(555) 246-8135",
			Website:       "https://sunflowerbistro.example",
			Instagram:     "@sunflowerbistro",
			AestheticTags: []string{"botanical", "bright", "natural", "fresh"},
			MoodTags:      []string{"cheerful", "healthy", "energizing"},
			Features:      []string{"outdoor seating", "farm-to-table", "vegetarian options", "brunch"},
			IsActive:      true,
		},
		{
			Name:          "Industrial Arts Gallery",
			Description:   "Contemporary art space in a converted warehouse. Rotating exhibitions featuring emerging artists and bold installations.",
			PlaceType:     TypeGallery,
			Address:       "321 Factory Street",
			City:          "Los Angeles",
			State:         "CA",
			Country:       "USA",
			Phone:         "(555) 369-2580",
			Website:       "https://industrialartsgallery.example",
			Instagram:     "@industrialarts",
			AestheticTags: []string{"industrial", "contemporary", "raw", "bold"},
			MoodTags:      []string{"inspiring", "edgy", "creative"},
			Features:      []string{"rotating exhibitions", "artist talks", "warehouse space", "installations"},
			IsActive:      true,
		},
		{
			Name:          "Cozy Corner Bookstore",
			Description:   "Independent bookshop with comfortable reading nooks, rare finds, and a welcoming community atmosphere.",
			PlaceType:     TypeBookstore,
			Address:       "567 Literary Lane",
			City:          "Seattle",
			State:         "WA",
			Country:       "USA",
			Phone:         "(555) 741-8520",
			Website:       "https://cozycornerbooks.example",
			Instagram:     "@cozycornerbooks",
			AestheticTags: []string{"cozy", "vintage", "warm", "inviting"},
			MoodTags:      []string{"comforting", "nostalgic", "peaceful"},
			Features:      []string{"reading nooks", "rare books", "local authors", "book clubs"},
			IsActive:      true,
		},
	}
}

func sampleEvents(today time.Time) []sampleEvent {
	day := func(n int) time.Time { return startOfDay(today).AddDate(0, 0, n) }
	exhibitionEnd := day(45)

	return []sampleEvent{
		{
			hostPlace: "Velvet Underground Bar",
			event: Event{
				Title:         "Sunset Rooftop Sessions",
				Description:   "Live acoustic music as the sun sets over the city. Bring a blanket and enjoy local musicians.",
				EventType:     "concert",
				LocationName:  "Rooftop Terrace",
				Address:       "456 Bourbon Lane, Rooftop",
				City:          "New Orleans",
				StartDate:     day(7),
				StartTime:     "18:00",
				PriceInfo:     "Free entry, donations welcome",
				AestheticTags: []string{"casual", "outdoor", "bohemian"},
				MoodTags:      []string{"relaxed", "social", "joyful"},
				IsActive:      true,
			},
		},
		{
			hostPlace: "Industrial Arts Gallery",
			event: Event{
				Title:         "Abstract Dreams Exhibition",
				Description:   "Opening reception for new abstract expressionist works by local emerging artists.",
				EventType:     "exhibition",
				LocationName:  "Main Gallery",
				Address:       "321 Factory Street",
				City:          "Los Angeles",
				StartDate:     day(3),
				EndDate:       &exhibitionEnd,
				StartTime:     "19:00",
				PriceInfo:     "Free",
				AestheticTags: []string{"contemporary", "artistic", "bold"},
				MoodTags:      []string{"inspiring", "thought-provoking", "creative"},
				IsActive:      true,
			},
		},
		{
			event: Event{
				Title:         "Sunday Farmers Market",
				Description:   "Weekly market featuring local produce, artisanal foods, and handmade crafts.",
				EventType:     "market",
				LocationName:  "Central Park Square",
				Address:       "100 Park Avenue",
				City:          "Portland",
				StartDate:     day(5),
				StartTime:     "09:00",
				PriceInfo:     "Free entry",
				AestheticTags: []string{"natural", "community", "fresh"},
				MoodTags:      []string{"lively", "friendly", "wholesome"},
				IsActive:      true,
			},
		},
	}
}

// Seed inserts the sample places and events, skipping any that already
// exist by name or title. Re-running it is safe.
func Seed(ctx context.Context, store Seeder, today time.Time) (SeedResult, error) {
	var result SeedResult
	byName := make(map[string]primitive.ObjectID)

	for _, p := range SamplePlaces() {
		place := p
		created, err := store.EnsurePlace(ctx, &place)
		if err != nil {
			return result, err
		}
		byName[place.Name] = place.ID
		if created {
			result.PlacesCreated = append(result.PlacesCreated, place.Name)
		}
	}

	for _, s := range sampleEvents(today) {
		event := s.event
		if id, ok := byName[s.hostPlace]; ok && s.hostPlace != "" {
			event.PlaceID = &id
		}
		created, err := store.EnsureEvent(ctx, &event)
		if err != nil {
			return result, err
		}
		if created {
			result.EventsCreated = append(result.EventsCreated, event.Title)
		}
	}

	return result, nil
}
