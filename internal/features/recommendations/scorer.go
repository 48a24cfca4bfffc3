package recommendations

import (
	"slices"

	"github.com/xyz-asif/spire/internal/features/places"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scoring weights
const (
	AestheticWeight       = 10
	MoodWeight            = 8
	VerifiedBonus         = 5
	PopularBonus          = 3
	PopularSavesThreshold = 10

	FallbackScore = 50.0
	MinScore      = 0.0
	MaxScore      = 100.0
)

// Match reasons
const (
	ReasonAesthetic = "aesthetic match"
	ReasonMood      = "mood match"
	ReasonVerified  = "verified place"
	ReasonPopular   = "popular with users"
	ReasonFallback  = "popular place"
)

// PlaceSet is a set of place ids
type PlaceSet map[primitive.ObjectID]struct{}

// Has reports whether id is in the set
func (s PlaceSet) Has(id primitive.ObjectID) bool {
	_, ok := s[id]
	return ok
}

// ScoredCandidate is a place with its score and the reasons behind it
type ScoredCandidate struct {
	Place        places.Place
	Score        float64
	MatchReasons []string
}

// ScoreCandidates scores the catalog against profile. A nil profile takes
// the fallback path: every active place, most viewed first, at FallbackScore.
// On the profile path places in exclude are skipped, and places that earn
// nothing are dropped. Output follows catalog order.
func ScoreCandidates(profile *TagProfile, catalog []places.Place, exclude PlaceSet) []ScoredCandidate {
	if profile == nil {
		return fallbackCandidates(catalog)
	}

	out := make([]ScoredCandidate, 0, len(catalog))
	for _, place := range catalog {
		if !place.IsActive || exclude.Has(place.ID) {
			continue
		}
		if c, ok := scorePlace(profile, place); ok {
			out = append(out, c)
		}
	}
	return out
}

func scorePlace(profile *TagProfile, place places.Place) (ScoredCandidate, bool) {
	var score float64
	var reasons []string

	aestheticHit := false
	for _, tag := range place.AestheticTags {
		if n := profile.Aesthetic.Count(tag); n > 0 {
			score += float64(n * AestheticWeight)
			aestheticHit = true
		}
	}
	if aestheticHit {
		reasons = append(reasons, ReasonAesthetic)
	}

	moodHit := false
	for _, tag := range place.MoodTags {
		if n := profile.Mood.Count(tag); n > 0 {
			score += float64(n * MoodWeight)
			moodHit = true
		}
	}
	if moodHit {
		reasons = append(reasons, ReasonMood)
	}

	if place.Verified {
		score += VerifiedBonus
		reasons = append(reasons, ReasonVerified)
	}

	if place.SavesCount > PopularSavesThreshold {
		score += PopularBonus
		reasons = append(reasons, ReasonPopular)
	}

	if score <= 0 {
		return ScoredCandidate{}, false
	}

	return ScoredCandidate{
		Place:        place,
		Score:        clampScore(score),
		MatchReasons: reasons,
	}, true
}

func fallbackCandidates(catalog []places.Place) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(catalog))
	for _, place := range catalog {
		if !place.IsActive {
			continue
		}
		out = append(out, ScoredCandidate{
			Place:        place,
			Score:        FallbackScore,
			MatchReasons: []string{ReasonFallback},
		})
	}
	slices.SortStableFunc(out, func(a, b ScoredCandidate) int {
		return b.Place.ViewsCount - a.Place.ViewsCount
	})
	return out
}

func clampScore(score float64) float64 {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
