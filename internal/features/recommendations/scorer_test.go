package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/spire/internal/features/content"
	"github.com/xyz-asif/spire/internal/features/places"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPlace(name string, mutate func(*places.Place)) places.Place {
	p := places.Place{ID: primitive.NewObjectID(), Name: name, IsActive: true}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func minimalistProfile(t *testing.T) *TagProfile {
	t.Helper()
	p, ok := BuildProfile(ProfileSources{Posts: []content.Post{
		{Tags: []string{"minimalist", "bright"}, Aesthetic: "modern"},
	}})
	require.True(t, ok)
	return &p
}

func TestScoreCandidates_AestheticOnly(t *testing.T) {
	place := newPlace("Studio", func(p *places.Place) {
		p.AestheticTags = []string{"minimalist", "modern"}
	})

	got := ScoreCandidates(minimalistProfile(t), []places.Place{place}, nil)

	require.Len(t, got, 1)
	assert.Equal(t, 20.0, got[0].Score)
	assert.Equal(t, []string{ReasonAesthetic}, got[0].MatchReasons)
}

func TestScoreCandidates_VerifiedAndPopular(t *testing.T) {
	place := newPlace("Studio", func(p *places.Place) {
		p.AestheticTags = []string{"minimalist", "modern"}
		p.Verified = true
		p.SavesCount = 15
	})

	got := ScoreCandidates(minimalistProfile(t), []places.Place{place}, nil)

	require.Len(t, got, 1)
	assert.Equal(t, 28.0, got[0].Score)
	assert.Equal(t, []string{ReasonAesthetic, ReasonVerified, ReasonPopular}, got[0].MatchReasons)
}

func TestScoreCandidates_MoodWeight(t *testing.T) {
	var profile TagProfile
	profile.Mood.Add("cozy", "cozy", "calm")
	place := newPlace("Nook", func(p *places.Place) {
		p.MoodTags = []string{"cozy", "calm", "loud"}
	})

	got := ScoreCandidates(&profile, []places.Place{place}, nil)

	require.Len(t, got, 1)
	assert.Equal(t, float64(2*MoodWeight+MoodWeight), got[0].Score)
	assert.Equal(t, []string{ReasonMood}, got[0].MatchReasons)
}

func TestScoreCandidates_PopularNeedsMoreThanThreshold(t *testing.T) {
	var profile TagProfile
	profile.Aesthetic.Add("retro")
	place := newPlace("Diner", func(p *places.Place) {
		p.SavesCount = PopularSavesThreshold
	})

	assert.Empty(t, ScoreCandidates(&profile, []places.Place{place}, nil))
}

func TestScoreCandidates_ClampsToMax(t *testing.T) {
	var profile TagProfile
	for i := 0; i < 20; i++ {
		profile.Aesthetic.Add("maximal")
	}
	place := newPlace("Gallery", func(p *places.Place) {
		p.AestheticTags = []string{"maximal"}
		p.Verified = true
	})

	got := ScoreCandidates(&profile, []places.Place{place}, nil)

	require.Len(t, got, 1)
	assert.Equal(t, MaxScore, got[0].Score)
}

func TestScoreCandidates_DropsZeroAndSkipsExcludedOrInactive(t *testing.T) {
	profile := minimalistProfile(t)
	match := newPlace("Match", func(p *places.Place) { p.AestheticTags = []string{"modern"} })
	excluded := newPlace("Excluded", func(p *places.Place) { p.AestheticTags = []string{"modern"} })
	inactive := newPlace("Inactive", func(p *places.Place) {
		p.AestheticTags = []string{"modern"}
		p.IsActive = false
	})
	nothing := newPlace("Nothing", func(p *places.Place) { p.AestheticTags = []string{"gothic"} })

	got := ScoreCandidates(profile, []places.Place{match, excluded, inactive, nothing}, PlaceSet{excluded.ID: {}})

	require.Len(t, got, 1)
	assert.Equal(t, match.ID, got[0].Place.ID)
}

func TestScoreCandidates_EmptyCatalog(t *testing.T) {
	assert.Empty(t, ScoreCandidates(minimalistProfile(t), nil, nil))
	assert.Empty(t, ScoreCandidates(nil, nil, nil))
}

func TestScoreCandidates_FallbackByViews(t *testing.T) {
	low := newPlace("Low", func(p *places.Place) { p.ViewsCount = 1 })
	high := newPlace("High", func(p *places.Place) { p.ViewsCount = 90 })
	mid := newPlace("Mid", func(p *places.Place) { p.ViewsCount = 40 })
	hidden := newPlace("Hidden", func(p *places.Place) {
		p.ViewsCount = 1000
		p.IsActive = false
	})

	got := ScoreCandidates(nil, []places.Place{low, high, mid, hidden}, nil)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"High", "Mid", "Low"}, []string{got[0].Place.Name, got[1].Place.Name, got[2].Place.Name})
	for _, c := range got {
		assert.Equal(t, FallbackScore, c.Score)
		assert.Equal(t, []string{ReasonFallback}, c.MatchReasons)
	}
}

func TestScoreCandidates_ScoresStayInRange(t *testing.T) {
	var profile TagProfile
	profile.Aesthetic.Add("a", "a", "a", "b", "c")
	profile.Mood.Add("m", "m", "n")

	catalog := []places.Place{
		newPlace("1", func(p *places.Place) {
			p.AestheticTags = []string{"a", "b", "c"}
			p.MoodTags = []string{"m", "n"}
			p.Verified = true
			p.SavesCount = 99
		}),
		newPlace("2", func(p *places.Place) { p.MoodTags = []string{"n"} }),
		newPlace("3", func(p *places.Place) { p.Verified = true }),
	}

	for _, c := range ScoreCandidates(&profile, catalog, nil) {
		assert.GreaterOrEqual(t, c.Score, MinScore)
		assert.LessOrEqual(t, c.Score, MaxScore)
		assert.Greater(t, c.Score, 0.0)
	}
}
