package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xyz-asif/spire/internal/features/behaviors"
	"github.com/xyz-asif/spire/internal/features/content"
)

func TestTagCounter_ZeroValue(t *testing.T) {
	var c TagCounter
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Count("cozy"))
	assert.Empty(t, c.MostCommon(3))
}

func TestTagCounter_AddAccumulatesAndSkipsEmpty(t *testing.T) {
	var c TagCounter
	c.Add("cozy", "", "warm", "cozy")
	c.Add("")

	assert.Equal(t, 2, c.Count("cozy"))
	assert.Equal(t, 1, c.Count("warm"))
	assert.Equal(t, 0, c.Count(""))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []TagCount{{"cozy", 2}, {"warm", 1}}, c.MostCommon(0))
}

func TestTagCounter_MostCommonKeepsFirstSeenOnTies(t *testing.T) {
	var c TagCounter
	c.Add("b", "a", "c", "a", "c")

	got := c.MostCommon(0)
	assert.Equal(t, []TagCount{{"a", 2}, {"c", 2}, {"b", 1}}, got)
	assert.Len(t, c.MostCommon(2), 2)
}

func TestBuildProfile_NoSignals(t *testing.T) {
	_, ok := BuildProfile(ProfileSources{})
	assert.False(t, ok)

	// Posts with nothing but empty fields still count as no signal
	_, ok = BuildProfile(ProfileSources{Posts: []content.Post{{Title: "untagged"}}})
	assert.False(t, ok)
}

func TestBuildProfile_AggregatesAllSources(t *testing.T) {
	src := ProfileSources{
		Posts: []content.Post{
			{Tags: []string{"minimalist", "bright"}, Aesthetic: "modern", Mood: "calm"},
			{Tags: []string{"minimalist"}, Mood: "calm"},
		},
		Boards:             []content.Board{{Tags: []string{"bright", "industrial"}}},
		Behaviors:          []behaviors.Behavior{{Tags: []string{"vintage"}}},
		FavoriteCategories: []string{"minimalist"},
	}

	p, ok := BuildProfile(src)
	assert.True(t, ok)
	assert.Equal(t, 3, p.Aesthetic.Count("minimalist"))
	assert.Equal(t, 2, p.Aesthetic.Count("bright"))
	assert.Equal(t, 1, p.Aesthetic.Count("modern"))
	assert.Equal(t, 1, p.Aesthetic.Count("industrial"))
	assert.Equal(t, 1, p.Aesthetic.Count("vintage"))
	assert.Equal(t, 2, p.Mood.Count("calm"))
	assert.Zero(t, p.Aesthetic.Count("calm"))
}

func TestBuildProfile_OnlyRecentBehaviorsCount(t *testing.T) {
	recent := make([]behaviors.Behavior, RecentBehaviorWindow+10)
	for i := range recent {
		recent[i] = behaviors.Behavior{Tags: []string{"recent"}}
	}
	recent[RecentBehaviorWindow] = behaviors.Behavior{Tags: []string{"stale"}}

	p, ok := BuildProfile(ProfileSources{Behaviors: recent})
	assert.True(t, ok)
	assert.Equal(t, RecentBehaviorWindow, p.Aesthetic.Count("recent"))
	assert.Zero(t, p.Aesthetic.Count("stale"))
}

func TestBuildProfile_FavoriteCategoriesAlone(t *testing.T) {
	p, ok := BuildProfile(ProfileSources{FavoriteCategories: []string{"boho"}})
	assert.True(t, ok)
	assert.Equal(t, 1, p.Aesthetic.Count("boho"))
	assert.Equal(t, 0, p.Mood.Len())
}
