package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xyz-asif/spire/internal/features/content"
)

func TestFavoriteCategories_OrderedByFrequency(t *testing.T) {
	posts := []content.Post{
		{Tags: []string{"a", "b", "c", "d", "e", "f"}, Aesthetic: "a"},
		{Tags: []string{"a", "b", "c", "d", "e"}},
		{Tags: []string{"a", "b", "c", "d"}},
	}
	boards := []content.Board{{Tags: []string{"a", "b", "c"}}, {Tags: []string{"a", "b"}}}

	got := FavoriteCategories(posts, boards)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
}

func TestFavoriteCategories_TiesKeepFirstSeen(t *testing.T) {
	posts := []content.Post{{Tags: []string{"z", "y"}, Aesthetic: "x"}}
	boards := []content.Board{{Tags: []string{"w", "v", "u"}}}

	got := FavoriteCategories(posts, boards)

	assert.Equal(t, []string{"z", "y", "x", "w", "v"}, got)
}

func TestFavoriteCategories_IgnoresMoodAndEmpty(t *testing.T) {
	got := FavoriteCategories([]content.Post{{Mood: "calm"}}, nil)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
