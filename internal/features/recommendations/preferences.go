package recommendations

import (
	"github.com/xyz-asif/spire/internal/features/content"
	"github.com/xyz-asif/spire/internal/features/users"
)

// FavoriteCategories picks the most frequent aesthetic tags across the
// user's posts (tags and aesthetic) and boards. Ties keep first-seen order.
func FavoriteCategories(posts []content.Post, boards []content.Board) []string {
	var counter TagCounter
	for _, post := range posts {
		counter.Add(post.Tags...)
		counter.Add(post.Aesthetic)
	}
	for _, board := range boards {
		counter.Add(board.Tags...)
	}

	top := counter.MostCommon(users.MaxFavoriteCategories)
	out := make([]string, len(top))
	for i, tc := range top {
		out[i] = tc.Tag
	}
	return out
}
