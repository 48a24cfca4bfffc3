package recommendations

import (
	"slices"

	"github.com/xyz-asif/spire/internal/features/behaviors"
	"github.com/xyz-asif/spire/internal/features/content"
)

// RecentBehaviorWindow is how many of the newest behaviors feed a profile
const RecentBehaviorWindow = 50

// TagCount is one tag and its occurrence count
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCounter counts tag occurrences and remembers first-seen order.
// The zero value is ready to use.
type TagCounter struct {
	counts map[string]int
	order  []string
}

// Add counts one occurrence of each tag. Empty strings are ignored.
func (c *TagCounter) Add(tags ...string) {
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if c.counts == nil {
			c.counts = make(map[string]int)
		}
		if _, seen := c.counts[tag]; !seen {
			c.order = append(c.order, tag)
		}
		c.counts[tag]++
	}
}

// Count returns the occurrences of tag, 0 when absent
func (c TagCounter) Count(tag string) int {
	return c.counts[tag]
}

// Len returns the number of distinct tags
func (c TagCounter) Len() int {
	return len(c.order)
}

// MostCommon returns up to n tags by descending count. Equal counts keep
// first-seen order. n <= 0 returns every tag.
func (c TagCounter) MostCommon(n int) []TagCount {
	out := make([]TagCount, len(c.order))
	for i, tag := range c.order {
		out[i] = TagCount{Tag: tag, Count: c.counts[tag]}
	}
	slices.SortStableFunc(out, func(a, b TagCount) int {
		return b.Count - a.Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TagProfile is a user's taste, split into aesthetic and mood tags
type TagProfile struct {
	Aesthetic TagCounter
	Mood      TagCounter
}

// Empty reports whether neither counter holds a tag
func (p TagProfile) Empty() bool {
	return p.Aesthetic.Len() == 0 && p.Mood.Len() == 0
}

// ProfileSources are the user signals a profile is built from.
// Behaviors must already be limited to the recent window, newest first.
type ProfileSources struct {
	Posts              []content.Post
	Boards             []content.Board
	Behaviors          []behaviors.Behavior
	FavoriteCategories []string
}

// BuildProfile aggregates every signal into a TagProfile. The second
// result is false when the user has no usable signal at all.
func BuildProfile(src ProfileSources) (TagProfile, bool) {
	var p TagProfile

	for _, post := range src.Posts {
		p.Aesthetic.Add(post.Tags...)
		p.Aesthetic.Add(post.Aesthetic)
		p.Mood.Add(post.Mood)
	}

	for _, board := range src.Boards {
		p.Aesthetic.Add(board.Tags...)
	}

	recent := src.Behaviors
	if len(recent) > RecentBehaviorWindow {
		recent = recent[:RecentBehaviorWindow]
	}
	for _, b := range recent {
		p.Aesthetic.Add(b.Tags...)
	}

	p.Aesthetic.Add(src.FavoriteCategories...)

	if p.Empty() {
		return TagProfile{}, false
	}
	return p, true
}
