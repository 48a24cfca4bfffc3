package recommendations

import (
	"cmp"
	"slices"
)

// Result size limits. MaxLimit bounds requests over HTTP only.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// NormalizeLimit maps a request limit onto [1, MaxLimit], 0 or less meaning DefaultLimit
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// RankAndLimit orders candidates by score, highest first, and keeps the
// top limit (0 or less meaning DefaultLimit). Equal scores keep their input
// order. The input is not modified.
func RankAndLimit(candidates []ScoredCandidate, limit int) []ScoredCandidate {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b ScoredCandidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Score = clampScore(ranked[i].Score)
	}
	return ranked
}
