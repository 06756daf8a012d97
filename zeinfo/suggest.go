package zeinfo

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestDistance = 3

// suggest returns the closest known spelling of s, or "".
func suggest(s string, candidates []string) string {
	if s == "" || len(candidates) == 0 {
		return ""
	}
	if ranks := fuzzy.RankFindFold(s, candidates); len(ranks) > 0 {
		best := ranks[0]
		for _, r := range ranks[1:] {
			if r.Distance < best.Distance {
				best = r
			}
		}
		return best.Target
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(s, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// hint formats suggest as a message suffix.
func hint(s string, candidates []string) string {
	if m := suggest(s, candidates); m != "" && m != s {
		return fmt.Sprintf(" (did you mean %q?)", m)
	}
	return ""
}
