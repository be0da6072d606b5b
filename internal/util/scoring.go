package util

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// MatchIndices returns the indices of candidates that fuzzy-match query,
// in their original order. An empty query matches everything.
func MatchIndices(query string, candidates []string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]int, len(candidates))
		for i := range candidates {
			out[i] = i
		}
		return out
	}
	matches := fuzzy.Find(query, candidates)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Index)
	}
	sort.Ints(out)
	return out
}
