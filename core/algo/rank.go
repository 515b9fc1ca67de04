package algo

import (
	"sort"

	"github.com/madlig/mygameon/schema"
)

// RankRequests sorts requests by their priority score in descending order
// and returns the top 'limit' requests. Ties go to the request with more
// demand, then to the title in lexicographic order. If limit is not positive
// or greater than the number of requests, all requests are returned.
func RankRequests(requests []schema.RankedRequest, limit int) []schema.RankedRequest {
	sort.SliceStable(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.RequestCount != b.RequestCount {
			return a.RequestCount > b.RequestCount
		}
		return a.Title < b.Title
	})
	if limit > 0 && len(requests) > limit {
		return requests[:limit]
	}
	return requests
}

// CountLabels tallies how many requests carry each label.
func CountLabels(requests []schema.RankedRequest) map[schema.PriorityLabel]int {
	counts := make(map[schema.PriorityLabel]int, len(schema.AllPriorityLabels))
	for _, l := range schema.AllPriorityLabels {
		counts[l] = 0
	}
	for _, r := range requests {
		counts[r.Label]++
	}
	return counts
}
