package search

import "sort"

// DocAngle pairs a document ID with its cosine angle to the query, in
// degrees. Zero means identical term proportions.
type DocAngle struct {
	DocID int     `json:"doc_id"`
	Angle float64 `json:"angle"`
}

// mergeRanked flattens per-worker partial results and orders them by
// ascending angle, ties broken by ascending document ID so the ordering is
// deterministic.
func mergeRanked(partials [][]DocAngle) []DocAngle {
	total := 0
	for _, p := range partials {
		total += len(p)
	}
	merged := make([]DocAngle, 0, total)
	for _, p := range partials {
		merged = append(merged, p...)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Angle != merged[j].Angle {
			return merged[i].Angle < merged[j].Angle
		}
		return merged[i].DocID < merged[j].DocID
	})
	return merged
}
