package retrieval

import "sort"

// DefaultRRFConstant is the standard reciprocal rank fusion constant.
// Larger values flatten the contribution curve across ranks.
const DefaultRRFConstant = 60.0

// Fuse merges multiple ranked result lists into a single ranking using
// reciprocal rank fusion: each passage at zero-based rank r contributes
// 1/(r+kConstant) to its accumulated score, keyed by passage identity.
// The output is sorted by score descending; passages with equal scores
// keep the order in which they were first seen across the input lists.
func Fuse(lists []RankedList, kConstant float64) []ScoredPassage {
	entries := make(map[string]*ScoredPassage)
	// fused keeps pointers in first-seen order so the stable sort below
	// preserves that order under equal scores.
	fused := make([]*ScoredPassage, 0)

	for _, list := range lists {
		for rank, passage := range list {
			contribution := 1.0 / (float64(rank) + kConstant)
			key := passage.Key()
			if e, seen := entries[key]; seen {
				e.Score += contribution
				continue
			}
			e := &ScoredPassage{Passage: passage, Score: contribution}
			entries[key] = e
			fused = append(fused, e)
		}
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})

	results := make([]ScoredPassage, len(fused))
	for i, e := range fused {
		results[i] = *e
	}
	return results
}
