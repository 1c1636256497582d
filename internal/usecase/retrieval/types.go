package retrieval

import "vta-orchestrator/internal/domain"

// RankedList is an ordered sequence of passages produced by one retrieval
// query. Position within the list (zero-based rank) drives fusion weight.
type RankedList []domain.Passage

// ScoredPassage pairs a passage with its accumulated fusion score.
type ScoredPassage struct {
	Passage domain.Passage
	Score   float64
}
