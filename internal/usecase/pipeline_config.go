package usecase

import (
	"fmt"

	"vta-orchestrator/internal/usecase/retrieval"
)

// PipelineConfig holds tunable parameters for the answer pipeline.
type PipelineConfig struct {
	// ExpansionCount is the number of alternative queries requested from
	// the LLM during query expansion.
	ExpansionCount int

	// SearchK is the number of passages fetched per retrieval query,
	// including the raw link-based search.
	SearchK int

	// RRFK is the reciprocal rank fusion constant. Standard value is 60.
	RRFK float64

	// AnswerMaxTokens caps the generated answer length.
	AnswerMaxTokens int
}

// DefaultPipelineConfig returns the standard pipeline parameters.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		ExpansionCount:  retrieval.DefaultExpansionCount,
		SearchK:         retrieval.DefaultSearchK,
		RRFK:            retrieval.DefaultRRFConstant,
		AnswerMaxTokens: 512,
	}
}

// Validate checks that the configuration values are usable.
func (c PipelineConfig) Validate() error {
	if c.ExpansionCount <= 0 {
		return fmt.Errorf("expansionCount must be positive, got %d", c.ExpansionCount)
	}
	if c.SearchK <= 0 {
		return fmt.Errorf("searchK must be positive, got %d", c.SearchK)
	}
	if c.RRFK <= 0 {
		return fmt.Errorf("rrfK must be positive, got %f", c.RRFK)
	}
	if c.AnswerMaxTokens < 0 {
		return fmt.Errorf("answerMaxTokens must be non-negative, got %d", c.AnswerMaxTokens)
	}
	return nil
}
