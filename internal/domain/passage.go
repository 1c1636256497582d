package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// PassageMetadata carries the provenance of a retrievable chunk of text.
type PassageMetadata struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	ChunkIndex int    `json:"chunk_index"`
}

// Passage is the unit of retrieval: a chunk of source text plus its provenance.
// Passages are treated as immutable values.
type Passage struct {
	Content  string          `json:"content"`
	Metadata PassageMetadata `json:"metadata"`
}

// Key returns a stable identity for the passage, derived from a canonical
// serialization of content and metadata. Two passages with equal keys are
// the same passage for the purposes of fusion deduplication.
func (p Passage) Key() string {
	// Unit separator keeps field boundaries unambiguous.
	canonical := fmt.Sprintf("%s\x1f%s\x1f%s\x1f%d",
		p.Content, p.Metadata.Title, p.Metadata.URL, p.Metadata.ChunkIndex)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// SearchResult is a passage found via vector search with its similarity score.
type SearchResult struct {
	Passage Passage
	Score   float32
}

// PassageRecord is the persisted form of a passage: a stable ID plus the
// embedding computed for its content.
type PassageRecord struct {
	ID        string
	Passage   Passage
	Embedding []float32
}

// CourseDocument is a scraped source document before chunking.
type CourseDocument struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}
