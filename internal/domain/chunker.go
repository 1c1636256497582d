package domain

import "strings"

// ChunkerVersion identifies the chunking algorithm used to build an index,
// so a corpus can be re-chunked when the algorithm changes.
type ChunkerVersion string

const (
	// ChunkerVersionV1 is the paragraph-accumulating chunker.
	ChunkerVersionV1 ChunkerVersion = "v1"
)

// MaxChunkLength is the maximum chunk length in characters. Paragraphs are
// packed greedily into chunks up to this size.
const MaxChunkLength = 4000

// Chunk represents a single piece of a document.
type Chunk struct {
	Ordinal int    // Sequence number (0-indexed)
	Content string // The actual text content
}

// Chunker defines the interface for splitting document text into chunks.
type Chunker interface {
	Chunk(body string) ([]Chunk, error)
	Version() ChunkerVersion
}

type paragraphChunker struct{}

// NewChunker creates the default paragraph-accumulating Chunker.
func NewChunker() Chunker {
	return &paragraphChunker{}
}

func (c *paragraphChunker) Version() ChunkerVersion {
	return ChunkerVersionV1
}

// Chunk splits the body on newlines and packs consecutive paragraphs into
// chunks of at most MaxChunkLength characters. Chunks are trimmed and empty
// chunks are dropped.
func (c *paragraphChunker) Chunk(body string) ([]Chunk, error) {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var contents []string
	var current strings.Builder

	for _, paragraph := range strings.Split(normalized, "\n") {
		if current.Len()+len(paragraph)+1 <= MaxChunkLength {
			current.WriteString(paragraph)
			current.WriteString("\n")
			continue
		}
		if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
			contents = append(contents, trimmed)
		}
		current.Reset()
		current.WriteString(paragraph)
		current.WriteString("\n")
	}
	if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
		contents = append(contents, trimmed)
	}

	chunks := make([]Chunk, 0, len(contents))
	for i, content := range contents {
		chunks = append(chunks, Chunk{Ordinal: i, Content: content})
	}
	return chunks, nil
}
