package domain_test

import (
	"strings"
	"testing"

	"vta-orchestrator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_ShortBodyIsSingleChunk(t *testing.T) {
	chunker := domain.NewChunker()

	chunks, err := chunker.Chunk("first paragraph\nsecond paragraph")
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Ordinal)
	assert.Equal(t, "first paragraph\nsecond paragraph", chunks[0].Content)
}

func TestChunker_SplitsAtMaxLength(t *testing.T) {
	chunker := domain.NewChunker()

	long := strings.Repeat("a", 3000)
	body := long + "\n" + long + "\n" + long

	chunks, err := chunker.Chunk(body)
	require.NoError(t, err)

	require.Len(t, chunks, 3, "3000-char paragraphs cannot be packed together under the 4000 limit")
	for i, c := range chunks {
		assert.Equal(t, i, c.Ordinal)
		assert.LessOrEqual(t, len(c.Content), domain.MaxChunkLength)
	}
}

func TestChunker_PacksParagraphsGreedily(t *testing.T) {
	chunker := domain.NewChunker()

	para := strings.Repeat("b", 1000)
	body := strings.Join([]string{para, para, para, para, para}, "\n")

	chunks, err := chunker.Chunk(body)
	require.NoError(t, err)

	// Three 1000-char paragraphs plus separators fit in one 4000-char chunk.
	require.Len(t, chunks, 2)
	assert.Equal(t, 3*1000+2, len(chunks[0].Content))
}

func TestChunker_EmptyBody(t *testing.T) {
	chunker := domain.NewChunker()

	chunks, err := chunker.Chunk("\n\n   \n")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunker_NormalizesCRLF(t *testing.T) {
	chunker := domain.NewChunker()

	chunks, err := chunker.Chunk("one\r\ntwo\rthree")
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "one\ntwo\nthree", chunks[0].Content)
}
