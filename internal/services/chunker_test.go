package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextSingleShortParagraph(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("A short reference paragraph.", 1000, 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short reference paragraph.", chunks[0])
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	assert.Empty(t, chunker.ChunkText("", 1000, 200))
	assert.Empty(t, chunker.ChunkText("\n\n  \n\n", 1000, 200))
}

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	p1 := strings.Repeat("alpha ", 12) + "end of first paragraph"
	p2 := strings.Repeat("beta ", 12) + "end of second paragraph"
	text := p1 + "\n\n" + p2

	chunks := chunker.ChunkText(text, 100, 0)
	require.Len(t, chunks, 2)
	assert.Equal(t, p1, chunks[0])
	assert.Equal(t, p2, chunks[1])
}

func TestChunkTextOverlapCarriesTailForward(t *testing.T) {
	chunker := NewTextChunker()

	p1 := strings.Repeat("alpha ", 12) + "end of first paragraph"
	p2 := strings.Repeat("beta ", 12) + "end of second paragraph"
	text := p1 + "\n\n" + p2

	chunks := chunker.ChunkText(text, 100, 20)
	require.Len(t, chunks, 2)

	tail := chunks[0][len(chunks[0])-20:]
	assert.True(t, strings.HasPrefix(chunks[1], tail),
		"second chunk should start with the tail of the first")
	assert.Contains(t, chunks[1], "end of second paragraph")
}

func TestChunkTextFallsBackToSentences(t *testing.T) {
	chunker := NewTextChunker()

	sentence := "This single sentence is repeated to exceed the chunk size limit"
	para := strings.Repeat(sentence+". ", 6)

	chunks := chunker.ChunkText(para, 150, 0)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.Contains(t, chunk, "repeated to exceed")
	}
}
