package services

import (
	"strings"
)

// TextChunker splits reference documents into overlapping chunks sized for the
// embedding model before they are upserted into Qdrant.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText implements TextChunker. Paragraph boundaries are preferred;
// paragraphs longer than the chunk size are split on sentence boundaries.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		chunk := strings.TrimSpace(current.String())
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
		if overlap > 0 && chunk != "" {
			current.WriteString(lastNChars(chunk, overlap))
			current.WriteString(" ")
		}
	}

	appendPiece := func(piece string) {
		if current.Len()+len(piece) > maxChunkSize && current.Len() > 0 {
			flush()
		}
		current.WriteString(piece)
		current.WriteString("\n\n")
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(para) <= maxChunkSize {
			appendPiece(para)
			continue
		}

		for _, sentence := range splitSentences(para) {
			appendPiece(sentence)
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		chunk := strings.TrimSpace(current.String())
		chunks = append(chunks, chunk)
	}

	return chunks
}

func splitSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func lastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
