// Package chunker provides a sliding-window text chunking processor.
package chunker

import (
	"context"
	"fmt"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// Processor splits document content into overlapping chunks.
// Windows are measured in runes, so multi-byte text never splits inside
// a character. It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in runes.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between consecutive chunks in runes.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a new chunker processor with the given options.
// The overlap must be smaller than the chunk size: an overlap that big
// could never advance through the document.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, p.chunkSize)
	}
	if p.overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must not be negative, got %d", domain.ErrInvalidInput, p.overlap)
	}
	if p.overlap >= p.chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d", domain.ErrInvalidInput, p.overlap, p.chunkSize)
	}

	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
//
// Every chunk starts exactly overlap runes before the previous chunk
// ended, so consecutive chunks share exactly overlap runes and the
// document can be reconstructed from them.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	runes := []rune(doc.Content)
	total := len(runes)

	estimated := total/(p.chunkSize-p.overlap) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	start := 0
	for start < total {
		end := start + p.chunkSize
		if end >= total {
			end = total
		} else {
			end = p.cutPoint(runes, start, end)
		}

		chunks = append(chunks, domain.Chunk{
			Text:     string(runes[start:end]),
			Index:    len(chunks),
			Metadata: domain.CloneMetadata(doc.Metadata),
		})

		if end == total {
			break
		}
		start = end - p.overlap
	}

	return chunks, nil
}

// cutPoint picks where to end the chunk whose hard window is
// runes[start:limit]. The latest boundary of the strongest kind wins:
// paragraph break, then newline, then sentence end, then word gap.
// Boundaries at or before start+overlap cannot be used, the next chunk
// has to begin after the current one started. Without a usable boundary
// the hard limit stands.
func (p *Processor) cutPoint(runes []rune, start, limit int) int {
	minCut := start + p.overlap + 1
	newline, sentence, space := -1, -1, -1

	for i := limit - 1; i+1 >= minCut; i-- {
		cut := i + 1
		switch c := runes[i]; {
		case c == '\n' && i > 0 && runes[i-1] == '\n':
			// Paragraph break, nothing outranks it
			return cut
		case c == '\n':
			if newline < 0 {
				newline = cut
			}
		case c == ' ' && i > 0 && isSentenceEnd(runes[i-1]):
			if sentence < 0 {
				sentence = cut
			}
		case c == ' ':
			if space < 0 {
				space = cut
			}
		}
	}

	switch {
	case newline >= 0:
		return newline
	case sentence >= 0:
		return sentence
	case space >= 0:
		return space
	}
	return limit
}

func isSentenceEnd(c rune) bool {
	return c == '.' || c == '!' || c == '?'
}
