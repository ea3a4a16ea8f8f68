package driven

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// VectorStore persists index entries and answers similarity queries.
// Implementations hold one named collection; entries from different
// collections never mix.
type VectorStore interface {
	// Add inserts entries into the collection. Existing ids are
	// overwritten. Implementations must accept an empty slice as a no-op.
	Add(ctx context.Context, entries []domain.IndexEntry) error

	// Query finds the k entries nearest to the query vector, ordered by
	// ascending distance. When fewer than k entries exist, all are
	// returned. An empty collection yields an empty result, not an error.
	Query(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error)

	// Stats reports the entry count and the next free document index.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Close releases resources.
	Close() error
}
