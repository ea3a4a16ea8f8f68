package driving

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// Retriever provides document ingestion and similarity search to external
// actors. Ingestion is append-only: re-ingesting the same content indexes
// it again under fresh ids.
type Retriever interface {
	// Ingest chunks, embeds, and indexes the given documents.
	// All chunks of a call are embedded in a single batch request.
	// Returns the number of chunks indexed.
	Ingest(ctx context.Context, docs []domain.Document) (int, error)

	// Search returns the k most similar chunks for a query, ordered by
	// ascending distance. k <= 0 uses the configured default.
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)

	// Stats reports the current index size.
	Stats(ctx context.Context) (domain.IndexStats, error)
}
