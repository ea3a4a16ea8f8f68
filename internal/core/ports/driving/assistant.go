package driving

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// Assistant answers questions grounded in previously added documents.
type Assistant interface {
	// AddDocuments indexes documents for later retrieval.
	// Returns the number of chunks indexed.
	AddDocuments(ctx context.Context, docs []domain.Document) (int, error)

	// Ask retrieves the k most relevant chunks for the question and asks
	// the LLM to answer from them. k <= 0 uses the configured default.
	//
	// Pipeline failures do not surface as errors: the reply is a fixed
	// user-facing message and the cause is logged. Only context
	// cancellation returns an error.
	Ask(ctx context.Context, question string, k int) (string, error)
}
