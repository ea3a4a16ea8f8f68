package driven

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// DocumentSource fetches documents from a location on disk and watches
// it for changes. The filesystem connector implements this interface.
type DocumentSource interface {
	// Dir returns the directory being read.
	Dir() string

	// Load reads every document currently present.
	// Returns domain.ErrNotFound when the directory does not exist.
	Load(ctx context.Context) ([]domain.Document, error)

	// Watch listens for changes to the underlying documents. The
	// returned channel closes when ctx is cancelled or the source
	// is closed.
	Watch(ctx context.Context) (<-chan domain.FileChange, error)

	// Close releases watch resources.
	Close() error
}
