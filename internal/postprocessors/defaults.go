package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/postprocessors/chunker"
)

// DefaultPipeline builds the standard processing pipeline from chunking
// settings. Currently that is a single chunker stage; further stages
// (stemming, expansion) slot in behind it.
func DefaultPipeline(cfg domain.ChunkingSettings) (*Pipeline, error) {
	proc, err := chunker.New(
		chunker.WithChunkSize(cfg.Size),
		chunker.WithOverlap(cfg.Overlap),
	)
	if err != nil {
		return nil, fmt.Errorf("building chunker: %w", err)
	}

	return NewPipeline(proc), nil
}
