package mcp

import (
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retriever provides similarity search over the index.
	Retriever driving.Retriever

	// Assistant answers questions from retrieved chunks.
	Assistant driving.Assistant

	// Advisor produces rule-based travel advisories.
	Advisor driving.Advisor

	// Reporter produces LLM weather analyses.
	Reporter driving.Reporter

	// Reports backs the weather resources with raw report files.
	Reports driven.ReportStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetriever
	}
	// The remaining ports are optional; their tools and resources
	// answer with a clear error or an empty result when unset.
	return nil
}
