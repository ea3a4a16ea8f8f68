// Package tui provides the interactive chat interface for quaero.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the chat UI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers questions grounded in the indexed documents.
	Assistant driving.Assistant
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistant
	}
	return nil
}
