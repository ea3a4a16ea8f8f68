package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory implementation of driven.VectorStore.
// Used by tests and as an ephemeral index when no path is configured.
type VectorStore struct {
	mu      sync.RWMutex
	entries map[string]domain.IndexEntry
}

// NewVectorStore creates a new in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		entries: make(map[string]domain.IndexEntry),
	}
}

// Add inserts entries, overwriting any existing ids.
func (s *VectorStore) Add(_ context.Context, entries []domain.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		s.entries[entry.ID] = entry
	}
	return nil
}

// Query scans every entry and returns the k nearest by cosine distance.
func (s *VectorStore) Query(_ context.Context, vector []float32, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		return []domain.SearchResult{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.SearchResult, 0, len(s.entries))
	for _, entry := range s.entries {
		distance, err := domain.CosineDistance(vector, entry.Vector)
		if err != nil {
			return nil, fmt.Errorf("comparing against entry %s: %w", entry.ID, err)
		}
		results = append(results, domain.SearchResult{
			Text:     entry.Text,
			Metadata: entry.Metadata,
			Distance: distance,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Stats reports the entry count and the next free document index.
func (s *VectorStore) Stats(_ context.Context) (domain.IndexStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.IndexStats{Entries: len(s.entries)}
	for _, entry := range s.entries {
		if entry.DocIndex+1 > stats.Documents {
			stats.Documents = entry.DocIndex + 1
		}
	}
	return stats, nil
}

// Close releases resources (no-op for memory store).
func (s *VectorStore) Close() error {
	return nil
}
