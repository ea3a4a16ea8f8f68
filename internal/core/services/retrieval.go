package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.Retriever = (*RetrievalService)(nil)

// RetrievalService turns documents into indexed chunks and answers
// similarity queries over them.
type RetrievalService struct {
	pipeline  driven.PostProcessorPipeline
	embedding driven.EmbeddingService
	store     driven.VectorStore
	defaultK  int
}

// NewRetrievalService creates a new retrieval service.
// defaultK is the result count used when a query passes k <= 0.
func NewRetrievalService(
	pipeline driven.PostProcessorPipeline,
	embedding driven.EmbeddingService,
	store driven.VectorStore,
	defaultK int,
) *RetrievalService {
	if defaultK <= 0 {
		defaultK = domain.DefaultSearchResults
	}
	return &RetrievalService{
		pipeline:  pipeline,
		embedding: embedding,
		store:     store,
		defaultK:  defaultK,
	}
}

// Ingest chunks, embeds, and indexes the given documents.
//
// Document indices continue from the store's current document count, so
// re-ingesting content appends it again under fresh ids rather than
// replacing the earlier entries. All chunks of the call go to the
// embedding service as one batch and to the store as one write.
func (s *RetrievalService) Ingest(ctx context.Context, docs []domain.Document) (int, error) {
	logger.Section("Document Ingestion")
	logger.Debug("Documents: %d", len(docs))

	if len(docs) == 0 {
		return 0, nil
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading index stats: %w", err)
	}
	base := stats.Documents
	logger.Debug("Base document index: %d", base)

	entries := make([]domain.IndexEntry, 0, len(docs))
	for i := range docs {
		chunks, err := s.pipeline.Process(ctx, &docs[i])
		if err != nil {
			return 0, fmt.Errorf("processing document %d: %w", i, err)
		}

		docIndex := base + i
		for j, chunk := range chunks {
			entries = append(entries, domain.IndexEntry{
				ID:         domain.EntryID(docIndex, j),
				DocIndex:   docIndex,
				ChunkIndex: j,
				Text:       chunk.Text,
				Metadata:   chunk.Metadata,
			})
		}
	}

	if len(entries) == 0 {
		logger.Debug("No chunks produced, nothing to index")
		return 0, nil
	}

	texts := make([]string, len(entries))
	for i := range entries {
		texts[i] = entries[i].Text
	}

	logger.Debug("Embedding %d chunks in one batch", len(texts))
	vectors, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vectors) != len(entries) {
		return 0, fmt.Errorf("embedding count mismatch: got %d vectors for %d chunks", len(vectors), len(entries))
	}
	for i := range entries {
		entries[i].Vector = vectors[i]
	}

	if err := s.store.Add(ctx, entries); err != nil {
		return 0, fmt.Errorf("indexing chunks: %w", err)
	}

	logger.Info("Indexed %d chunks from %d documents", len(entries), len(docs))
	return len(entries), nil
}

// Search returns the k most similar chunks for a query, ordered by
// ascending distance.
func (s *RetrievalService) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	// Return empty for empty query
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	if k <= 0 {
		k = s.defaultK
	}
	logger.Debug("Result count: %d", k)

	vector, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	results, err := s.store.Query(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	logger.Info("Search results: %d", len(results))
	return results, nil
}

// Stats reports the current index size.
func (s *RetrievalService) Stats(ctx context.Context) (domain.IndexStats, error) {
	return s.store.Stats(ctx)
}
