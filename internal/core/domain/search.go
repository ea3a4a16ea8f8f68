package domain

import "fmt"

// IndexEntry is the persisted unit of the vector store: a chunk's text,
// its embedding, and the metadata inherited from the source document.
// Entries are append-only; re-ingestion adds new entries under fresh ids
// rather than updating in place.
type IndexEntry struct {
	// ID is the deterministic chunk identity, "doc_{i}_chunk_{j}".
	ID string

	// DocIndex is the zero-based index of the source document across the
	// lifetime of the index. It is monotonic across ingest calls.
	DocIndex int

	// ChunkIndex is the ordinal position of the chunk within its document.
	ChunkIndex int

	// Vector is the chunk's embedding.
	Vector []float32

	// Text is the chunk content.
	Text string

	// Metadata is the parent document's metadata.
	Metadata map[string]string
}

// EntryID composes the deterministic chunk identity from the global
// document index and the chunk's position within the document.
func EntryID(docIndex, chunkIndex int) string {
	return fmt.Sprintf("doc_%d_chunk_%d", docIndex, chunkIndex)
}

// SearchResult represents a single retrieval hit.
// Results are ordered by ascending Distance (closer = more relevant).
type SearchResult struct {
	// Text is the retrieved chunk content.
	Text string

	// Metadata is the stored entry's metadata.
	Metadata map[string]string

	// Distance is the cosine distance between the query vector and the
	// entry vector. Zero means identical direction.
	Distance float64
}

// IndexStats reports the state of a vector store collection.
type IndexStats struct {
	// Entries is the total number of persisted index entries.
	Entries int

	// Documents is the number of documents ever ingested. Because document
	// indices are assigned sequentially, this doubles as the next free
	// document index, keeping ids distinct across ingest calls and
	// process restarts.
	Documents int
}
