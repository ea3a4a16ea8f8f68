package domain

// Document represents a loaded source document ready for ingestion.
// It is immutable once produced by a loader and is consumed exactly
// once by the retrieval index.
type Document struct {
	// Content is the full text of the document.
	Content string

	// Metadata contains descriptive key-value pairs (source file name,
	// type, path). Every chunk produced from this document inherits it.
	Metadata map[string]string
}

// Chunk represents an overlapping window of document text.
// Chunks are the unit of embedding and retrieval. Identity is assigned
// by the retrieval index from (document index, chunk index), not here.
type Chunk struct {
	// Text is the chunk content.
	Text string

	// Index is the ordinal position within the source document.
	Index int

	// Metadata is inherited from the parent Document.
	Metadata map[string]string
}

// CloneMetadata returns a copy of a metadata map so that chunks and
// index entries never alias the caller's map. A nil input yields an
// empty, non-nil map.
func CloneMetadata(metadata map[string]string) map[string]string {
	cloned := make(map[string]string, len(metadata))
	for k, v := range metadata {
		cloned[k] = v
	}
	return cloned
}
