// Package sqlite provides a SQLite-backed implementation of the vector store port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Embeddings are stored as little-endian
// float32 blobs alongside the chunk text and metadata.
//
// Similarity queries run as an exhaustive scan over the collection, computing exact
// cosine distances in Go. At the index sizes this tool targets, a full scan is
// faster than maintaining an approximate index and keeps result ordering exact.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.quaero/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
