package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is a SQLite-backed vector store holding one named collection.
// Entries from other collections share the database file but never
// appear in queries or stats.
type Store struct {
	db         *sql.DB
	path       string
	collection string
}

// NewStore creates a new SQLite vector store at the specified data directory.
// If dataDir is empty, defaults to ~/.quaero/data/index.db. If collection
// is empty, the default collection is used.
func NewStore(dataDir, collection string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".quaero", "data")
	}
	if collection == "" {
		collection = domain.DefaultCollection
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:         db,
		path:       dbPath,
		collection: collection,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Collection returns the collection name this store reads and writes.
func (s *Store) Collection() string {
	return s.collection
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Add inserts entries into the collection. Existing ids are overwritten.
func (s *Store) Add(ctx context.Context, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (collection, id, doc_idx, chunk_idx, content, metadata, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			doc_idx = excluded.doc_idx,
			chunk_idx = excluded.chunk_idx,
			content = excluded.content,
			metadata = excluded.metadata,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		metadataJSON, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata: %w", err)
		}

		embeddingBlob := float32SliceToBytes(entry.Vector)

		if _, err := stmt.ExecContext(ctx, s.collection, entry.ID, entry.DocIndex,
			entry.ChunkIndex, entry.Text, string(metadataJSON), embeddingBlob); err != nil {
			return fmt.Errorf("saving entry %s: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Query finds the k entries nearest to the query vector, ordered by
// ascending cosine distance. The scan is exhaustive: every entry in the
// collection is compared, so ordering is exact rather than approximate.
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error) {
	results := []domain.SearchResult{}
	if k <= 0 {
		return results, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, metadata, embedding
		FROM entries WHERE collection = ?
	`, s.collection)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, content string
		var metadataJSON sql.NullString
		var embeddingBlob []byte
		if err := rows.Scan(&id, &content, &metadataJSON, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		distance, err := domain.CosineDistance(vector, bytesToFloat32Slice(embeddingBlob))
		if err != nil {
			return nil, fmt.Errorf("comparing against entry %s: %w", id, err)
		}

		var metadata map[string]string
		if metadataJSON.Valid && metadataJSON.String != "" && metadataJSON.String != jsonNull {
			if err := json.Unmarshal([]byte(metadataJSON.String), &metadata); err != nil {
				return nil, fmt.Errorf("unmarshaling metadata for entry %s: %w", id, err)
			}
		}

		results = append(results, domain.SearchResult{
			Text:     content,
			Metadata: metadata,
			Distance: distance,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
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
func (s *Store) Stats(ctx context.Context) (domain.IndexStats, error) {
	var stats domain.IndexStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MAX(doc_idx) + 1, 0)
		FROM entries WHERE collection = ?
	`, s.collection).Scan(&stats.Entries, &stats.Documents)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("querying stats: %w", err)
	}
	return stats, nil
}

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
