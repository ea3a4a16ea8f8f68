package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "quaero-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir, "test_collection")
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// testEntry builds an index entry with a deterministic id.
func testEntry(docIdx, chunkIdx int, vec []float32, text string) domain.IndexEntry {
	return domain.IndexEntry{
		ID:         domain.EntryID(docIdx, chunkIdx),
		DocIndex:   docIdx,
		ChunkIndex: chunkIdx,
		Vector:     vec,
		Text:       text,
		Metadata:   map[string]string{"source": "test.txt", "type": "text"},
	}
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	// Test with invalid path (should fail to create directory)
	_, err := NewStore("/invalid\x00path", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "quaero-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir, "")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	// Verify database file was created
	dbPath := filepath.Join(tempDir, "index.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	// Empty collection falls back to the default
	assert.Equal(t, domain.DefaultCollection, store.Collection())

	// Verify database connection is working
	err = store.db.Ping()
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "quaero-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir, "test_collection")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run the initial migration
	store, err = NewStore(tempDir, "test_collection")
	require.NoError(t, err)
	defer store.Close()

	var version int
	err = store.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

// ==================== Add Tests ====================

func TestStore_Add_EmptyIsNoOp(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Add(ctx, nil)
	require.NoError(t, err)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, 0, stats.Documents)
}

func TestStore_Add_OverwritesById(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := testEntry(0, 0, []float32{1, 0, 0}, "original text")
	require.NoError(t, store.Add(ctx, []domain.IndexEntry{first}))

	updated := testEntry(0, 0, []float32{0, 1, 0}, "updated text")
	require.NoError(t, store.Add(ctx, []domain.IndexEntry{updated}))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)

	results, err := store.Query(ctx, []float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "updated text", results[0].Text)
	assert.InDelta(t, 0.0, results[0].Distance, 1e-6)
}

// ==================== Query Tests ====================

func TestStore_Query_OrdersByDistance(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Add(ctx, []domain.IndexEntry{
		testEntry(0, 0, []float32{0, 1, 0}, "far"),
		testEntry(1, 0, []float32{1, 0, 0}, "nearest"),
		testEntry(2, 0, []float32{0.9, 0.1, 0}, "close"),
	})
	require.NoError(t, err)

	results, err := store.Query(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "nearest", results[0].Text)
	assert.Equal(t, "close", results[1].Text)
	assert.Equal(t, "far", results[2].Text)
	assert.Less(t, results[0].Distance, results[1].Distance)
	assert.Less(t, results[1].Distance, results[2].Distance)
}

func TestStore_Query_TruncatesAtK(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Add(ctx, []domain.IndexEntry{
		testEntry(0, 0, []float32{1, 0, 0}, "a"),
		testEntry(1, 0, []float32{0, 1, 0}, "b"),
		testEntry(2, 0, []float32{0, 0, 1}, "c"),
	})
	require.NoError(t, err)

	results, err := store.Query(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Text)
}

func TestStore_Query_KExceedsEntries(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Add(ctx, []domain.IndexEntry{
		testEntry(0, 0, []float32{1, 0, 0}, "only"),
	})
	require.NoError(t, err)

	results, err := store.Query(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStore_Query_EmptyCollection(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	results, err := store.Query(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestStore_Query_ZeroK(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Add(ctx, []domain.IndexEntry{
		testEntry(0, 0, []float32{1, 0, 0}, "a"),
	})
	require.NoError(t, err)

	results, err := store.Query(ctx, []float32{1, 0, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_Query_DimensionMismatch(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Add(ctx, []domain.IndexEntry{
		testEntry(0, 0, []float32{1, 0, 0}, "three dims"),
	})
	require.NoError(t, err)

	_, err = store.Query(ctx, []float32{1, 0}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comparing against entry doc_0_chunk_0")
}

func TestStore_Query_MetadataRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	entry := domain.IndexEntry{
		ID:         domain.EntryID(0, 0),
		DocIndex:   0,
		ChunkIndex: 0,
		Vector:     []float32{1, 0, 0},
		Text:       "chunk text",
		Metadata:   map[string]string{"source": "france.txt", "type": "text", "path": "/docs/france.txt"},
	}
	require.NoError(t, store.Add(ctx, []domain.IndexEntry{entry}))

	results, err := store.Query(ctx, []float32{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, entry.Metadata, results[0].Metadata)
}

// ==================== Stats Tests ====================

func TestStore_Stats(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Add(ctx, []domain.IndexEntry{
		testEntry(0, 0, []float32{1, 0, 0}, "a"),
		testEntry(0, 1, []float32{0, 1, 0}, "b"),
		testEntry(1, 0, []float32{0, 0, 1}, "c"),
	})
	require.NoError(t, err)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 2, stats.Documents)
}

func TestStore_Stats_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, 0, stats.Documents)
}

// ==================== Persistence and Isolation Tests ====================

func TestStore_PersistsAcrossReopen(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "quaero-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	ctx := context.Background()

	store, err := NewStore(tempDir, "test_collection")
	require.NoError(t, err)

	err = store.Add(ctx, []domain.IndexEntry{
		testEntry(0, 0, []float32{1, 0, 0}, "persisted"),
		testEntry(1, 0, []float32{0, 1, 0}, "also persisted"),
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopen and verify document indices continue where they left off
	store, err = NewStore(tempDir, "test_collection")
	require.NoError(t, err)
	defer store.Close()

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 2, stats.Documents)

	results, err := store.Query(ctx, []float32{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "persisted", results[0].Text)
}

func TestStore_CollectionIsolation(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "quaero-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	ctx := context.Background()

	first, err := NewStore(tempDir, "collection_a")
	require.NoError(t, err)
	defer first.Close()

	second, err := NewStore(tempDir, "collection_b")
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, first.Add(ctx, []domain.IndexEntry{
		testEntry(0, 0, []float32{1, 0, 0}, "belongs to a"),
	}))
	require.NoError(t, second.Add(ctx, []domain.IndexEntry{
		testEntry(0, 0, []float32{1, 0, 0}, "belongs to b"),
		testEntry(1, 0, []float32{0, 1, 0}, "also b"),
	}))

	statsA, err := first.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, statsA.Entries)

	statsB, err := second.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, statsB.Entries)

	results, err := first.Query(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "belongs to a", results[0].Text)
}

// ==================== Encoding Tests ====================

func TestFloat32SliceRoundTrip(t *testing.T) {
	original := []float32{0.1, -0.5, 3.25, 0, 1e-7}

	decoded := bytesToFloat32Slice(float32SliceToBytes(original))

	require.Len(t, decoded, len(original))
	for i := range original {
		assert.Equal(t, original[i], decoded[i])
	}
}

func TestFloat32SliceToBytes_Empty(t *testing.T) {
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, float32SliceToBytes([]float32{}))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
