package sqlite

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "strata-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testPoint(id string, tag domain.Tag, embedding []float32) driven.Point {
	return driven.Point{
		ID:         id,
		Tag:        tag,
		Content:    "content for " + id,
		DocumentID: "doc-1",
		Metadata:   map[string]any{"filename": "policy.md"},
		Embedding:  embedding,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestStore_UpsertAndSearch(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, domain.CollectionText, testPoint("a", domain.TagText, []float32{1, 0, 0})))
	require.NoError(t, store.Upsert(ctx, domain.CollectionText, testPoint("b", domain.TagText, []float32{0, 1, 0})))

	hits, err := store.Search(ctx, domain.CollectionText, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "a", hits[0].Point.ID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, domain.TagText, hits[0].Point.Tag)
	assert.Equal(t, "doc-1", hits[0].Point.DocumentID)
	assert.Equal(t, "policy.md", hits[0].Point.Metadata["filename"])
}

func TestStore_Upsert_Replaces(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	p := testPoint("a", domain.TagTable, []float32{1, 0})
	require.NoError(t, store.Upsert(ctx, domain.CollectionTables, p))

	p.Content = "updated"
	require.NoError(t, store.Upsert(ctx, domain.CollectionTables, p))

	n, err := store.Count(ctx, domain.CollectionTables)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	hits, err := store.Search(ctx, domain.CollectionTables, []float32{1, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, "updated", hits[0].Point.Content)
}

func TestStore_Search_Limit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, store.Upsert(ctx, domain.CollectionText, testPoint(id, domain.TagText, []float32{1, 1})))
	}

	hits, err := store.Search(ctx, domain.CollectionText, []float32{1, 1}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	// Ties break by point ID, stable across calls
	assert.Equal(t, "a", hits[0].Point.ID)
	assert.Equal(t, "b", hits[1].Point.ID)
}

func TestStore_Count_EmptyCollection(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	n, err := store.Count(context.Background(), domain.CollectionTables)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_Reset_IsolatedAndIdempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, domain.CollectionText, testPoint("a", domain.TagText, []float32{1})))
	require.NoError(t, store.Upsert(ctx, domain.CollectionTables, testPoint("b", domain.TagTable, []float32{1})))

	require.NoError(t, store.Reset(ctx, domain.CollectionTables))

	n, _ := store.Count(ctx, domain.CollectionTables)
	assert.Equal(t, 0, n)
	n, _ = store.Count(ctx, domain.CollectionText)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Reset(ctx, domain.CollectionTables))
	n, _ = store.Count(ctx, domain.CollectionTables)
	assert.Equal(t, 0, n)
}

func TestStore_ReopenKeepsPoints(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "strata-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	ctx := context.Background()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, domain.CollectionText, testPoint("a", domain.TagText, []float32{0.5, 0.5})))
	require.NoError(t, store.Close())

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Count(ctx, domain.CollectionText)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFloat32RoundTrip(t *testing.T) {
	in := []float32{0.1, -2.5, 42, 0}
	out := bytesToFloat32Slice(float32SliceToBytes(in))
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i], out[i])
	}

	assert.Nil(t, bytesToFloat32Slice(nil))
	assert.Nil(t, bytesToFloat32Slice([]byte{1, 2}))
}
