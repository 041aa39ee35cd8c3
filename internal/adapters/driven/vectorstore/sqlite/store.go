// Package sqlite provides a persistent vector store backed by SQLite.
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

	"github.com/strata-labs/strata/internal/adapters/driven/vectorstore/sqlite/migrations"
	"github.com/strata-labs/strata/internal/core/domain"
	"github.com/strata-labs/strata/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is a SQLite-backed implementation of driven.VectorStore.
// Both collections share one points table partitioned by a collection
// column; similarity scoring runs in Go over the collection's vectors.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite vector store at the specified data
// directory. If dataDir is empty, defaults to ~/.strata/data/points.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".strata", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "points.db")

	// WAL keeps readers live while an ingest writes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// Upsert writes one point, replacing any previous point with the same
// ID in the same collection.
func (s *Store) Upsert(ctx context.Context, collection string, point driven.Point) error {
	if point.ID == "" {
		return domain.ErrInvalidInput
	}

	metadataJSON, err := json.Marshal(point.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO points (collection, id, tag, document_id, content, metadata, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			tag = excluded.tag,
			document_id = excluded.document_id,
			content = excluded.content,
			metadata = excluded.metadata,
			embedding = excluded.embedding
	`, collection, point.ID, string(point.Tag), point.DocumentID, point.Content,
		string(metadataJSON), float32SliceToBytes(point.Embedding))

	if err != nil {
		return fmt.Errorf("upserting point: %w", err)
	}
	return nil
}

// Search scores every point in the collection against the query
// embedding and returns up to limit hits by descending similarity,
// point ID breaking ties.
func (s *Store) Search(ctx context.Context, collection string, embedding []float32, limit int) ([]driven.VectorHit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tag, document_id, content, metadata, embedding
		FROM points WHERE collection = ?
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %w", domain.ErrCollectionUnavailable, collection, err)
	}
	defer rows.Close()

	var hits []driven.VectorHit
	for rows.Next() {
		var (
			point        driven.Point
			tag          string
			metadataJSON sql.NullString
			blob         []byte
		)
		if err := rows.Scan(&point.ID, &tag, &point.DocumentID, &point.Content, &metadataJSON, &blob); err != nil {
			return nil, fmt.Errorf("scanning point: %w", err)
		}
		point.Tag = domain.Tag(tag)
		point.Embedding = bytesToFloat32Slice(blob)

		if metadataJSON.Valid && metadataJSON.String != "" && metadataJSON.String != "null" {
			if err := json.Unmarshal([]byte(metadataJSON.String), &point.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshalling metadata for %s: %w", point.ID, err)
			}
		}

		hits = append(hits, driven.VectorHit{
			Point:      point,
			Similarity: cosineSimilarity(embedding, point.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrCollectionUnavailable, collection, err)
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Point.ID < hits[j].Point.ID
	})

	if limit >= 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Count returns the number of points in the collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM points WHERE collection = ?`, collection)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting %s: %w", domain.ErrCollectionUnavailable, collection, err)
	}
	return count, nil
}

// Reset deletes every point in the collection inside one transaction,
// so concurrent readers see either the full collection or none of it.
// The other collection is untouched.
func (s *Store) Reset(ctx context.Context, collection string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reset: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM points WHERE collection = ?`, collection); err != nil {
		tx.Rollback()
		return fmt.Errorf("resetting %s: %w", collection, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reset: %w", err)
	}
	return nil
}

// migrate applies any pending .up.sql migrations from the embedded FS.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) < 4 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes the cosine of the angle between two
// vectors; zero when either vector is empty or lengths differ.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
