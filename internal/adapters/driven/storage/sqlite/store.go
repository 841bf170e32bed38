package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/askdocs-labs/askdocs-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is a SQLite-backed record of indexed pages and ingest runs.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.askdocs/data/askdocs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".askdocs", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "askdocs.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
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

// SavePage stores or updates the record for an indexed page.
func (s *Store) SavePage(ctx context.Context, page driven.IndexedPage) error {
	if page.IndexedAt.IsZero() {
		page.IndexedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (url, title, chunk_count, indexed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			chunk_count = excluded.chunk_count,
			indexed_at = excluded.indexed_at
	`, page.URL, page.Title, page.ChunkCount, page.IndexedAt)

	if err != nil {
		return fmt.Errorf("saving page: %w", err)
	}
	return nil
}

// ListPages returns all indexed pages, most recent first.
func (s *Store) ListPages(ctx context.Context) ([]driven.IndexedPage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, chunk_count, indexed_at
		FROM pages
		ORDER BY indexed_at DESC, url
	`)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var pages []driven.IndexedPage //nolint:prealloc // size unknown from query
	for rows.Next() {
		var page driven.IndexedPage
		var indexedAt sql.NullTime
		if err := rows.Scan(&page.URL, &page.Title, &page.ChunkCount, &indexedAt); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		if indexedAt.Valid {
			page.IndexedAt = indexedAt.Time
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}

	return pages, nil
}

// SaveRun stores a completed ingest run.
func (s *Store) SaveRun(ctx context.Context, run driven.IngestRun) error {
	if run.ID == "" {
		return fmt.Errorf("saving run: empty run ID")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, base_url, started_at, finished_at, pages_indexed, chunks_indexed, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			base_url = excluded.base_url,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			pages_indexed = excluded.pages_indexed,
			chunks_indexed = excluded.chunks_indexed,
			errors = excluded.errors
	`, run.ID, run.BaseURL, run.StartedAt, run.FinishedAt,
		run.PagesIndexed, run.ChunksIndexed, run.Errors)

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ListRuns returns past ingest runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]driven.IngestRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, base_url, started_at, finished_at, pages_indexed, chunks_indexed, errors
		FROM ingest_runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []driven.IngestRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run driven.IngestRun
		var startedAt, finishedAt sql.NullTime
		if err := rows.Scan(&run.ID, &run.BaseURL, &startedAt, &finishedAt,
			&run.PagesIndexed, &run.ChunksIndexed, &run.Errors); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if startedAt.Valid {
			run.StartedAt = startedAt.Time
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
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
