package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/folio/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// dbFile is the catalog database name inside the data directory.
const dbFile = "catalog.db"

// Store owns the SQLite connection and hands out catalog views over it.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.folio/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".folio", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// WAL lets the watcher ingest while searches read.
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

// DocumentCatalog returns a DocumentCatalog backed by this store.
func (s *Store) DocumentCatalog() driven.DocumentCatalog {
	return &documentCatalog{store: s}
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// migrate runs all pending migrations. Each up migration records its own version.
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

	currentVersion, err := s.SchemaVersion(context.Background())
	if err != nil {
		return err
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
		// "001_documents.up.sql" -> 1
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
	}

	return nil
}

// ==================== Document Catalog ====================

// documentCatalog implements driven.DocumentCatalog.
type documentCatalog struct {
	store *Store
}

var _ driven.DocumentCatalog = (*documentCatalog)(nil)

const documentColumns = `id, title, filename, mime_type, external_link, index_state,
	content_hash, node_count, error, created_at, updated_at`

// SaveDocument stores or updates a record. CreatedAt is kept on update.
func (c *documentCatalog) SaveDocument(ctx context.Context, rec *domain.DocumentRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("%w: document record needs an id", domain.ErrInvalidInput)
	}
	if !rec.IndexState.IsValid() {
		return fmt.Errorf("%w: index state %q", domain.ErrInvalidInput, rec.IndexState)
	}

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			filename = excluded.filename,
			mime_type = excluded.mime_type,
			external_link = excluded.external_link,
			index_state = excluded.index_state,
			content_hash = excluded.content_hash,
			node_count = excluded.node_count,
			error = excluded.error,
			updated_at = excluded.updated_at
	`, rec.ID, rec.Title, rec.Filename, rec.MimeType, rec.ExternalLink, string(rec.IndexState),
		rec.ContentHash, rec.NodeCount, rec.Error, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a record by ID.
func (c *documentCatalog) GetDocument(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	row := c.store.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

// UpdateIndexState sets the state of a record. The error message is cleared
// for any state other than failed.
func (c *documentCatalog) UpdateIndexState(ctx context.Context, id string, state domain.IndexState, errMsg string) error {
	if !state.IsValid() {
		return fmt.Errorf("%w: index state %q", domain.ErrInvalidInput, state)
	}
	if state != domain.IndexStateFailed {
		errMsg = ""
	}

	res, err := c.store.db.ExecContext(ctx, `
		UPDATE documents SET index_state = ?, error = ?, updated_at = ? WHERE id = ?
	`, string(state), errMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating index state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating index state: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteDocument removes a record.
func (c *documentCatalog) DeleteDocument(ctx context.Context, id string) error {
	_, err := c.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ListDocuments returns all records, newest first.
func (c *documentCatalog) ListDocuments(ctx context.Context) ([]domain.DocumentRecord, error) {
	return c.query(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY created_at DESC, id`)
}

// ListByState returns records in the given state, newest first.
func (c *documentCatalog) ListByState(ctx context.Context, state domain.IndexState) ([]domain.DocumentRecord, error) {
	return c.query(ctx, `SELECT `+documentColumns+` FROM documents
		WHERE index_state = ? ORDER BY created_at DESC, id`, string(state))
}

func (c *documentCatalog) query(ctx context.Context, query string, args ...any) ([]domain.DocumentRecord, error) {
	rows, err := c.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var recs []domain.DocumentRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return recs, nil
}

// ==================== Helper Functions ====================

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.DocumentRecord, error) {
	var rec domain.DocumentRecord
	var state string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Filename, &rec.MimeType, &rec.ExternalLink,
		&state, &rec.ContentHash, &rec.NodeCount, &rec.Error, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	rec.IndexState = domain.IndexState(state)
	if createdAt.Valid {
		rec.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time
	}
	return &rec, nil
}
