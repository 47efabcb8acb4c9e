// Package store persists resolved corpora to SQLite: projects, per-file
// content hashes, the entity list, retrieval chunks, and resolved call
// edges. Downstream
// retrieval treats the stored text fields as opaque payloads and filters
// by kind, qualified name, class, or package.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Querier abstracts *sql.DB and *sql.Tx so store methods work in both contexts.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store wraps a SQLite connection.
type Store struct {
	db     *sql.DB
	q      Querier // active querier: db or tx
	dbPath string
}

// OpenPath opens or creates a SQLite database at the given path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db, dbPath: dbPath}
	s.q = s.db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory SQLite database (for testing).
// The connection pool is pinned to one connection so the database
// survives across store calls.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db, dbPath: ":memory:"}
	s.q = s.db
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// WithTransaction executes fn within a single SQLite transaction. The
// callback receives a transaction-scoped Store; the receiver's q field is
// never mutated, so concurrent readers on the base store are unaffected.
func (s *Store) WithTransaction(fn func(txStore *Store) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txStore := &Store{db: s.db, q: tx, dbPath: s.dbPath}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		name TEXT PRIMARY KEY,
		root_path TEXT NOT NULL,
		indexed_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS file_hashes (
		project TEXT NOT NULL,
		rel_path TEXT NOT NULL,
		hash TEXT NOT NULL,
		PRIMARY KEY (project, rel_path)
	);

	CREATE TABLE IF NOT EXISTS entities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project TEXT NOT NULL,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		qualified_name TEXT NOT NULL,
		file_path TEXT NOT NULL,
		start_line INTEGER NOT NULL DEFAULT 0,
		end_line INTEGER NOT NULL DEFAULT 0,
		class_name TEXT NOT NULL DEFAULT '',
		package_name TEXT NOT NULL DEFAULT '',
		return_type TEXT NOT NULL DEFAULT '',
		source_code TEXT NOT NULL DEFAULT '',
		javadoc TEXT NOT NULL DEFAULT '',
		modifiers TEXT NOT NULL DEFAULT '[]',
		annotations TEXT NOT NULL DEFAULT '[]',
		parameters TEXT NOT NULL DEFAULT '[]',
		calls TEXT NOT NULL DEFAULT '[]',
		called_by TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_entities_qn ON entities(project, qualified_name);
	CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities(project, kind);
	CREATE INDEX IF NOT EXISTS idx_entities_file ON entities(project, file_path);

	CREATE TABLE IF NOT EXISTS chunks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project TEXT NOT NULL,
		chunk_id TEXT NOT NULL,
		source_entity_id TEXT NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		source_code TEXT NOT NULL DEFAULT '',
		file_path TEXT NOT NULL DEFAULT '',
		start_line INTEGER NOT NULL DEFAULT 0,
		end_line INTEGER NOT NULL DEFAULT 0,
		kind TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		qualified_name TEXT NOT NULL DEFAULT '',
		class_name TEXT NOT NULL DEFAULT '',
		package_name TEXT NOT NULL DEFAULT '',
		return_type TEXT NOT NULL DEFAULT '',
		javadoc TEXT NOT NULL DEFAULT '',
		modifiers TEXT NOT NULL DEFAULT '[]',
		annotations TEXT NOT NULL DEFAULT '[]',
		parameters TEXT NOT NULL DEFAULT '[]',
		calls TEXT NOT NULL DEFAULT '[]',
		called_by TEXT NOT NULL DEFAULT '[]',
		part_index INTEGER NOT NULL DEFAULT 0,
		total_parts INTEGER NOT NULL DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_id ON chunks(project, chunk_id);
	CREATE INDEX IF NOT EXISTS idx_chunks_entity ON chunks(project, source_entity_id);

	CREATE TABLE IF NOT EXISTS call_edges (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project TEXT NOT NULL,
		caller_qn TEXT NOT NULL,
		callee_qn TEXT NOT NULL,
		internal INTEGER NOT NULL DEFAULT 0,
		UNIQUE (project, caller_qn, callee_qn)
	);
	CREATE INDEX IF NOT EXISTS idx_edges_callee ON call_edges(project, callee_qn);
	`
	_, err := s.q.Exec(schema)
	return err
}

// UpsertProject records (or refreshes) a project row.
func (s *Store) UpsertProject(name, rootPath string) error {
	_, err := s.q.Exec(`
		INSERT INTO projects (name, root_path, indexed_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET root_path=excluded.root_path, indexed_at=excluded.indexed_at`,
		name, rootPath, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return nil
}

// UpsertFileHash records a file's content hash for staleness detection.
func (s *Store) UpsertFileHash(project, relPath, hash string) error {
	_, err := s.q.Exec(`
		INSERT INTO file_hashes (project, rel_path, hash) VALUES (?, ?, ?)
		ON CONFLICT(project, rel_path) DO UPDATE SET hash=excluded.hash`,
		project, relPath, hash)
	if err != nil {
		return fmt.Errorf("upsert file hash: %w", err)
	}
	return nil
}

// FileHashes returns rel_path -> hash for a project.
func (s *Store) FileHashes(project string) (map[string]string, error) {
	rows, err := s.q.Query(`SELECT rel_path, hash FROM file_hashes WHERE project=?`, project)
	if err != nil {
		return nil, fmt.Errorf("file hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var rel, hash string
		if err := rows.Scan(&rel, &hash); err != nil {
			return nil, err
		}
		hashes[rel] = hash
	}
	return hashes, rows.Err()
}

// DeleteProject removes a project and all of its rows.
func (s *Store) DeleteProject(project string) error {
	for _, stmt := range []string{
		`DELETE FROM call_edges WHERE project=?`,
		`DELETE FROM chunks WHERE project=?`,
		`DELETE FROM entities WHERE project=?`,
		`DELETE FROM file_hashes WHERE project=?`,
		`DELETE FROM projects WHERE name=?`,
	} {
		if _, err := s.q.Exec(stmt, project); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
	}
	return nil
}

// marshalStrings encodes a string slice as JSON for a TEXT column.
func marshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalStrings(data string) []string {
	if data == "" || data == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil
	}
	return values
}
