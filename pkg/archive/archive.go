// Package archive keeps completed journal records in a SQLite file so the
// live journal stays small.
package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stefanpenner/bujo/pkg/store"
)

//go:embed schema.sql
var schemaSQL string

// Store is an open archive database.
type Store struct {
	// Now stamps archived_at. Tests pin it.
	Now func() time.Time

	db *sql.DB
}

// Entry is an archived root record.
type Entry struct {
	UUID          string
	Key           store.Key
	Kind          store.Kind
	Content       string
	Complete      bool
	EffectiveDate time.Time
	CreatedAt     time.Time
	ArchivedAt    time.Time
	Subtasks      int // descendants archived with it
}

// Open creates or opens the archive at path.
//
// The database runs in WAL mode behind a single connection.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to archive: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{Now: time.Now, db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Archive copies every completed root record of j, with its whole subtree,
// into the archive in one transaction and then deletes those roots from j.
// j is left untouched if the transaction fails. It returns the archived roots.
func (s *Store) Archive(ctx context.Context, j *store.Journal) ([]*store.Record, error) {
	var done []*store.Record
	for _, r := range j.Roots() {
		if r.Complete {
			done = append(done, r)
		}
	}
	if len(done) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	defer tx.Rollback()

	archivedAt := s.Now().Unix()
	for _, root := range done {
		if err := insertSubtree(ctx, tx, j, root, archivedAt); err != nil {
			return nil, fmt.Errorf("archive %s: %w", store.StableRef(root.Key), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	for _, root := range done {
		if err := j.Delete(root.Key); err != nil {
			return nil, err
		}
	}
	return done, nil
}

// insertSubtree writes root and its descendants depth-first so every parent
// row exists before its children.
func insertSubtree(ctx context.Context, tx *sql.Tx, j *store.Journal, root *store.Record, archivedAt int64) error {
	type item struct {
		rec    *store.Record
		parent sql.NullString
		depth  int
	}

	stack := []item{{rec: root}}
	position := 0
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r := it.rec

		var key, localKey sql.NullInt64
		if r.IsRoot() {
			key = sql.NullInt64{Int64: int64(r.Key), Valid: true}
		} else {
			localKey = sql.NullInt64{Int64: int64(r.LocalKey), Valid: true}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO records
			(uuid, parent_uuid, root_uuid, stable_key, local_key, depth, position,
			 kind, content, complete, effective_date, created_at, archived_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(uuid) DO NOTHING
		`,
			r.UUID,
			it.parent,
			root.UUID,
			key,
			localKey,
			it.depth,
			position,
			r.Kind.String(),
			r.Content,
			r.Complete,
			r.EffectiveDate.Unix(),
			r.CreatedAt.Unix(),
			archivedAt,
		)
		if err != nil {
			return fmt.Errorf("insert record %s: %w", r.UUID, err)
		}
		position++

		children := j.Children(r)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{
				rec:    children[i],
				parent: sql.NullString{String: r.UUID, Valid: true},
				depth:  it.depth + 1,
			})
		}
	}
	return nil
}

// List returns the archived root records, most recently archived first.
//
// Returns an empty slice (not nil) if nothing has been archived.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.uuid, r.stable_key, r.kind, r.content, r.complete,
		       r.effective_date, r.created_at, r.archived_at,
		       (SELECT COUNT(*) FROM records c WHERE c.root_uuid = r.uuid) - 1
		FROM records r
		WHERE r.parent_uuid IS NULL
		ORDER BY r.archived_at DESC, r.stable_key DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e                            Entry
			key                          sql.NullInt64
			kind                         string
			effective, created, archived int64
		)
		if err := rows.Scan(&e.UUID, &key, &kind, &e.Content, &e.Complete,
			&effective, &created, &archived, &e.Subtasks); err != nil {
			return nil, fmt.Errorf("scan archive row: %w", err)
		}
		e.Key = store.Key(key.Int64)
		e.Kind, _ = store.ParseKind(kind)
		e.EffectiveDate = time.Unix(effective, 0)
		e.CreatedAt = time.Unix(created, 0)
		e.ArchivedAt = time.Unix(archived, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive: %w", err)
	}
	return entries, nil
}
