// Package optionstore keeps an option catalog in SQLite and searches it
// through an FTS5 trigram index.
package optionstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/picker/internal/catalog"
	"github.com/llehouerou/picker/internal/db"
	"github.com/llehouerou/picker/internal/option"
)

const schema = `
CREATE TABLE IF NOT EXISTS options (
	id        TEXT PRIMARY KEY,
	parent_id TEXT,
	label     TEXT NOT NULL,
	grp       TEXT NOT NULL DEFAULT '',
	disabled  INTEGER NOT NULL DEFAULT 0,
	is_menu   INTEGER NOT NULL DEFAULT 0,
	position  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_options_parent ON options(parent_id, position);

CREATE VIRTUAL TABLE IF NOT EXISTS options_fts USING fts5(
	search_text,
	option_id UNINDEXED,
	tokenize='trigram'
);
`

// Store is an option catalog backed by SQLite.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	s, err := OpenDB(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// OpenDB wraps an existing connection, creating the schema if needed.
func OpenDB(conn *sql.DB) (*Store, error) {
	if _, err := conn.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: conn, log: slog.Default().With("component", "optionstore")}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Count returns the number of stored options, menus included.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM options`).Scan(&n)
	return n, err
}

// Import replaces the catalog with opts and rebuilds the search index.
func (s *Store) Import(ctx context.Context, opts []option.Option[catalog.Record]) error {
	n := 0
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM options_fts`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM options`); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO options (id, parent_id, label, grp, disabled, is_menu, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		if n, err = insertLevel(ctx, stmt, opts, ""); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO options_fts (search_text, option_id)
			SELECT label, id FROM options
		`)
		return err
	})
	if err != nil {
		return fmt.Errorf("import options: %w", err)
	}
	s.log.Debug("catalog imported", "options", n)
	return nil
}

func insertLevel(ctx context.Context, stmt *sql.Stmt, opts []option.Option[catalog.Record], parent string) (int, error) {
	n := 0
	for i, o := range opts {
		r := o.Value
		_, err := stmt.ExecContext(ctx, r.ID, db.NullString(parent), r.Label, r.Group, o.Disabled, o.IsMenu(), i)
		if err != nil {
			return n, fmt.Errorf("option %q: %w", r.ID, err)
		}
		n++
		if o.IsMenu() {
			c, err := insertLevel(ctx, stmt, o.SubMenu, r.ID)
			n += c
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

type row struct {
	id       string
	parent   string
	label    string
	group    string
	disabled bool
	menu     bool
}

// Load returns the stored option tree in catalog order.
func (s *Store) Load(ctx context.Context) ([]option.Option[catalog.Record], error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, label, grp, disabled, is_menu
		FROM options
		ORDER BY position, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := make(map[string][]row)
	for rows.Next() {
		var r row
		var parent sql.NullString
		if err := rows.Scan(&r.id, &parent, &r.label, &r.group, &r.disabled, &r.menu); err != nil {
			return nil, err
		}
		r.parent = db.NullStringValue(parent)
		children[r.parent] = append(children[r.parent], r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buildTree(children, ""), nil
}

func buildTree(children map[string][]row, parent string) []option.Option[catalog.Record] {
	level := children[parent]
	out := make([]option.Option[catalog.Record], 0, len(level))
	for _, r := range level {
		rec := catalog.Record{ID: r.id, Label: r.label, Group: r.group}
		var o option.Option[catalog.Record]
		if r.menu {
			o = option.NewMenu(rec, buildTree(children, r.id)...)
		} else {
			o = option.New(rec)
		}
		o.Disabled = r.disabled
		out = append(out, o)
	}
	return out
}
