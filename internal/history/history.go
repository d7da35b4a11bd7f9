// Package history keeps a local record of projects created through the
// wizard so they can be reopened later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one created project.
type Entry struct {
	ProjectID   string
	Name        string
	Mode        string
	URL         string
	Parameters  int
	TemplateRef string
	CreatedAt   time.Time
}

// Store is the history database.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 2000"); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS projects (
  project_id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  mode TEXT NOT NULL,
  url TEXT NOT NULL,
  parameters INTEGER NOT NULL DEFAULT 0,
  template_ref TEXT NOT NULL DEFAULT '',
  created_ns INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS projects_created ON projects(created_ns);
`)
	return err
}

// Record stores e, replacing an earlier entry with the same project id.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ProjectID == "" {
		return fmt.Errorf("history: empty project id")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO projects (project_id, name, mode, url, parameters, template_ref, created_ns)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(project_id) DO UPDATE SET
  name = excluded.name, mode = excluded.mode, url = excluded.url,
  parameters = excluded.parameters, template_ref = excluded.template_ref,
  created_ns = excluded.created_ns`,
		e.ProjectID, e.Name, e.Mode, e.URL, e.Parameters, e.TemplateRef, e.CreatedAt.UnixNano())
	return err
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT project_id, name, mode, url, parameters, template_ref, created_ns
FROM projects ORDER BY created_ns DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ProjectID, &e.Name, &e.Mode, &e.URL, &e.Parameters, &e.TemplateRef, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
