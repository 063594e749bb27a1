// Package sqlitestore keeps repository histories in a SQLite database
// through the pure-Go modernc driver.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/keshon/minigit/internal/graph"
	"github.com/keshon/minigit/internal/snapshot"
	"github.com/keshon/minigit/internal/store"
)

// Store is a store.HistoryStore backed by *sql.DB.
type Store struct {
	db *sql.DB
}

// Open creates the parent directory of dsn when it names a file, opens the
// database and applies migrations.
func Open(dsn string) (*Store, error) {
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// single writer connection
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(time.Minute)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return New(db), nil
}

// New wraps an already migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save replaces every stored commit of repo in one transaction.
func (s *Store) Save(ctx context.Context, repo string, records []graph.Record) error {
	if err := store.ValidateName(repo); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save %s: %w", repo, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM commits WHERE repo = ?`, repo); err != nil {
		return fmt.Errorf("clear history %s: %w", repo, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO commits (repo, position, id, message, timestamp, parent, children, files, file_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		children, err := encodeJSON(rec.Children, "[]")
		if err != nil {
			return err
		}
		files, err := encodeJSON(rec.Files, "[]")
		if err != nil {
			return err
		}
		var parent sql.NullString
		if rec.Parent != nil {
			parent = sql.NullString{String: *rec.Parent, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, repo, i, rec.ID, rec.Message, rec.Timestamp, parent, children, files, rec.FileCount); err != nil {
			return fmt.Errorf("insert commit %s: %w", rec.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO repositories (name, saved_at) VALUES (?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET saved_at = CURRENT_TIMESTAMP
	`, repo); err != nil {
		return fmt.Errorf("touch repository %s: %w", repo, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save %s: %w", repo, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, repo string) ([]graph.Record, error) {
	if err := store.ValidateName(repo); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, message, timestamp, parent, children, files, file_count
		FROM commits
		WHERE repo = ?
		ORDER BY position ASC
	`, repo)
	if err != nil {
		return nil, fmt.Errorf("query history %s: %w", repo, err)
	}
	defer rows.Close()

	records := []graph.Record{}
	for rows.Next() {
		var (
			rec      graph.Record
			parent   sql.NullString
			children string
			files    string
		)
		if err := rows.Scan(&rec.ID, &rec.Message, &rec.Timestamp, &parent, &children, &files, &rec.FileCount); err != nil {
			return nil, fmt.Errorf("scan commit: %w", err)
		}
		if parent.Valid {
			p := parent.String
			rec.Parent = &p
		}
		rec.Children = []string{}
		if err := json.Unmarshal([]byte(children), &rec.Children); err != nil {
			return nil, fmt.Errorf("%w: children of %s: %v", store.ErrCorrupt, rec.ID, err)
		}
		rec.Files = []snapshot.File{}
		if err := json.Unmarshal([]byte(files), &rec.Files); err != nil {
			return nil, fmt.Errorf("%w: files of %s: %v", store.ErrCorrupt, rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history %s: %w", repo, err)
	}
	return records, nil
}

func (s *Store) Delete(ctx context.Context, repo string) error {
	if err := store.ValidateName(repo); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete %s: %w", repo, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM commits WHERE repo = ?`, repo); err != nil {
		return fmt.Errorf("delete history %s: %w", repo, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM repositories WHERE name = ?`, repo); err != nil {
		return fmt.Errorf("delete repository %s: %w", repo, err)
	}
	return tx.Commit()
}

// Repositories lists the names that have stored history, sorted.
func (s *Store) Repositories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM repositories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query repositories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan repository: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func encodeJSON(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	if string(data) == "null" {
		return empty, nil
	}
	return string(data), nil
}
