package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

type sqliteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore opens (or creates) a key/value table in a SQLite file.
func NewSQLiteSessionStore(dbPath string) (repository.SessionStore, error) {
	if dbPath == "" {
		return nil, errors.New("db path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "create db directory")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	if err := createSessionSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteSessionStore{db: db}, nil
}

func createSessionSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS session (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "create session schema")
	}
	return nil
}

func (s *sqliteSessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "read %q", key)
	}
	return value, true, nil
}

func (s *sqliteSessionStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value)
	return errors.Wrapf(err, "write %q", key)
}

func (s *sqliteSessionStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key)
	return errors.Wrapf(err, "delete %q", key)
}

func (s *sqliteSessionStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM session`)
	if err != nil {
		return nil, errors.Wrap(err, "list session keys")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.Wrap(err, "scan session key")
		}
		keys = append(keys, key)
	}
	return keys, errors.Wrap(rows.Err(), "list session keys")
}

func (s *sqliteSessionStore) Close() error {
	return s.db.Close()
}
