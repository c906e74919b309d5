package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	domainerrors "github.com/justyntemme/inkreader/internal/errors"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteBackend stores values in a single-table SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "create settings directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "open sqlite")
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, fmt.Sprintf("exec pragma %q", pragma))
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "exec schema")
	}

	return &SQLiteBackend{db: db}, nil
}

// Get returns the value stored under key.
func (b *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.NotFoundf("settings key %q", key)
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "read settings")
	}
	return value, nil
}

// Put upserts value under key.
func (b *SQLiteBackend) Put(ctx context.Context, key string, value []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "write settings")
	}
	return nil
}

// Delete removes key.
func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	res, err := b.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "delete settings")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domainerrors.NotFoundf("settings key %q", key)
	}
	return nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
