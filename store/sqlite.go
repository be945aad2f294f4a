package store

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// SQLiteStore keeps opaque JSON-encoded values keyed by kind and key.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "openSQLite couldn't open database")
	}
	// A single connection keeps ":memory:" databases shared between queries.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
    CREATE TABLE IF NOT EXISTS opaque (
        kind VARCHAR(100) NOT NULL,
        name VARCHAR(200) NOT NULL,
        value BLOB NOT NULL,
        PRIMARY KEY(kind, name)
    );`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "openSQLite couldn't create tables")
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetOpaque(ctx context.Context, kind, key string, v interface{}) error {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM opaque WHERE kind = ? AND name = ?`, kind, key).Scan(&value)
	if err == sql.ErrNoRows {
		return errors.Wrapf(ErrNotFound, "no %s with key %s", kind, key)
	}
	if err != nil {
		return errors.Wrap(err, "getOpaque couldn't query")
	}

	if err := json.Unmarshal(value, v); err != nil {
		return errors.Wrapf(err, "getOpaque couldn't decode %s %s", kind, key)
	}
	return nil
}

func (s *SQLiteStore) SetOpaque(ctx context.Context, kind, key string, v interface{}) error {
	value, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "setOpaque couldn't encode %s %s", kind, key)
	}

	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO opaque (kind, name, value) VALUES (?, ?, ?)`, kind, key, value)
	if err != nil {
		return errors.Wrap(err, "setOpaque couldn't write")
	}
	return nil
}
