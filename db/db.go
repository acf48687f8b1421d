package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store wraps the posts database. It is injected into the HTTP handlers
// and the submission flow rather than held as a package global.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path and creates tables if they
// don't exist.
func Open(path string) (*Store, error) {
	conn, err := sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: conn}
	if err := s.createTables(); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
