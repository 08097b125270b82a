// Package library stores imported media items and their relationship
// to the imports that produced them.
package library

import (
	"database/sql"
	"fmt"
)

// querier abstracts *sql.DB and *sql.Tx so item queries can run inside
// or outside a transaction.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// Store is the SQLite-backed media library.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Begin opens a transaction. Callers must Commit or Rollback.
func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx carries the item write methods inside a transaction, so a sync
// run's changes land atomically.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }
