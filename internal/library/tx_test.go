package library

import (
	"errors"
	"testing"
)

func TestTxCommit(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)

	tx, err := s.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	it := &Item{MediaType: MediaTypeMovie, Title: "Committed", Season: -1, Episode: -1}
	if err := tx.AddItem(it); err != nil {
		t.Fatalf("AddItem in tx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if _, err := s.GetItem(it.DbID); err != nil {
		t.Errorf("item missing after commit: %v", err)
	}
}

func TestTxRollback(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)

	tx, err := s.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	it := &Item{MediaType: MediaTypeMovie, Title: "Rolled back", Season: -1, Episode: -1}
	if err := tx.AddItem(it); err != nil {
		t.Fatalf("AddItem in tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	if _, err := s.GetItem(it.DbID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after rollback, got %v", err)
	}
}

func TestTxReadYourWrites(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)

	tx, err := s.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	show := &Item{MediaType: MediaTypeTvShow, Title: "Foo", Season: -1, Episode: -1}
	if err := tx.AddItem(show); err != nil {
		t.Fatalf("add show in tx: %v", err)
	}
	got, err := tx.GetItem(show.DbID)
	if err != nil {
		t.Fatalf("uncommitted write not visible in same tx: %v", err)
	}
	if got.Title != "Foo" {
		t.Errorf("got %q, want Foo", got.Title)
	}
}
