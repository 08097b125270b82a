package library

import (
	"errors"
	"testing"
	"time"
)

func TestRegisterPathReturnsExisting(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)

	first, err := s.RegisterPath("smb://server/tv/", nil)
	if err != nil {
		t.Fatalf("RegisterPath: %v", err)
	}
	second, err := s.RegisterPath("smb://server/tv/", nil)
	if err != nil {
		t.Fatalf("RegisterPath again: %v", err)
	}
	if first != second {
		t.Errorf("re-registering same path: got %d and %d, want same id", first, second)
	}
}

func TestRegisterPathParent(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)

	rootID, err := s.RegisterPath("smb://server/tv/", nil)
	if err != nil {
		t.Fatalf("register root: %v", err)
	}
	childID, err := s.RegisterPath("smb://server/tv/Foo/", &rootID)
	if err != nil {
		t.Fatalf("register child: %v", err)
	}

	child, err := s.GetPath(childID)
	if err != nil {
		t.Fatalf("GetPath: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != rootID {
		t.Errorf("child parent: got %v, want %d", child.ParentID, rootID)
	}
}

func TestFindPathMissing(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)

	p, err := s.FindPath("smb://nowhere/")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for missing path, got %+v", p)
	}
}

func TestFileLifecycle(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)

	pathID, err := s.RegisterPath("smb://server/movies/", nil)
	if err != nil {
		t.Fatalf("RegisterPath: %v", err)
	}
	f := &File{PathID: pathID, Filename: "movie.mkv"}
	if err := s.AddFile(f); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if f.ID <= 0 {
		t.Fatalf("AddFile did not assign ID")
	}

	played := time.Date(2026, 7, 1, 21, 30, 0, 0, time.UTC)
	if err := s.UpdateFilePlayback(f.ID, 3, &played, 120); err != nil {
		t.Fatalf("UpdateFilePlayback: %v", err)
	}
	got, err := s.GetFile(f.ID)
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if got.PlayCount != 3 || got.ResumeSeconds != 120 {
		t.Errorf("playback: got count=%d resume=%d", got.PlayCount, got.ResumeSeconds)
	}

	if err := s.DeleteFile(f.ID); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := s.GetFile(f.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestShowPaths(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)

	show := &Item{MediaType: MediaTypeTvShow, Title: "Foo", Season: -1, Episode: -1}
	if err := s.AddItem(show); err != nil {
		t.Fatalf("add show: %v", err)
	}
	pathA, err := s.RegisterPath("smb://a/tv/Foo/", nil)
	if err != nil {
		t.Fatalf("register path a: %v", err)
	}
	pathB, err := s.RegisterPath("smb://b/tv/Foo/", nil)
	if err != nil {
		t.Fatalf("register path b: %v", err)
	}

	for _, pid := range []int64{pathA, pathB, pathA} { // duplicate link is a no-op
		if err := s.AddShowPath(show.DbID, pid); err != nil {
			t.Fatalf("AddShowPath %d: %v", pid, err)
		}
	}

	ids, err := s.ListShowPaths(show.DbID)
	if err != nil {
		t.Fatalf("ListShowPaths: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("show paths: got %d, want 2", len(ids))
	}

	if err := s.RemoveShowPath(show.DbID, pathA); err != nil {
		t.Fatalf("RemoveShowPath: %v", err)
	}
	ids, err = s.ListShowPaths(show.DbID)
	if err != nil {
		t.Fatalf("ListShowPaths after remove: %v", err)
	}
	if len(ids) != 1 || ids[0] != pathB {
		t.Errorf("show paths after remove: got %v, want [%d]", ids, pathB)
	}
}
