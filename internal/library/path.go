package library

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func registerPath(q querier, path string, parentID *int64) (int64, error) {
	var id int64
	err := q.QueryRow("SELECT id FROM paths WHERE path = ?", path).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup path %q: %w", path, mapSQLiteError(err))
	}

	result, err := q.Exec(
		"INSERT INTO paths (path, parent_id, added_at) VALUES (?, ?, ?)",
		path, parentID, time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert path %q: %w", path, mapSQLiteError(err))
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	return id, nil
}

// RegisterPath returns the id of the path row for path, creating it if needed.
func (s *Store) RegisterPath(path string, parentID *int64) (int64, error) {
	return registerPath(s.db, path, parentID)
}

// RegisterPath returns or creates a path row within a transaction.
func (t *Tx) RegisterPath(path string, parentID *int64) (int64, error) {
	return registerPath(t.tx, path, parentID)
}

func getPath(q querier, id int64) (*Path, error) {
	p := &Path{}
	err := q.QueryRow("SELECT id, path, parent_id, added_at FROM paths WHERE id = ?", id).
		Scan(&p.ID, &p.Path, &p.ParentID, &p.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("get path %d: %w", id, mapSQLiteError(err))
	}
	return p, nil
}

// GetPath retrieves a path row by ID.
// Returns ErrNotFound if the path does not exist.
func (s *Store) GetPath(id int64) (*Path, error) { return getPath(s.db, id) }

// GetPath retrieves a path row by ID within a transaction.
func (t *Tx) GetPath(id int64) (*Path, error) { return getPath(t.tx, id) }

func findPath(q querier, path string) (*Path, error) {
	p := &Path{}
	err := q.QueryRow("SELECT id, path, parent_id, added_at FROM paths WHERE path = ?", path).
		Scan(&p.ID, &p.Path, &p.ParentID, &p.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find path %q: %w", path, mapSQLiteError(err))
	}
	return p, nil
}

// FindPath looks up a path row by its path string.
// Returns nil, nil if not found.
func (s *Store) FindPath(path string) (*Path, error) { return findPath(s.db, path) }

// FindPath looks up a path row within a transaction.
func (t *Tx) FindPath(path string) (*Path, error) { return findPath(t.tx, path) }

func deletePath(q querier, id int64) error {
	_, err := q.Exec("DELETE FROM paths WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete path %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeletePath removes a path row by ID. Idempotent.
func (s *Store) DeletePath(id int64) error { return deletePath(s.db, id) }

// DeletePath removes a path row by ID within a transaction.
func (t *Tx) DeletePath(id int64) error { return deletePath(t.tx, id) }

func addFile(q querier, f *File) error {
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO files (path_id, filename, play_count, last_played, resume_seconds, added_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.PathID, f.Filename, f.PlayCount, f.LastPlayed, f.ResumeSeconds, now,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	f.ID = id
	f.AddedAt = now
	return nil
}

// AddFile inserts a new file record. Sets ID and AddedAt on the struct.
func (s *Store) AddFile(f *File) error { return addFile(s.db, f) }

// AddFile inserts a new file record within a transaction.
func (t *Tx) AddFile(f *File) error { return addFile(t.tx, f) }

func getFile(q querier, id int64) (*File, error) {
	f := &File{}
	err := q.QueryRow(`
		SELECT id, path_id, filename, play_count, last_played, resume_seconds, added_at
		FROM files WHERE id = ?`, id,
	).Scan(&f.ID, &f.PathID, &f.Filename, &f.PlayCount, &f.LastPlayed, &f.ResumeSeconds, &f.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("get file %d: %w", id, mapSQLiteError(err))
	}
	return f, nil
}

// GetFile retrieves a file record by ID.
// Returns ErrNotFound if the file does not exist.
func (s *Store) GetFile(id int64) (*File, error) { return getFile(s.db, id) }

// GetFile retrieves a file record by ID within a transaction.
func (t *Tx) GetFile(id int64) (*File, error) { return getFile(t.tx, id) }

func updateFilePlayback(q querier, fileID int64, playCount int, lastPlayed *time.Time, resumeSeconds int) error {
	result, err := q.Exec(`
		UPDATE files SET play_count = ?, last_played = ?, resume_seconds = ? WHERE id = ?`,
		playCount, lastPlayed, resumeSeconds, fileID,
	)
	if err != nil {
		return fmt.Errorf("update file %d playback: %w", fileID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update file %d playback: %w", fileID, ErrNotFound)
	}
	return nil
}

// UpdateFilePlayback overwrites the playback state on a file record.
// Returns ErrNotFound if the file does not exist.
func (s *Store) UpdateFilePlayback(fileID int64, playCount int, lastPlayed *time.Time, resumeSeconds int) error {
	return updateFilePlayback(s.db, fileID, playCount, lastPlayed, resumeSeconds)
}

// UpdateFilePlayback overwrites playback state within a transaction.
func (t *Tx) UpdateFilePlayback(fileID int64, playCount int, lastPlayed *time.Time, resumeSeconds int) error {
	return updateFilePlayback(t.tx, fileID, playCount, lastPlayed, resumeSeconds)
}

func deleteFile(q querier, id int64) error {
	_, err := q.Exec("DELETE FROM files WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete file %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteFile removes a file record by ID. Idempotent.
func (s *Store) DeleteFile(id int64) error { return deleteFile(s.db, id) }

// DeleteFile removes a file record by ID within a transaction.
func (t *Tx) DeleteFile(id int64) error { return deleteFile(t.tx, id) }

func addShowPath(q querier, showID, pathID int64) error {
	_, err := q.Exec(
		"INSERT OR IGNORE INTO show_paths (show_id, path_id) VALUES (?, ?)",
		showID, pathID,
	)
	if err != nil {
		return fmt.Errorf("link show %d to path %d: %w", showID, pathID, mapSQLiteError(err))
	}
	return nil
}

// AddShowPath records that a tvshow is reachable under a path. A show
// aggregated from several sources carries one row per source path.
func (s *Store) AddShowPath(showID, pathID int64) error { return addShowPath(s.db, showID, pathID) }

// AddShowPath links a tvshow to a path within a transaction.
func (t *Tx) AddShowPath(showID, pathID int64) error { return addShowPath(t.tx, showID, pathID) }

func removeShowPath(q querier, showID, pathID int64) error {
	_, err := q.Exec("DELETE FROM show_paths WHERE show_id = ? AND path_id = ?", showID, pathID)
	if err != nil {
		return fmt.Errorf("unlink show %d from path %d: %w", showID, pathID, mapSQLiteError(err))
	}
	return nil
}

// RemoveShowPath removes a show's link to a path. Idempotent.
func (s *Store) RemoveShowPath(showID, pathID int64) error {
	return removeShowPath(s.db, showID, pathID)
}

// RemoveShowPath removes a show's path link within a transaction.
func (t *Tx) RemoveShowPath(showID, pathID int64) error {
	return removeShowPath(t.tx, showID, pathID)
}

func listShowPaths(q querier, showID int64) ([]int64, error) {
	rows, err := q.Query("SELECT path_id FROM show_paths WHERE show_id = ? ORDER BY path_id", showID)
	if err != nil {
		return nil, fmt.Errorf("list show %d paths: %w", showID, mapSQLiteError(err))
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan show path: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show paths: %w", err)
	}
	return ids, nil
}

// ListShowPaths returns the path ids a tvshow is linked to.
func (s *Store) ListShowPaths(showID int64) ([]int64, error) { return listShowPaths(s.db, showID) }

// ListShowPaths returns a show's path ids within a transaction.
func (t *Tx) ListShowPaths(showID int64) ([]int64, error) { return listShowPaths(t.tx, showID) }
