package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/mediasync/internal/library"
)

// Store persists sources and imports.
type Store struct {
	db *sql.DB
}

// NewStore creates a new registry store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// mapSQLiteError converts SQLite errors to package error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	return err
}

const sourceColumns = `identifier, base_path, friendly_name, icon_url, importer_id,
	manually_added, active, ready, last_synced, added_at, updated_at`

func scanSource(row interface{ Scan(...any) error }) (*Source, error) {
	s := &Source{}
	err := row.Scan(
		&s.Identifier, &s.BasePath, &s.FriendlyName, &s.IconURL, &s.ImporterID,
		&s.ManuallyAdded, &s.Active, &s.Ready, &s.LastSynced, &s.AddedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// AddSource inserts a new source. Sets AddedAt and UpdatedAt on the struct.
func (st *Store) AddSource(s *Source) error {
	if err := s.Validate(); err != nil {
		return err
	}
	now := time.Now()
	_, err := st.db.Exec(`
		INSERT INTO sources (identifier, base_path, friendly_name, icon_url, importer_id,
			manually_added, active, ready, last_synced, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Identifier, s.BasePath, s.FriendlyName, s.IconURL, s.ImporterID,
		s.ManuallyAdded, s.Active, s.Ready, s.LastSynced, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert source %q: %w", s.Identifier, mapSQLiteError(err))
	}
	s.AddedAt = now
	s.UpdatedAt = now
	return nil
}

// GetSource retrieves a source by identifier.
// Returns ErrNotFound if the source does not exist.
func (st *Store) GetSource(identifier string) (*Source, error) {
	s, err := scanSource(st.db.QueryRow(
		`SELECT `+sourceColumns+` FROM sources WHERE identifier = ?`, identifier))
	if err != nil {
		return nil, fmt.Errorf("get source %q: %w", identifier, mapSQLiteError(err))
	}
	return s, nil
}

// SourceFilter narrows ListSources.
type SourceFilter struct {
	Active *bool
}

// ListSources returns sources matching the filter, ordered by identifier.
func (st *Store) ListSources(f SourceFilter) ([]*Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources`
	var args []any
	if f.Active != nil {
		query += " WHERE active = ?"
		args = append(args, *f.Active)
	}
	query += " ORDER BY identifier"

	rows, err := st.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Source
	for rows.Next() {
		s, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}
	return results, nil
}

// UpdateSource updates an existing source. Sets UpdatedAt on the struct.
// Returns ErrNotFound if the source does not exist.
func (st *Store) UpdateSource(s *Source) error {
	if err := s.Validate(); err != nil {
		return err
	}
	now := time.Now()
	result, err := st.db.Exec(`
		UPDATE sources SET base_path = ?, friendly_name = ?, icon_url = ?, importer_id = ?,
			manually_added = ?, active = ?, ready = ?, last_synced = ?, updated_at = ?
		WHERE identifier = ?`,
		s.BasePath, s.FriendlyName, s.IconURL, s.ImporterID,
		s.ManuallyAdded, s.Active, s.Ready, s.LastSynced, now, s.Identifier,
	)
	if err != nil {
		return fmt.Errorf("update source %q: %w", s.Identifier, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update source %q: %w", s.Identifier, ErrNotFound)
	}
	s.UpdatedAt = now
	return nil
}

// DeleteSource removes a source and, via cascade, its imports. Idempotent.
func (st *Store) DeleteSource(identifier string) error {
	_, err := st.db.Exec("DELETE FROM sources WHERE identifier = ?", identifier)
	if err != nil {
		return fmt.Errorf("delete source %q: %w", identifier, mapSQLiteError(err))
	}
	return nil
}

// TouchSourceSynced records a successful synchronization time on a source.
func (st *Store) TouchSourceSynced(identifier string, at time.Time) error {
	_, err := st.db.Exec(
		"UPDATE sources SET last_synced = ?, updated_at = ? WHERE identifier = ?",
		at, time.Now(), identifier,
	)
	if err != nil {
		return fmt.Errorf("touch source %q: %w", identifier, mapSQLiteError(err))
	}
	return nil
}

const importColumns = `id, source_id, media_types, trigger_mode, update_items,
	update_playback_from_source, update_playback_on_source, last_synced, added_at, updated_at`

func scanImport(row interface{ Scan(...any) error }) (*Import, error) {
	imp := &Import{}
	var mediaTypes string
	err := row.Scan(
		&imp.ID, &imp.SourceID, &mediaTypes, &imp.Settings.Trigger, &imp.Settings.UpdateImportedItems,
		&imp.Settings.UpdatePlaybackFromSource, &imp.Settings.UpdatePlaybackOnSource,
		&imp.LastSynced, &imp.AddedAt, &imp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	imp.MediaTypes = splitMediaTypes(mediaTypes)
	return imp, nil
}

// AddImport inserts a new import. Sets ID, AddedAt, and UpdatedAt.
// The source must already exist; at most one import per
// (source, media-type-group) pair.
func (st *Store) AddImport(imp *Import) error {
	if err := imp.Validate(); err != nil {
		return err
	}
	if imp.Settings.Trigger == "" {
		imp.Settings = DefaultSettings()
	}
	now := time.Now()
	result, err := st.db.Exec(`
		INSERT INTO imports (source_id, media_types, trigger_mode, update_items,
			update_playback_from_source, update_playback_on_source, last_synced, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		imp.SourceID, joinMediaTypes(imp.MediaTypes), imp.Settings.Trigger,
		imp.Settings.UpdateImportedItems, imp.Settings.UpdatePlaybackFromSource,
		imp.Settings.UpdatePlaybackOnSource, imp.LastSynced, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert import for %q: %w", imp.SourceID, mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	imp.ID = id
	imp.AddedAt = now
	imp.UpdatedAt = now
	return nil
}

// GetImport retrieves an import by ID.
// Returns ErrNotFound if the import does not exist.
func (st *Store) GetImport(id int64) (*Import, error) {
	imp, err := scanImport(st.db.QueryRow(
		`SELECT `+importColumns+` FROM imports WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get import %d: %w", id, mapSQLiteError(err))
	}
	return imp, nil
}

// FindImport looks up the import for a (source, media-type-group) pair.
// Returns nil, nil if not found.
func (st *Store) FindImport(sourceID string, mediaTypes []library.MediaType) (*Import, error) {
	imp, err := scanImport(st.db.QueryRow(
		`SELECT `+importColumns+` FROM imports WHERE source_id = ? AND media_types = ?`,
		sourceID, joinMediaTypes(mediaTypes)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find import for %q: %w", sourceID, mapSQLiteError(err))
	}
	return imp, nil
}

// ImportFilter narrows ListImports.
type ImportFilter struct {
	SourceID *string
	Trigger  *TriggerMode
}

// ListImports returns imports matching the filter, ordered by id.
func (st *Store) ListImports(f ImportFilter) ([]*Import, error) {
	query := `SELECT ` + importColumns + ` FROM imports`
	var conditions []string
	var args []any
	if f.SourceID != nil {
		conditions = append(conditions, "source_id = ?")
		args = append(args, *f.SourceID)
	}
	if f.Trigger != nil {
		conditions = append(conditions, "trigger_mode = ?")
		args = append(args, *f.Trigger)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := st.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Import
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		results = append(results, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}
	return results, nil
}

// UpdateImport updates an import's settings. Sets UpdatedAt on the struct.
// Returns ErrNotFound if the import does not exist.
func (st *Store) UpdateImport(imp *Import) error {
	if err := imp.Validate(); err != nil {
		return err
	}
	now := time.Now()
	result, err := st.db.Exec(`
		UPDATE imports SET media_types = ?, trigger_mode = ?, update_items = ?,
			update_playback_from_source = ?, update_playback_on_source = ?,
			last_synced = ?, updated_at = ?
		WHERE id = ?`,
		joinMediaTypes(imp.MediaTypes), imp.Settings.Trigger, imp.Settings.UpdateImportedItems,
		imp.Settings.UpdatePlaybackFromSource, imp.Settings.UpdatePlaybackOnSource,
		imp.LastSynced, now, imp.ID,
	)
	if err != nil {
		return fmt.Errorf("update import %d: %w", imp.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update import %d: %w", imp.ID, ErrNotFound)
	}
	imp.UpdatedAt = now
	return nil
}

// DeleteImport removes an import by ID. Idempotent.
func (st *Store) DeleteImport(id int64) error {
	_, err := st.db.Exec("DELETE FROM imports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete import %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// TouchImportSynced records a successful synchronization time on an import.
func (st *Store) TouchImportSynced(id int64, at time.Time) error {
	_, err := st.db.Exec(
		"UPDATE imports SET last_synced = ?, updated_at = ? WHERE id = ?",
		at, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("touch import %d: %w", id, mapSQLiteError(err))
	}
	return nil
}
