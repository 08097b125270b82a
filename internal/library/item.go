package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}

// itemColumns is the select list shared by every item query. Playback state
// comes from the backing file row when one exists.
const itemColumns = `
	i.id, i.media_type, i.file_id, i.title, i.sort_title, i.plot, i.year,
	i.premiered, i.mpaa, i.unique_id, i.path, i.base_path, i.parent_path_id,
	i.show_id, i.show_title, i.season, i.episode, i.set_id, i.set_title,
	i.cast_json, i.genre_json, i.studio_json, i.country_json, i.director_json,
	i.writer_json, i.art_json, i.enabled, i.added_at, i.updated_at,
	f.play_count, f.last_played, f.resume_seconds`

const itemFrom = ` FROM media_items i LEFT JOIN files f ON f.id = i.file_id `

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	it := &Item{}
	var castJSON, genreJSON, studioJSON, countryJSON, directorJSON, writerJSON, artJSON string
	var playCount sql.NullInt64
	var lastPlayed sql.NullTime
	var resumeSeconds sql.NullInt64

	err := row.Scan(
		&it.DbID, &it.MediaType, &it.FileID, &it.Title, &it.SortTitle, &it.Plot, &it.Year,
		&it.Premiered, &it.MPAA, &it.UniqueID, &it.Path, &it.BasePath, &it.ParentPathID,
		&it.ShowID, &it.ShowTitle, &it.Season, &it.Episode, &it.SetID, &it.SetTitle,
		&castJSON, &genreJSON, &studioJSON, &countryJSON, &directorJSON,
		&writerJSON, &artJSON, &it.Enabled, &it.AddedAt, &it.UpdatedAt,
		&playCount, &lastPlayed, &resumeSeconds,
	)
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		raw  string
		dest any
	}{
		{castJSON, &it.Cast},
		{genreJSON, &it.Genre},
		{studioJSON, &it.Studio},
		{countryJSON, &it.Country},
		{directorJSON, &it.Director},
		{writerJSON, &it.Writer},
		{artJSON, &it.Art},
	} {
		if f.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw), f.dest); err != nil {
			return nil, fmt.Errorf("decode item %d field: %w", it.DbID, err)
		}
	}

	if playCount.Valid {
		it.PlayCount = int(playCount.Int64)
	}
	if lastPlayed.Valid {
		t := lastPlayed.Time
		it.LastPlayed = &t
	}
	if resumeSeconds.Valid {
		it.ResumeSeconds = int(resumeSeconds.Int64)
	}
	return it, nil
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func itemJSONFields(it *Item) (castJSON, genreJSON, studioJSON, countryJSON, directorJSON, writerJSON, artJSON string, err error) {
	if it.Cast == nil {
		it.Cast = []Actor{}
	}
	if it.Art == nil {
		it.Art = map[string]string{}
	}
	for _, f := range []struct {
		src  any
		dest *string
	}{
		{it.Cast, &castJSON},
		{orEmpty(it.Genre), &genreJSON},
		{orEmpty(it.Studio), &studioJSON},
		{orEmpty(it.Country), &countryJSON},
		{orEmpty(it.Director), &directorJSON},
		{orEmpty(it.Writer), &writerJSON},
		{it.Art, &artJSON},
	} {
		*f.dest, err = encodeJSON(f.src)
		if err != nil {
			return "", "", "", "", "", "", "", fmt.Errorf("encode item field: %w", err)
		}
	}
	return castJSON, genreJSON, studioJSON, countryJSON, directorJSON, writerJSON, artJSON, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func addItem(q querier, it *Item) error {
	castJSON, genreJSON, studioJSON, countryJSON, directorJSON, writerJSON, artJSON, err := itemJSONFields(it)
	if err != nil {
		return err
	}
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO media_items (media_type, file_id, title, sort_title, plot, year,
			premiered, mpaa, unique_id, path, base_path, parent_path_id,
			show_id, show_title, season, episode, set_id, set_title,
			cast_json, genre_json, studio_json, country_json, director_json,
			writer_json, art_json, enabled, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.MediaType, it.FileID, it.Title, it.SortTitle, it.Plot, it.Year,
		it.Premiered, it.MPAA, it.UniqueID, it.Path, it.BasePath, it.ParentPathID,
		it.ShowID, it.ShowTitle, it.Season, it.Episode, it.SetID, it.SetTitle,
		castJSON, genreJSON, studioJSON, countryJSON, directorJSON,
		writerJSON, artJSON, it.Enabled, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	it.DbID = id
	it.AddedAt = now
	it.UpdatedAt = now
	return nil
}

// AddItem inserts a new library item. Sets DbID, AddedAt, and UpdatedAt.
func (s *Store) AddItem(it *Item) error { return addItem(s.db, it) }

// AddItem inserts a new library item within a transaction.
func (t *Tx) AddItem(it *Item) error { return addItem(t.tx, it) }

func getItem(q querier, id int64) (*Item, error) {
	it, err := scanItem(q.QueryRow(`SELECT `+itemColumns+itemFrom+`WHERE i.id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, mapSQLiteError(err))
	}
	return it, nil
}

// GetItem retrieves an item by ID.
// Returns ErrNotFound if the item does not exist.
func (s *Store) GetItem(id int64) (*Item, error) { return getItem(s.db, id) }

// GetItem retrieves an item by ID within a transaction.
func (t *Tx) GetItem(id int64) (*Item, error) { return getItem(t.tx, id) }

func updateItem(q querier, it *Item) error {
	castJSON, genreJSON, studioJSON, countryJSON, directorJSON, writerJSON, artJSON, err := itemJSONFields(it)
	if err != nil {
		return err
	}
	now := time.Now()
	result, err := q.Exec(`
		UPDATE media_items SET media_type = ?, file_id = ?, title = ?, sort_title = ?,
			plot = ?, year = ?, premiered = ?, mpaa = ?, unique_id = ?,
			path = ?, base_path = ?, parent_path_id = ?,
			show_id = ?, show_title = ?, season = ?, episode = ?, set_id = ?, set_title = ?,
			cast_json = ?, genre_json = ?, studio_json = ?, country_json = ?,
			director_json = ?, writer_json = ?, art_json = ?, enabled = ?, updated_at = ?
		WHERE id = ?`,
		it.MediaType, it.FileID, it.Title, it.SortTitle,
		it.Plot, it.Year, it.Premiered, it.MPAA, it.UniqueID,
		it.Path, it.BasePath, it.ParentPathID,
		it.ShowID, it.ShowTitle, it.Season, it.Episode, it.SetID, it.SetTitle,
		castJSON, genreJSON, studioJSON, countryJSON,
		directorJSON, writerJSON, artJSON, it.Enabled, now, it.DbID,
	)
	if err != nil {
		return fmt.Errorf("update item %d: %w", it.DbID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update item %d: %w", it.DbID, ErrNotFound)
	}
	it.UpdatedAt = now
	return nil
}

// UpdateItem updates an existing item. Sets UpdatedAt on the struct.
// Returns ErrNotFound if the item does not exist.
func (s *Store) UpdateItem(it *Item) error { return updateItem(s.db, it) }

// UpdateItem updates an existing item within a transaction.
func (t *Tx) UpdateItem(it *Item) error { return updateItem(t.tx, it) }

func deleteItem(q querier, id int64) error {
	_, err := q.Exec("DELETE FROM media_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteItem removes an item by ID.
// This operation is idempotent - no error is returned if the item does not exist.
func (s *Store) DeleteItem(id int64) error { return deleteItem(s.db, id) }

// DeleteItem removes an item by ID within a transaction.
func (t *Tx) DeleteItem(id int64) error { return deleteItem(t.tx, id) }

func buildItemWhere(f ItemFilter) (string, string, []any) {
	var conditions []string
	var args []any
	join := ""

	if f.ImportID != nil {
		join = " JOIN item_imports li ON li.item_id = i.id "
		conditions = append(conditions, "li.import_id = ?")
		args = append(args, *f.ImportID)
	}
	if f.MediaType != nil {
		conditions = append(conditions, "i.media_type = ?")
		args = append(args, *f.MediaType)
	}
	if f.ShowID != nil {
		conditions = append(conditions, "i.show_id = ?")
		args = append(args, *f.ShowID)
	}
	if f.SetID != nil {
		conditions = append(conditions, "i.set_id = ?")
		args = append(args, *f.SetID)
	}
	if f.Title != nil {
		conditions = append(conditions, "i.title = ?")
		args = append(args, *f.Title)
	}
	if f.Year != nil {
		conditions = append(conditions, "i.year = ?")
		args = append(args, *f.Year)
	}
	if f.Enabled != nil {
		conditions = append(conditions, "i.enabled = ?")
		args = append(args, *f.Enabled)
	}
	if f.Season != nil {
		conditions = append(conditions, "i.season = ?")
		args = append(args, *f.Season)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}
	return join, whereClause, args
}

func listItems(q querier, f ItemFilter) ([]*Item, int, error) {
	join, whereClause, args := buildItemWhere(f)

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM media_items i"+join+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := "SELECT " + itemColumns + itemFrom + join + whereClause + " ORDER BY i.id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		results = append(results, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}

	return results, total, nil
}

// ListItems returns items matching the filter with pagination.
// Returns (results, totalCount, error).
func (s *Store) ListItems(f ItemFilter) ([]*Item, int, error) { return listItems(s.db, f) }

// ListItems returns items matching the filter within a transaction.
func (t *Tx) ListItems(f ItemFilter) ([]*Item, int, error) { return listItems(t.tx, f) }

func countItems(q querier, f ItemFilter) (int, error) {
	join, whereClause, args := buildItemWhere(f)
	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM media_items i"+join+whereClause, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return total, nil
}

// CountItems returns the number of items matching the filter without
// loading them. Cheap cardinality check for removal decisions.
func (s *Store) CountItems(f ItemFilter) (int, error) { return countItems(s.db, f) }

// CountItems returns the matching item count within a transaction.
func (t *Tx) CountItems(f ItemFilter) (int, error) { return countItems(t.tx, f) }
