package library

import (
	"fmt"
)

func linkItemToImport(q querier, itemID, importID int64, mediaType MediaType) error {
	_, err := q.Exec(
		"INSERT OR IGNORE INTO item_imports (item_id, import_id, media_type) VALUES (?, ?, ?)",
		itemID, importID, mediaType,
	)
	if err != nil {
		return fmt.Errorf("link item %d to import %d: %w", itemID, importID, mapSQLiteError(err))
	}
	return nil
}

// LinkItemToImport tags an item as originating from an import. Every
// persisted imported item carries exactly one such tag per import.
func (s *Store) LinkItemToImport(itemID, importID int64, mediaType MediaType) error {
	return linkItemToImport(s.db, itemID, importID, mediaType)
}

// LinkItemToImport tags an item within a transaction.
func (t *Tx) LinkItemToImport(itemID, importID int64, mediaType MediaType) error {
	return linkItemToImport(t.tx, itemID, importID, mediaType)
}

func unlinkItemFromImport(q querier, itemID, importID int64) error {
	_, err := q.Exec("DELETE FROM item_imports WHERE item_id = ? AND import_id = ?", itemID, importID)
	if err != nil {
		return fmt.Errorf("unlink item %d from import %d: %w", itemID, importID, mapSQLiteError(err))
	}
	return nil
}

// UnlinkItemFromImport removes an item's import tag without touching the
// item itself. Idempotent.
func (s *Store) UnlinkItemFromImport(itemID, importID int64) error {
	return unlinkItemFromImport(s.db, itemID, importID)
}

// UnlinkItemFromImport removes an import tag within a transaction.
func (t *Tx) UnlinkItemFromImport(itemID, importID int64) error {
	return unlinkItemFromImport(t.tx, itemID, importID)
}

func countItemImports(q querier, itemID int64) (int, error) {
	var n int
	if err := q.QueryRow("SELECT COUNT(*) FROM item_imports WHERE item_id = ?", itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count item %d imports: %w", itemID, err)
	}
	return n, nil
}

// CountItemImports returns how many imports still reference an item.
func (s *Store) CountItemImports(itemID int64) (int, error) { return countItemImports(s.db, itemID) }

// CountItemImports returns an item's import reference count within a transaction.
func (t *Tx) CountItemImports(itemID int64) (int, error) { return countItemImports(t.tx, itemID) }

func setItemsEnabled(q querier, importID int64, mediaType MediaType, enabled bool) error {
	_, err := q.Exec(`
		UPDATE media_items SET enabled = ?
		WHERE id IN (SELECT item_id FROM item_imports WHERE import_id = ? AND media_type = ?)`,
		enabled, importID, mediaType,
	)
	if err != nil {
		return fmt.Errorf("set items enabled for import %d: %w", importID, mapSQLiteError(err))
	}
	return nil
}

// SetItemsEnabled toggles the visibility flag on every item linked to
// (import, mediaType) without deleting anything.
func (s *Store) SetItemsEnabled(importID int64, mediaType MediaType, enabled bool) error {
	return setItemsEnabled(s.db, importID, mediaType, enabled)
}

// SetItemsEnabled toggles item visibility within a transaction.
func (t *Tx) SetItemsEnabled(importID int64, mediaType MediaType, enabled bool) error {
	return setItemsEnabled(t.tx, importID, mediaType, enabled)
}
