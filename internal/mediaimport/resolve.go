package mediaimport

import (
	"fmt"
	"strings"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// resolveParent searches the in-run resolution map for a parent whose title
// exactly matches. For tvshows the year must also match when both sides
// carry one. Multiple candidates are disambiguated by checking whether the
// child's path descends from the candidate's path. Returns nil when no
// parent resolves; absence is not an error.
func (h *baseHandler) resolveParent(parentType library.MediaType, title string, year int, childPath string) *library.Item {
	m := h.sess.parentMap(parentType)
	if m == nil || title == "" {
		return nil
	}

	var matches []*library.Item
	for _, candidate := range m[resolutionKey(title)] {
		if candidate.Title != title {
			continue
		}
		if parentType == library.MediaTypeTvShow && year > 0 && candidate.Year > 0 && candidate.Year != year {
			continue
		}
		matches = append(matches, candidate)
	}

	switch len(matches) {
	case 0:
		return nil
	case 1:
		return matches[0]
	}

	for _, candidate := range matches {
		if candidate.Path != "" && childPath != "" && strings.HasPrefix(childPath, candidate.Path) {
			return candidate
		}
	}
	return matches[0]
}

// synthesizeParent builds a minimal parent record from fields inherited off
// the child.
func synthesizeParent(parentType library.MediaType, child *library.Item, title string, parentPath string) *library.Item {
	parent := &library.Item{
		MediaType: parentType,
		Title:     title,
		Path:      parentPath,
		Season:    -1,
		Episode:   -1,
		Cast:      child.Cast,
		Genre:     child.Genre,
		Studio:    child.Studio,
		Country:   child.Country,
		Director:  child.Director,
		Enabled:   true,
	}
	if parentType == library.MediaTypeTvShow {
		parent.Year = child.Year
	}
	return parent
}

// findOrCreateParent resolves a parent for the child, creating a synthetic
// one when none exists. Creation goes through the parent type's handler
// when one is available so parent semantics live in one place; otherwise
// the record is written directly. Either way the new parent lands in the
// in-run resolution map so later children resolve to it.
func (h *baseHandler) findOrCreateParent(imp *registry.Import, parentType library.MediaType, child *library.Item, title string, parentPath string) (*library.Item, error) {
	if parent := h.resolveParent(parentType, title, child.Year, child.Path); parent != nil {
		// The parent may have been created by another source; tag it with
		// this import too so its two-tier removal sees this contribution.
		if err := h.sess.tx.LinkItemToImport(parent.DbID, imp.ID, parentType); err != nil {
			return nil, fmt.Errorf("link %s %q to %s: %w", parentType, title, imp.Describe(), err)
		}
		return parent, nil
	}

	parent := synthesizeParent(parentType, child, title, parentPath)

	parentHandler, err := h.lookup.Handler(parentType)
	if err == nil {
		if err := parentHandler.AddImportedItem(imp, parent); err != nil {
			return nil, fmt.Errorf("%w: %s %q for %q: %v", ErrParentCreation, parentType, title, child.Label(), err)
		}
	} else {
		if err := h.sess.tx.AddItem(parent); err != nil {
			return nil, fmt.Errorf("%w: %s %q for %q: %v", ErrParentCreation, parentType, title, child.Label(), err)
		}
		if err := h.sess.tx.LinkItemToImport(parent.DbID, imp.ID, parentType); err != nil {
			return nil, fmt.Errorf("%w: link %s %q: %v", ErrParentCreation, parentType, title, err)
		}
	}
	if parent.DbID <= 0 {
		return nil, fmt.Errorf("%w: %s %q for %q: no id assigned", ErrParentCreation, parentType, title, child.Label())
	}

	h.sess.recordParent(parent)
	return parent, nil
}
