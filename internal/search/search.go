// Package search ranks imported library items against free-text title
// queries using normalized Jaro-Winkler similarity.
package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/pkg/titles"
)

const (
	// defaultMinScore filters out weak fuzzy matches.
	defaultMinScore = 0.7

	// defaultLimit caps a search's result count when the query doesn't.
	defaultLimit = 20
)

// Query specifies what to search for.
type Query struct {
	Text      string
	MediaType *library.MediaType // nil searches all types
	Limit     int                // 0 applies the default
}

// Result pairs a library item with its similarity score.
type Result struct {
	Item  *library.Item
	Score float64 // Jaro-Winkler similarity (0.0-1.0)
}

// Searcher runs title searches over enabled imported items.
type Searcher struct {
	library  *library.Store
	minScore float64
	logger   *slog.Logger
}

// NewSearcher creates a searcher over the library store.
func NewSearcher(lib *library.Store, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{
		library:  lib,
		minScore: defaultMinScore,
		logger:   logger.With("component", "search"),
	}
}

// Search scores enabled items against the query title and returns them in
// descending score order. Ties are broken by title for stable output.
func (s *Searcher) Search(q Query) ([]Result, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, ErrEmptyQuery
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	enabled := true
	items, _, err := s.library.ListItems(library.ItemFilter{
		MediaType: q.MediaType,
		Enabled:   &enabled,
	})
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, it := range items {
		score := titles.Similarity(q.Text, it.Title)
		if score < s.minScore {
			continue
		}
		results = append(results, Result{Item: it, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.Title < results[j].Item.Title
	})
	if len(results) > limit {
		results = results[:limit]
	}

	s.logger.Debug("search finished",
		"query", q.Text,
		"candidates", len(items),
		"results", len(results))
	return results, nil
}
