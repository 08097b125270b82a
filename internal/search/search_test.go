package search

import (
	"database/sql"
	_ "embed"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/mediasync/internal/library"
)

//go:embed testdata/schema.sql
var testSchema string

func setupSearcher(t *testing.T) (*Searcher, *library.Store) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	lib := library.NewStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSearcher(lib, logger), lib
}

func addMovie(t *testing.T, lib *library.Store, title string, enabled bool) *library.Item {
	t.Helper()
	it := &library.Item{
		MediaType: library.MediaTypeMovie,
		Title:     title,
		Year:      2020,
		Season:    -1,
		Episode:   -1,
		Path:      "smb://nas/movies/" + title + ".mkv",
		Enabled:   enabled,
	}
	require.NoError(t, lib.AddItem(it))
	return it
}

func TestSearch_ExactTitleFirst(t *testing.T) {
	s, lib := setupSearcher(t)
	addMovie(t, lib, "Heat", true)
	addMovie(t, lib, "Dead Heat", true)
	addMovie(t, lib, "Ronin", true)

	results, err := s.Search(Query{Text: "Heat"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Heat", results[0].Item.Title)
	assert.InDelta(t, 1.0, results[0].Score, 0.001)
}

func TestSearch_NormalizedMatching(t *testing.T) {
	s, lib := setupSearcher(t)
	addMovie(t, lib, "The Terminator", true)

	// Leading article and casing are ignored by normalization.
	results, err := s.Search(Query{Text: "terminator"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "The Terminator", results[0].Item.Title)
}

func TestSearch_SkipsDisabledItems(t *testing.T) {
	s, lib := setupSearcher(t)
	addMovie(t, lib, "Heat", false)

	results, err := s.Search(Query{Text: "Heat"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_MediaTypeFilter(t *testing.T) {
	s, lib := setupSearcher(t)
	addMovie(t, lib, "Foo", true)
	showItem := &library.Item{
		MediaType: library.MediaTypeTvShow,
		Title:     "Foo",
		Season:    -1,
		Episode:   -1,
		Path:      "smb://nas/tv/Foo/",
		Enabled:   true,
	}
	require.NoError(t, lib.AddItem(showItem))

	mt := library.MediaTypeTvShow
	results, err := s.Search(Query{Text: "Foo", MediaType: &mt})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, library.MediaTypeTvShow, results[0].Item.MediaType)
}

func TestSearch_Limit(t *testing.T) {
	s, lib := setupSearcher(t)
	addMovie(t, lib, "Alien", true)
	addMovie(t, lib, "Aliens", true)
	addMovie(t, lib, "Alien 3", true)

	results, err := s.Search(Query{Text: "Alien", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_WeakMatchesDropped(t *testing.T) {
	s, lib := setupSearcher(t)
	addMovie(t, lib, "Heat", true)

	results, err := s.Search(Query{Text: "Completely Unrelated Documentary"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_EmptyQuery(t *testing.T) {
	s, _ := setupSearcher(t)

	_, err := s.Search(Query{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
