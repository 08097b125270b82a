package mediaimport_test

import (
	"database/sql"
	_ "embed"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/mediaimport"
	"github.com/vmunix/mediasync/internal/registry"
)

//go:embed testdata/schema.sql
var testSchema string

// env bundles the stores and engine components every synchronization test
// needs.
type env struct {
	db      *sql.DB
	library *library.Store
	reg     *registry.Store
	mgr     *mediaimport.Manager
	sync    *mediaimport.Synchronizer
	cleaner *mediaimport.Cleaner
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	logger := discardLogger()
	libStore := library.NewStore(db)
	regStore := registry.NewStore(db)
	mgr := mediaimport.NewManager(libStore, logger)

	return &env{
		db:      db,
		library: libStore,
		reg:     regStore,
		mgr:     mgr,
		sync:    mediaimport.NewSynchronizer(libStore, regStore, mgr, nil, logger),
		cleaner: mediaimport.NewCleaner(libStore, regStore, mgr, logger),
	}
}

// seedImport registers a source plus one import covering the given media
// types and returns the import.
func (e *env) seedImport(t *testing.T, sourceID, basePath string, types ...library.MediaType) *registry.Import {
	t.Helper()
	src := &registry.Source{
		Identifier:   sourceID,
		BasePath:     basePath,
		FriendlyName: sourceID,
		Active:       true,
		Ready:        true,
	}
	require.NoError(t, e.reg.AddSource(src))

	imp := &registry.Import{
		SourceID:   sourceID,
		MediaTypes: types,
		Settings:   registry.DefaultSettings(),
	}
	require.NoError(t, e.reg.AddImport(imp))
	return imp
}

// countItems returns how many items of the media type exist, regardless of
// import.
func (e *env) countItems(t *testing.T, mt library.MediaType) int {
	t.Helper()
	n, err := e.library.CountItems(library.ItemFilter{MediaType: &mt})
	require.NoError(t, err)
	return n
}

// itemsOf lists every item of the media type, regardless of import.
func (e *env) itemsOf(t *testing.T, mt library.MediaType) []*library.Item {
	t.Helper()
	items, _, err := e.library.ListItems(library.ItemFilter{MediaType: &mt})
	require.NoError(t, err)
	return items
}
