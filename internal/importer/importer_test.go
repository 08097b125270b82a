package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/mediaimport"
	"github.com/vmunix/mediasync/internal/registry"
)

type staticRetriever struct {
	items []mediaimport.ChangesetItem
}

func (s *staticRetriever) RetrieveItems(context.Context, *registry.Import, library.MediaType) ([]mediaimport.ChangesetItem, bool, error) {
	return s.items, false, nil
}

func testRegistry() *Registry {
	return NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegistry_RegisterAndForSource(t *testing.T) {
	r := testRegistry()
	want := &staticRetriever{}
	err := r.Register("plex", func(*registry.Source) (mediaimport.ItemRetriever, error) {
		return want, nil
	})
	require.NoError(t, err)

	got, err := r.ForSource(&registry.Source{Identifier: "plex-main", ImporterID: "plex"})
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestRegistry_DuplicateProtocol(t *testing.T) {
	r := testRegistry()
	f := func(*registry.Source) (mediaimport.ItemRetriever, error) { return &staticRetriever{}, nil }
	require.NoError(t, r.Register("plex", f))

	err := r.Register("plex", f)
	assert.ErrorIs(t, err, ErrDuplicateProtocol)
}

func TestRegistry_EmptyProtocol(t *testing.T) {
	r := testRegistry()
	err := r.Register("", func(*registry.Source) (mediaimport.ItemRetriever, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrInvalidProtocol)
}

func TestRegistry_UnknownProtocol(t *testing.T) {
	r := testRegistry()
	_, err := r.ForSource(&registry.Source{Identifier: "nas", ImporterID: "upnp"})
	assert.ErrorIs(t, err, ErrUnknownProtocol)
}

func TestRegistry_FactoryError(t *testing.T) {
	r := testRegistry()
	boom := errors.New("no credentials")
	require.NoError(t, r.Register("plex", func(*registry.Source) (mediaimport.ItemRetriever, error) {
		return nil, boom
	}))

	_, err := r.ForSource(&registry.Source{Identifier: "plex-main", ImporterID: "plex"})
	assert.ErrorIs(t, err, boom)
}

func TestRegistry_Protocols(t *testing.T) {
	r := testRegistry()
	f := func(*registry.Source) (mediaimport.ItemRetriever, error) { return &staticRetriever{}, nil }
	require.NoError(t, r.Register("upnp", f))
	require.NoError(t, r.Register("plex", f))

	assert.Equal(t, []string{"plex", "upnp"}, r.Protocols())
}
