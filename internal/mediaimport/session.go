package mediaimport

import (
	"fmt"
	"log/slog"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
	"github.com/vmunix/mediasync/pkg/titles"
)

// session is the mutable state of one synchronization run. It owns the run
// transaction and the in-run parent resolution maps. Handlers created for a
// run all share the same session, so nested handler calls (episode handler
// resolving a tvshow) reuse the open transaction instead of opening a
// second one.
type session struct {
	store  *library.Store
	tx     *library.Tx
	logger *slog.Logger

	// title -> candidate parents, built at StartSynchronisation and kept
	// current as parents are created, giving read-your-writes within the
	// run without storage round-trips.
	shows map[string][]*library.Item
	sets  map[string][]*library.Item

	// basePath is the owning source's root path; its path row is
	// registered lazily on first write.
	basePath     string
	sourcePathID *int64
}

func newSession(store *library.Store, logger *slog.Logger) *session {
	return &session{
		store:  store,
		logger: logger,
		shows:  make(map[string][]*library.Item),
		sets:   make(map[string][]*library.Item),
	}
}

func (s *session) begin() error {
	if s.tx != nil {
		return fmt.Errorf("session transaction already open")
	}
	tx, err := s.store.Begin()
	if err != nil {
		return err
	}
	s.tx = tx
	return nil
}

func (s *session) commit() error {
	if s.tx == nil {
		return fmt.Errorf("session has no open transaction")
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

func (s *session) rollback() {
	if s.tx == nil {
		return
	}
	if err := s.tx.Rollback(); err != nil {
		s.logger.Warn("rollback failed", "error", err)
	}
	s.tx = nil
}

// active reports whether a run transaction is open.
func (s *session) active() bool {
	return s.tx != nil
}

// sourcePath returns the path row id for the import's source base path,
// registering it on first use.
func (s *session) sourcePath(imp *registry.Import) (int64, error) {
	if s.sourcePathID != nil {
		return *s.sourcePathID, nil
	}
	if s.basePath == "" {
		return 0, fmt.Errorf("no base path known for source %q", imp.SourceID)
	}
	id, err := s.tx.RegisterPath(s.basePath, nil)
	if err != nil {
		return 0, fmt.Errorf("register source path: %w", err)
	}
	s.sourcePathID = &id
	return id, nil
}

func resolutionKey(title string) string {
	return titles.Clean(title)
}

// parentMap returns the resolution map for a parent media type.
func (s *session) parentMap(mediaType library.MediaType) map[string][]*library.Item {
	switch mediaType {
	case library.MediaTypeTvShow:
		return s.shows
	case library.MediaTypeVideoSet:
		return s.sets
	default:
		return nil
	}
}

// primeParents fills a resolution map from all local parents of the given
// type, regardless of source, so children from this import can attach to
// parents another source created.
func (s *session) primeParents(mediaType library.MediaType) error {
	m := s.parentMap(mediaType)
	if m == nil {
		return nil
	}
	if len(m) > 0 {
		return nil
	}
	items, _, err := s.tx.ListItems(library.ItemFilter{MediaType: &mediaType})
	if err != nil {
		return fmt.Errorf("load local %s items: %w", mediaType, err)
	}
	for _, it := range items {
		key := resolutionKey(it.Title)
		m[key] = append(m[key], it)
	}
	return nil
}

// recordParent registers a newly created parent in the resolution map so
// later children in the same run resolve to it.
func (s *session) recordParent(item *library.Item) {
	m := s.parentMap(item.MediaType)
	if m == nil {
		return
	}
	key := resolutionKey(item.Title)
	m[key] = append(m[key], item)
}
