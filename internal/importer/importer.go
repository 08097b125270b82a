// Package importer maps source importer protocols to item retrievers.
// Sources name their lookup protocol by identifier; concrete retriever
// implementations register a factory for theirs at daemon startup.
package importer

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vmunix/mediasync/internal/mediaimport"
	"github.com/vmunix/mediasync/internal/registry"
)

// Factory builds an item retriever bound to one source.
type Factory func(src *registry.Source) (mediaimport.ItemRetriever, error)

// Registry holds the known importer protocols.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *slog.Logger
}

// NewRegistry creates an empty protocol registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		factories: make(map[string]Factory),
		logger:    logger.With("component", "importer"),
	}
}

// Register adds a retriever factory for a protocol identifier.
func (r *Registry) Register(protocol string, f Factory) error {
	if protocol == "" {
		return fmt.Errorf("%w: empty protocol identifier", ErrInvalidProtocol)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[protocol]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProtocol, protocol)
	}
	r.factories[protocol] = f
	r.logger.Debug("registered importer protocol", "protocol", protocol)
	return nil
}

// Protocols returns the registered protocol identifiers, sorted.
func (r *Registry) Protocols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ForSource builds a retriever for the source's importer protocol.
func (r *Registry) ForSource(src *registry.Source) (mediaimport.ItemRetriever, error) {
	r.mu.RLock()
	f, ok := r.factories[src.ImporterID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q for source %s", ErrUnknownProtocol, src.ImporterID, src.Identifier)
	}
	ret, err := f(src)
	if err != nil {
		return nil, fmt.Errorf("build retriever for source %s: %w", src.Identifier, err)
	}
	return ret, nil
}
