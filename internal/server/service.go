// internal/server/service.go
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vmunix/mediasync/internal/importer"
	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/mediaimport"
	"github.com/vmunix/mediasync/internal/registry"
)

var (
	// ErrSourceInactive indicates the import's source is deactivated.
	ErrSourceInactive = errors.New("source is inactive")

	// ErrSourceNotReady indicates the import's source is not ready yet.
	ErrSourceNotReady = errors.New("source is not ready")
)

// SyncService resolves an import's source and retriever before handing
// the run to the synchronizer. It is the entry point the API, the CLI
// and the scheduler all share.
type SyncService struct {
	registry  *registry.Store
	library   *library.Store
	sync      *mediaimport.Synchronizer
	importers *importer.Registry
	logger    *slog.Logger
}

// NewSyncService creates the sync service.
func NewSyncService(reg *registry.Store, lib *library.Store, sync *mediaimport.Synchronizer, importers *importer.Registry, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{
		registry:  reg,
		library:   lib,
		sync:      sync,
		importers: importers,
		logger:    logger.With("component", "syncservice"),
	}
}

// SyncImport runs one synchronization for the import. The source must be
// active and ready, and its importer protocol must be registered.
func (s *SyncService) SyncImport(ctx context.Context, imp *registry.Import) (*mediaimport.RunResult, error) {
	src, err := s.registry.GetSource(imp.SourceID)
	if err != nil {
		return nil, fmt.Errorf("load source for %s: %w", imp.Describe(), err)
	}
	if !src.Active {
		return nil, fmt.Errorf("%w: %s", ErrSourceInactive, src.Identifier)
	}
	if !src.Ready {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotReady, src.Identifier)
	}

	retriever, err := s.importers.ForSource(src)
	if err != nil {
		return nil, err
	}
	return s.sync.Synchronize(ctx, imp, retriever)
}

// SyncImportByID loads the import and runs it.
func (s *SyncService) SyncImportByID(ctx context.Context, id int64) (*mediaimport.RunResult, error) {
	imp, err := s.registry.GetImport(id)
	if err != nil {
		return nil, err
	}
	return s.SyncImport(ctx, imp)
}

// SyncSource runs every import of the source in order. The first failure
// stops the pass; earlier runs stay committed.
func (s *SyncService) SyncSource(ctx context.Context, identifier string) ([]*mediaimport.RunResult, error) {
	imports, err := s.registry.ListImports(registry.ImportFilter{SourceID: &identifier})
	if err != nil {
		return nil, err
	}

	results := make([]*mediaimport.RunResult, 0, len(imports))
	for _, imp := range imports {
		res, err := s.SyncImport(ctx, imp)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// ReconcileEnabled aligns the enabled flag of imported items with their
// source's active state. Runs at daemon startup so items of a source
// deactivated while the daemon was down disappear from browsing.
func (s *SyncService) ReconcileEnabled() error {
	sources, err := s.registry.ListSources(registry.SourceFilter{})
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	for _, src := range sources {
		imports, err := s.registry.ListImports(registry.ImportFilter{SourceID: &src.Identifier})
		if err != nil {
			return fmt.Errorf("list imports of %s: %w", src.Identifier, err)
		}
		for _, imp := range imports {
			for _, mt := range imp.MediaTypes {
				if err := s.library.SetItemsEnabled(imp.ID, mt, src.Active); err != nil {
					return fmt.Errorf("set %s items enabled=%t for %s: %w",
						mt, src.Active, imp.Describe(), err)
				}
			}
		}
		s.logger.Debug("reconciled item enabled state",
			"source", src.Identifier,
			"active", src.Active,
			"imports", len(imports))
	}
	return nil
}
