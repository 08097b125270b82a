// internal/api/v1/status.go
package v1

import (
	"net/http"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	sources, err := s.deps.Registry.ListSources(registry.SourceFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	imports, err := s.deps.Registry.ListImports(registry.ImportFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	counts := make(map[string]int, len(knownMediaTypes))
	for mt := range knownMediaTypes {
		n, err := s.deps.Library.CountItems(library.ItemFilter{MediaType: &mt})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
			return
		}
		counts[string(mt)] = n
	}

	resp := statusResponse{
		Status:  "ok",
		Sources: len(sources),
		Imports: len(imports),
		Items:   counts,
	}
	if s.deps.Scheduler != nil {
		if next, err := s.deps.Scheduler.NextRun(); err == nil && !next.IsZero() {
			resp.NextAutoSync = &next
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
