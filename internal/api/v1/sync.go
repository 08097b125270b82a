// internal/api/v1/sync.go
package v1

import (
	"errors"
	"net/http"

	"github.com/vmunix/mediasync/internal/importer"
	"github.com/vmunix/mediasync/internal/mediaimport"
	"github.com/vmunix/mediasync/internal/registry"
	"github.com/vmunix/mediasync/internal/server"
)

// syncImport runs one synchronization and reports the run result. The
// run executes synchronously; clients wanting fire-and-forget can watch
// the event stream instead.
func (s *Server) syncImport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	res, err := s.deps.Sync.SyncImportByID(r.Context(), id)
	if err != nil {
		writeSyncError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runToResponse(res))
}

// syncSource runs every import of the source in order.
func (s *Server) syncSource(w http.ResponseWriter, r *http.Request) {
	results, err := s.deps.Sync.SyncSource(r.Context(), r.PathValue("id"))
	if err != nil {
		writeSyncError(w, err)
		return
	}

	resp := make([]runResponse, len(results))
	for i, res := range results {
		resp[i] = runToResponse(res)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSyncError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, mediaimport.ErrSyncInFlight):
		writeError(w, http.StatusConflict, "SYNC_IN_FLIGHT", err.Error())
	case errors.Is(err, server.ErrSourceInactive), errors.Is(err, server.ErrSourceNotReady):
		writeError(w, http.StatusConflict, "SOURCE_NOT_READY", err.Error())
	case errors.Is(err, importer.ErrUnknownProtocol):
		writeError(w, http.StatusServiceUnavailable, "NO_IMPORTER", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "SYNC_ERROR", err.Error())
	}
}
