// internal/api/v1/events.go
package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vmunix/mediasync/internal/events"
	"github.com/vmunix/mediasync/internal/registry"
)

const maxEventLimit = 1000

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 1 || limit > maxEventLimit {
		limit = 50
	}

	recs, err := s.deps.EventLog.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.eventsToResponse(recs))
}

func (s *Server) listImportEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if _, err := s.deps.Registry.GetImport(id); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Import not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	recs, err := s.deps.EventLog.ForEntity(events.EntityImport, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.eventsToResponse(recs))
}

func (s *Server) eventsToResponse(recs []events.RawEvent) listEventsResponse {
	resp := listEventsResponse{
		Items: make([]eventResponse, len(recs)),
		Total: len(recs),
	}
	for i, rec := range recs {
		resp.Items[i] = eventResponse{
			ID:         rec.ID,
			EventType:  rec.EventType,
			EntityType: rec.EntityType,
			EntityID:   rec.EntityID,
			OccurredAt: rec.OccurredAt.Format(time.RFC3339),
			Summary:    s.summarizeEvent(rec),
		}
	}
	return resp
}

// summarizeEvent decodes the persisted payload into a one-line summary.
// Undecodable events keep an empty summary rather than failing the list.
func (s *Server) summarizeEvent(rec events.RawEvent) string {
	decoded, err := s.eventTypes.Unmarshal(rec)
	if err != nil {
		return ""
	}
	switch e := decoded.(type) {
	case *events.ScanStarted:
		return fmt.Sprintf("scan of %s started (run %s)", e.Source, e.RunID)
	case *events.ScanFinished:
		return fmt.Sprintf("scan of %s: %d added, %d updated, %d removed, %d failed",
			e.Source, e.Added, e.Updated, e.Removed, e.Failed)
	case *events.ItemChange:
		return fmt.Sprintf("%s %s", e.MediaType, e.Label)
	default:
		return ""
	}
}
