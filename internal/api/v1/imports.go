// internal/api/v1/imports.go
package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vmunix/mediasync/internal/registry"
)

func (s *Server) listImports(w http.ResponseWriter, r *http.Request) {
	filter := registry.ImportFilter{}
	if trigger := queryString(r, "trigger"); trigger != nil {
		mode := registry.TriggerMode(*trigger)
		if mode != registry.TriggerAuto && mode != registry.TriggerManual {
			writeError(w, http.StatusBadRequest, "INVALID_FILTER", "trigger must be 'auto' or 'manual'")
			return
		}
		filter.Trigger = &mode
	}

	imports, err := s.deps.Registry.ListImports(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listImportsResponse{
		Items: make([]importResponse, len(imports)),
		Total: len(imports),
	}
	for i, imp := range imports {
		resp.Items[i] = importToResponse(imp)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getImport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	imp, err := s.deps.Registry.GetImport(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Import not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, importToResponse(imp))
}

func (s *Server) addImport(w http.ResponseWriter, r *http.Request) {
	var req addImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	types, err := parseMediaTypes(req.MediaTypes)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_MEDIA_TYPES", err.Error())
		return
	}

	if _, err := s.deps.Registry.GetSource(req.SourceID); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Source not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	// One import per (source, media-type-group) pair.
	existing, err := s.deps.Registry.FindImport(req.SourceID, types)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "DUPLICATE", "Import already exists for this media type group")
		return
	}

	imp := &registry.Import{
		SourceID:   req.SourceID,
		MediaTypes: types,
		Settings:   registry.DefaultSettings(),
	}
	applyImportSettings(&imp.Settings, req.Trigger, req.UpdateImportedItems,
		req.UpdatePlaybackFromSource, req.UpdatePlaybackOnSource)

	if err := s.deps.Registry.AddImport(imp); err != nil {
		switch {
		case errors.Is(err, registry.ErrInvalid):
			writeError(w, http.StatusBadRequest, "INVALID_IMPORT", err.Error())
		case errors.Is(err, registry.ErrDuplicate):
			writeError(w, http.StatusConflict, "DUPLICATE", "Import already exists")
		default:
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, importToResponse(imp))
}

func (s *Server) updateImport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	imp, err := s.deps.Registry.GetImport(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Import not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	var req updateImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Trigger != nil {
		mode := registry.TriggerMode(*req.Trigger)
		if mode != registry.TriggerAuto && mode != registry.TriggerManual {
			writeError(w, http.StatusBadRequest, "INVALID_TRIGGER", "trigger must be 'auto' or 'manual'")
			return
		}
	}
	applyImportSettings(&imp.Settings, req.Trigger, req.UpdateImportedItems,
		req.UpdatePlaybackFromSource, req.UpdatePlaybackOnSource)

	if err := s.deps.Registry.UpdateImport(imp); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, importToResponse(imp))
}

// deleteImport removes the import and every item it contributed.
func (s *Server) deleteImport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	imp, err := s.deps.Registry.GetImport(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Import not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	if s.deps.Cleaner != nil {
		basePath := ""
		if src, err := s.deps.Registry.GetSource(imp.SourceID); err == nil {
			basePath = src.BasePath
		}
		if err := s.deps.Cleaner.RemoveImport(imp, basePath); err != nil {
			writeError(w, http.StatusInternalServerError, "CLEANUP_ERROR", err.Error())
			return
		}
	}

	if err := s.deps.Registry.DeleteImport(id); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func applyImportSettings(settings *registry.ImportSettings, trigger *string, updateItems, playbackFrom, playbackOn *bool) {
	if trigger != nil {
		settings.Trigger = registry.TriggerMode(*trigger)
	}
	if updateItems != nil {
		settings.UpdateImportedItems = *updateItems
	}
	if playbackFrom != nil {
		settings.UpdatePlaybackFromSource = *playbackFrom
	}
	if playbackOn != nil {
		settings.UpdatePlaybackOnSource = *playbackOn
	}
}
