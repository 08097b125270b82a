// internal/api/v1/sources.go
package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vmunix/mediasync/internal/registry"
)

func (s *Server) listSources(w http.ResponseWriter, r *http.Request) {
	filter := registry.SourceFilter{}
	if activeStr := queryString(r, "active"); activeStr != nil {
		active, err := strconv.ParseBool(*activeStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FILTER", "active must be a boolean")
			return
		}
		filter.Active = &active
	}

	sources, err := s.deps.Registry.ListSources(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listSourcesResponse{
		Items: make([]sourceResponse, len(sources)),
		Total: len(sources),
	}
	for i, src := range sources {
		resp.Items[i] = sourceToResponse(src)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getSource(w http.ResponseWriter, r *http.Request) {
	src, err := s.deps.Registry.GetSource(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Source not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sourceToResponse(src))
}

func (s *Server) addSource(w http.ResponseWriter, r *http.Request) {
	var req addSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	src := &registry.Source{
		Identifier:    req.Identifier,
		BasePath:      req.BasePath,
		FriendlyName:  req.FriendlyName,
		IconURL:       req.IconURL,
		ImporterID:    req.ImporterID,
		ManuallyAdded: true,
		Active:        true,
		Ready:         true,
	}
	if src.FriendlyName == "" {
		src.FriendlyName = src.Identifier
	}
	if req.Active != nil {
		src.Active = *req.Active
	}
	if req.Ready != nil {
		src.Ready = *req.Ready
	}

	if err := s.deps.Registry.AddSource(src); err != nil {
		switch {
		case errors.Is(err, registry.ErrInvalid):
			writeError(w, http.StatusBadRequest, "INVALID_SOURCE", err.Error())
		case errors.Is(err, registry.ErrDuplicate):
			writeError(w, http.StatusConflict, "DUPLICATE", "Source already exists")
		default:
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, sourceToResponse(src))
}

func (s *Server) updateSource(w http.ResponseWriter, r *http.Request) {
	src, err := s.deps.Registry.GetSource(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Source not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	var req updateSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	if req.FriendlyName != nil {
		src.FriendlyName = *req.FriendlyName
	}
	if req.IconURL != nil {
		src.IconURL = *req.IconURL
	}
	if req.Active != nil {
		src.Active = *req.Active
	}
	if req.Ready != nil {
		src.Ready = *req.Ready
	}

	if err := s.deps.Registry.UpdateSource(src); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sourceToResponse(src))
}

// deleteSource removes the source, its imports, and every item the
// imports contributed. Shared parents survive per the two-tier policy.
func (s *Server) deleteSource(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("id")
	src, err := s.deps.Registry.GetSource(identifier)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Source not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	imports, err := s.deps.Registry.ListImports(registry.ImportFilter{SourceID: &identifier})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	for _, imp := range imports {
		if s.deps.Cleaner != nil {
			if err := s.deps.Cleaner.RemoveImport(imp, src.BasePath); err != nil {
				writeError(w, http.StatusInternalServerError, "CLEANUP_ERROR", err.Error())
				return
			}
		}
		if err := s.deps.Registry.DeleteImport(imp.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
			return
		}
	}

	if err := s.deps.Registry.DeleteSource(identifier); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listSourceImports(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("id")
	if _, err := s.deps.Registry.GetSource(identifier); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Source not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	imports, err := s.deps.Registry.ListImports(registry.ImportFilter{SourceID: &identifier})
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
