// Package v1 implements the native REST API for browsing sources,
// imports and imported items, and for triggering synchronization runs.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vmunix/mediasync/internal/events"
	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/mediaimport"
	"github.com/vmunix/mediasync/internal/registry"
	"github.com/vmunix/mediasync/internal/scheduler"
	"github.com/vmunix/mediasync/internal/search"
	"github.com/vmunix/mediasync/internal/server"
)

// ServerDeps contains the API server's dependencies. Required
// dependencies must be non-nil; optional ones may be nil and their
// endpoints answer 503.
type ServerDeps struct {
	// Required dependencies
	Library  *library.Store
	Registry *registry.Store

	// Optional dependencies (nil if not configured)
	Sync      *server.SyncService
	Cleaner   *mediaimport.Cleaner
	Searcher  *search.Searcher
	Scheduler *scheduler.Scheduler
	EventLog  *events.EventLog
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Library == nil {
		return errors.New("library store is required")
	}
	if d.Registry == nil {
		return errors.New("registry store is required")
	}
	return nil
}

// Server is the v1 API server.
type Server struct {
	deps       ServerDeps
	eventTypes *events.Registry
}

// New creates a new v1 API server.
func New(deps ServerDeps) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	return &Server{deps: deps, eventTypes: events.DefaultRegistry()}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Sources
	mux.HandleFunc("GET /api/v1/sources", s.listSources)
	mux.HandleFunc("POST /api/v1/sources", s.addSource)
	mux.HandleFunc("GET /api/v1/sources/{id}", s.getSource)
	mux.HandleFunc("PUT /api/v1/sources/{id}", s.updateSource)
	mux.HandleFunc("DELETE /api/v1/sources/{id}", s.deleteSource)
	mux.HandleFunc("GET /api/v1/sources/{id}/imports", s.listSourceImports)
	mux.HandleFunc("POST /api/v1/sources/{id}/sync", s.requireSync(s.syncSource))

	// Imports
	mux.HandleFunc("GET /api/v1/imports", s.listImports)
	mux.HandleFunc("POST /api/v1/imports", s.addImport)
	mux.HandleFunc("GET /api/v1/imports/{id}", s.getImport)
	mux.HandleFunc("PUT /api/v1/imports/{id}", s.updateImport)
	mux.HandleFunc("DELETE /api/v1/imports/{id}", s.deleteImport)
	mux.HandleFunc("POST /api/v1/imports/{id}/sync", s.requireSync(s.syncImport))
	mux.HandleFunc("GET /api/v1/imports/{id}/events", s.requireEventLog(s.listImportEvents))

	// Items & search
	mux.HandleFunc("GET /api/v1/items", s.listItems)
	mux.HandleFunc("GET /api/v1/search", s.requireSearcher(s.searchItems))

	// System
	mux.HandleFunc("GET /api/v1/events", s.requireEventLog(s.listEvents))
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// queryString extracts an optional string from query string.
func queryString(r *http.Request, name string) *string {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	return &val
}

// knownMediaTypes guards API input against typos; the storage layer
// accepts any string.
var knownMediaTypes = map[library.MediaType]bool{
	library.MediaTypeMovie:      true,
	library.MediaTypeVideoSet:   true,
	library.MediaTypeTvShow:     true,
	library.MediaTypeSeason:     true,
	library.MediaTypeEpisode:    true,
	library.MediaTypeMusicVideo: true,
}

func parseMediaTypes(raw []string) ([]library.MediaType, error) {
	if len(raw) == 0 {
		return nil, errors.New("media_types must not be empty")
	}
	types := make([]library.MediaType, len(raw))
	for i, t := range raw {
		mt := library.MediaType(t)
		if !knownMediaTypes[mt] {
			return nil, fmt.Errorf("unknown media type %q", t)
		}
		types[i] = mt
	}
	return types, nil
}
