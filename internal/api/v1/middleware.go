package v1

import "net/http"

// requireSync wraps a handler and returns 503 if the sync service is not
// configured.
func (s *Server) requireSync(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Sync == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Sync service not configured")
			return
		}
		next(w, r)
	}
}

// requireSearcher wraps a handler and returns 503 if the searcher is not
// configured.
func (s *Server) requireSearcher(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Searcher == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Searcher not configured")
			return
		}
		next(w, r)
	}
}

// requireEventLog wraps a handler and returns 503 if the event log is not
// configured.
func (s *Server) requireEventLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.EventLog == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Event log not configured")
			return
		}
		next(w, r)
	}
}
