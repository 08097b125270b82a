// internal/api/v1/items.go
package v1

import (
	"net/http"
	"strconv"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/search"
)

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	filter := library.ItemFilter{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if typeStr := queryString(r, "type"); typeStr != nil {
		mt := library.MediaType(*typeStr)
		if !knownMediaTypes[mt] {
			writeError(w, http.StatusBadRequest, "INVALID_TYPE", "unknown media type "+*typeStr)
			return
		}
		filter.MediaType = &mt
	}
	if importID := queryString(r, "import_id"); importID != nil {
		id, err := strconv.ParseInt(*importID, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FILTER", "import_id must be an integer")
			return
		}
		filter.ImportID = &id
	}
	if enabledStr := queryString(r, "enabled"); enabledStr != nil {
		enabled := *enabledStr == "true"
		filter.Enabled = &enabled
	}

	items, total, err := s.deps.Library.ListItems(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listItemsResponse{
		Items:  make([]itemResponse, len(items)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for i, it := range items {
		resp.Items[i] = itemToResponse(it)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) searchItems(w http.ResponseWriter, r *http.Request) {
	q := search.Query{
		Text:  r.URL.Query().Get("q"),
		Limit: queryInt(r, "limit", 0),
	}
	if typeStr := queryString(r, "type"); typeStr != nil {
		mt := library.MediaType(*typeStr)
		if !knownMediaTypes[mt] {
			writeError(w, http.StatusBadRequest, "INVALID_TYPE", "unknown media type "+*typeStr)
			return
		}
		q.MediaType = &mt
	}

	results, err := s.deps.Searcher.Search(q)
	if err != nil {
		if err == search.ErrEmptyQuery {
			writeError(w, http.StatusBadRequest, "EMPTY_QUERY", "query parameter q is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "SEARCH_ERROR", err.Error())
		return
	}

	resp := listSearchResponse{
		Items: make([]searchResultResponse, len(results)),
		Total: len(results),
	}
	for i, res := range results {
		resp.Items[i] = searchResultResponse{
			Score: res.Score,
			Item:  itemToResponse(res.Item),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
