package main

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Status_Success(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/status").
		ExpectGET().
		RespondJSON(StatusResponse{
			Status:  "ok",
			Sources: 2,
			Imports: 3,
			Items:   map[string]int{"movie": 150, "episode": 2400},
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Status()
	require.NoError(t, err)

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Sources)
	assert.Equal(t, 3, resp.Imports)
	assert.Equal(t, 150, resp.Items["movie"])
	assert.Equal(t, 2400, resp.Items["episode"])
	assert.Nil(t, resp.NextAutoSync)
}

func TestClient_Status_ServerError(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/status").
		ExpectGET().
		RespondError(http.StatusInternalServerError, "database connection failed").
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Status()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "database connection failed")
}

func TestClient_AddSource_SendsBody(t *testing.T) {
	var received map[string]any

	srv := newMockServer(t).
		ExpectPath("/api/v1/sources").
		ExpectPOST().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &received))
			w.WriteHeader(http.StatusCreated)
			respondJSON(t, w, SourceResponse{
				Identifier:   "plex-main",
				FriendlyName: "Living Room",
				BasePath:     "smb://plex/media/",
				Active:       true,
				Ready:        true,
			})
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	src, err := client.AddSource("plex-main", "smb://plex/media/", "Living Room", "plex")
	require.NoError(t, err)

	assert.Equal(t, "plex-main", received["identifier"])
	assert.Equal(t, "smb://plex/media/", received["base_path"])
	assert.Equal(t, "Living Room", received["friendly_name"])
	assert.Equal(t, "plex", received["importer_id"])
	assert.Equal(t, "plex-main", src.Identifier)
}

func TestClient_SyncImport(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/imports/3/sync").
		ExpectPOST().
		RespondJSON(RunResponse{RunID: "run-abc", Added: 5, Updated: 2, Removed: 1}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	run, err := client.SyncImport(3)
	require.NoError(t, err)

	assert.Equal(t, "run-abc", run.RunID)
	assert.Equal(t, 5, run.Added)
	assert.Equal(t, 2, run.Updated)
	assert.Equal(t, 1, run.Removed)
}

func TestClient_SyncImport_Conflict(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/imports/3/sync").
		ExpectPOST().
		RespondError(http.StatusConflict, `{"error":"sync already in flight","code":"SYNC_IN_FLIGHT"}`).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SyncImport(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "SYNC_IN_FLIGHT")
}

func TestClient_RemoveSource(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/sources/plex-main").
		ExpectDELETE().
		RespondStatus(http.StatusNoContent).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	require.NoError(t, client.RemoveSource("plex-main"))
}

func TestClient_Search_EncodesQuery(t *testing.T) {
	var receivedQuery string

	srv := newMockServer(t).
		ExpectPath("/api/v1/search").
		ExpectGET().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			receivedQuery = r.URL.Query().Get("q")
			respondJSON(t, w, ListSearchResponse{
				Items: []SearchResultResponse{
					{Score: 0.95, Item: ItemResponse{Title: "The Terminator", MediaType: "movie"}},
				},
				Total: 1,
			})
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	results, err := client.Search("the terminator", "movie")
	require.NoError(t, err)

	assert.Equal(t, "the terminator", receivedQuery)
	require.Len(t, results.Items, 1)
	assert.Equal(t, "The Terminator", results.Items[0].Item.Title)
	assert.InDelta(t, 0.95, results.Items[0].Score, 0.001)
}
