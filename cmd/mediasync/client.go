package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the mediasync server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new mediasync API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", reader)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) put(path string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) delete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// API response types (mirror server types)

type SourceResponse struct {
	Identifier    string  `json:"identifier"`
	FriendlyName  string  `json:"friendly_name"`
	BasePath      string  `json:"base_path"`
	IconURL       string  `json:"icon_url,omitempty"`
	ImporterID    string  `json:"importer_id,omitempty"`
	ManuallyAdded bool    `json:"manually_added"`
	Active        bool    `json:"active"`
	Ready         bool    `json:"ready"`
	LastSynced    *string `json:"last_synced,omitempty"`
	AddedAt       string  `json:"added_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ListSourcesResponse struct {
	Items []SourceResponse `json:"items"`
	Total int              `json:"total"`
}

type ImportResponse struct {
	ID                       int64    `json:"id"`
	SourceID                 string   `json:"source_id"`
	MediaTypes               []string `json:"media_types"`
	Trigger                  string   `json:"trigger"`
	UpdateImportedItems      bool     `json:"update_imported_items"`
	UpdatePlaybackFromSource bool     `json:"update_playback_from_source"`
	UpdatePlaybackOnSource   bool     `json:"update_playback_on_source"`
	LastSynced               *string  `json:"last_synced,omitempty"`
}

type ListImportsResponse struct {
	Items []ImportResponse `json:"items"`
	Total int              `json:"total"`
}

type ItemResponse struct {
	ID        int64  `json:"id"`
	MediaType string `json:"media_type"`
	Title     string `json:"title"`
	Year      int    `json:"year,omitempty"`
	ShowTitle string `json:"show_title,omitempty"`
	Season    int    `json:"season,omitempty"`
	Episode   int    `json:"episode,omitempty"`
	PlayCount int    `json:"play_count"`
	Path      string `json:"path"`
	Enabled   bool   `json:"enabled"`
}

type ListItemsResponse struct {
	Items  []ItemResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type RunResponse struct {
	RunID     string `json:"run_id"`
	Added     int    `json:"added"`
	Updated   int    `json:"updated"`
	Removed   int    `json:"removed"`
	Unchanged int    `json:"unchanged"`
	Failed    int    `json:"failed"`
}

type SearchResultResponse struct {
	Score float64      `json:"score"`
	Item  ItemResponse `json:"item"`
}

type ListSearchResponse struct {
	Items []SearchResultResponse `json:"items"`
	Total int                    `json:"total"`
}

type EventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	OccurredAt string `json:"occurred_at"`
	Summary    string `json:"summary,omitempty"`
}

type ListEventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
}

type StatusResponse struct {
	Status       string         `json:"status"`
	Sources      int            `json:"sources"`
	Imports      int            `json:"imports"`
	Items        map[string]int `json:"items"`
	NextAutoSync *string        `json:"next_auto_sync,omitempty"`
}

// API methods

func (c *Client) Sources() (*ListSourcesResponse, error) {
	var resp ListSourcesResponse
	if err := c.get("/api/v1/sources", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddSource(identifier, basePath, name, importerID string) (*SourceResponse, error) {
	req := map[string]any{
		"identifier":  identifier,
		"base_path":   basePath,
		"importer_id": importerID,
	}
	if name != "" {
		req["friendly_name"] = name
	}

	var resp SourceResponse
	if err := c.post("/api/v1/sources", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetSourceActive(identifier string, active bool) (*SourceResponse, error) {
	req := map[string]any{"active": active}
	var resp SourceResponse
	if err := c.put("/api/v1/sources/"+url.PathEscape(identifier), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RemoveSource(identifier string) error {
	return c.delete("/api/v1/sources/" + url.PathEscape(identifier))
}

func (c *Client) SourceImports(identifier string) (*ListImportsResponse, error) {
	var resp ListImportsResponse
	if err := c.get("/api/v1/sources/"+url.PathEscape(identifier)+"/imports", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Imports() (*ListImportsResponse, error) {
	var resp ListImportsResponse
	if err := c.get("/api/v1/imports", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddImport(sourceID string, mediaTypes []string, trigger string) (*ImportResponse, error) {
	req := map[string]any{
		"source_id":   sourceID,
		"media_types": mediaTypes,
	}
	if trigger != "" {
		req["trigger"] = trigger
	}

	var resp ImportResponse
	if err := c.post("/api/v1/imports", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RemoveImport(id int64) error {
	return c.delete(fmt.Sprintf("/api/v1/imports/%d", id))
}

func (c *Client) SyncImport(id int64) (*RunResponse, error) {
	var resp RunResponse
	if err := c.post(fmt.Sprintf("/api/v1/imports/%d/sync", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SyncSource(identifier string) ([]RunResponse, error) {
	var resp []RunResponse
	if err := c.post("/api/v1/sources/"+url.PathEscape(identifier)+"/sync", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Items(mediaType string, limit, offset int) (*ListItemsResponse, error) {
	params := url.Values{}
	if mediaType != "" {
		params.Set("type", mediaType)
	}
	params.Set("limit", fmt.Sprint(limit))
	params.Set("offset", fmt.Sprint(offset))

	var resp ListItemsResponse
	if err := c.get("/api/v1/items?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Search(query, mediaType string) (*ListSearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if mediaType != "" {
		params.Set("type", mediaType)
	}

	var resp ListSearchResponse
	if err := c.get("/api/v1/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Events(limit int) (*ListEventsResponse, error) {
	path := fmt.Sprintf("/api/v1/events?limit=%d", limit)
	var resp ListEventsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ImportEvents(id int64) (*ListEventsResponse, error) {
	path := fmt.Sprintf("/api/v1/imports/%d/events", id)
	var resp ListEventsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
