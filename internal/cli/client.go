package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/hyperjump/docstore/internal/models"
)

// ErrNotFound is returned by Client.Get for an unknown id.
var ErrNotFound = errors.New("document not found")

// Client talks to a running docstore server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL (e.g. http://localhost:8080).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Save posts doc and returns the stored document.
func (c *Client) Save(doc *models.Document) (*models.Document, error) {
	var out models.Document
	if err := c.post("/api/v1/documents", doc, &out, http.StatusCreated, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search posts req (nil matches everything) and returns the matching documents.
func (c *Client) Search(req *models.SearchRequest) ([]*models.Document, error) {
	var out struct {
		Documents []*models.Document `json:"documents"`
	}
	if err := c.post("/api/v1/search", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// Get fetches a document by id.
func (c *Client) Get(id string) (*models.Document, error) {
	resp, err := c.http.Get(c.baseURL + "/api/v1/documents/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}
	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &doc, nil
}

// Status fetches GET /api/v1/status into out.
func (c *Client) Status(out any) error {
	resp, err := c.http.Get(c.baseURL + "/api/v1/status")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// WatchDirectories lists the server's watched seed directories.
func (c *Client) WatchDirectories() ([]string, error) {
	resp, err := c.http.Get(c.baseURL + "/api/v1/watch/directories")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}
	var out struct {
		Directories []string `json:"directories"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Directories, nil
}

// AddWatchDirectory asks the server to watch path and load the seed files already in it.
func (c *Client) AddWatchDirectory(path string) error {
	in := map[string]any{"path": path, "sync": true}
	var out map[string]string
	return c.post("/api/v1/watch/directories", in, &out, http.StatusCreated)
}

// RemoveWatchDirectory stops the server watching path. Documents already loaded stay stored.
func (c *Client) RemoveWatchDirectory(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/api/v1/watch/directories?path="+url.QueryEscape(path), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func (c *Client) post(path string, in, out any, okStatus ...int) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if !slices.Contains(okStatus, resp.StatusCode) {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
}
