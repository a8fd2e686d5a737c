// Package docstore talks to the remote document store: a single hosted JSON
// document, addressable by an opaque ID, that holds the full catalog
// snapshot. Reads are public; writes replace the whole document and need a
// token. Every failure here is recoverable — callers fall back to the local
// cache tier.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"cattery/internal/models"
)

// SnapshotFilename is the name of the single file inside the hosted
// document that carries the JSON-encoded snapshot.
const SnapshotFilename = "catalog-data.json"

var (
	// ErrNoDocumentID means neither configuration nor the cached fallback
	// yielded a document ID; the coordinator runs local-only.
	ErrNoDocumentID = errors.New("docstore: no document id configured")

	// ErrNoToken means a write was attempted without a credential. Not a
	// real error upstream: the write degrades to local-only success.
	ErrNoToken = errors.New("docstore: no write token configured")

	// ErrNotFound means the document does not exist at the remote store.
	ErrNotFound = errors.New("docstore: document not found")
)

// document is the wire envelope of the hosted document: a map of named
// files, each carrying its content as a string.
type document struct {
	Description string                  `json:"description,omitempty"`
	Public      bool                    `json:"public,omitempty"`
	Files       map[string]documentFile `json:"files"`
}

type documentFile struct {
	Content string `json:"content"`
}

// Client reads and replaces the hosted snapshot document.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string

	mu     sync.Mutex
	docID  string
	loader *ConfigLoader
}

// NewClient creates a document store client. docID may be empty, in which
// case the loader resolves it lazily on first use; token may be empty, which
// disables writes (reads of a public document need no credential).
func NewClient(baseURL, docID, token string, loader *ConfigLoader) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		docID:      docID,
		loader:     loader,
	}
}

// FetchSnapshot downloads and decodes the hosted snapshot. No credential is
// sent; the document is publicly readable.
func (c *Client) FetchSnapshot(ctx context.Context) (*models.SyncSnapshot, error) {
	id, err := c.documentID(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/documents/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("docstore fetch: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("docstore fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("docstore fetch: unexpected status %d", resp.StatusCode)
	}

	var doc document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("docstore fetch: decode document: %w", err)
	}

	file, ok := doc.Files[SnapshotFilename]
	if !ok {
		return nil, fmt.Errorf("docstore fetch: document has no %s file", SnapshotFilename)
	}

	snap := models.EmptySnapshot()
	if err := json.Unmarshal([]byte(file.Content), snap); err != nil {
		return nil, fmt.Errorf("docstore fetch: decode snapshot: %w", err)
	}
	return snap, nil
}

// ReplaceSnapshot overwrites the hosted document with the given snapshot,
// stamped with a fresh lastSync. There is no partial update and no
// concurrency control: the last successful replace wins.
func (c *Client) ReplaceSnapshot(ctx context.Context, snap *models.SyncSnapshot) error {
	if c.token == "" {
		return ErrNoToken
	}
	id, err := c.documentID(ctx)
	if err != nil {
		return err
	}

	stamped := *snap
	stamped.LastSync = time.Now().UTC()

	body, err := encodeDocument(&stamped, "", false)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/documents/"+id, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("docstore replace: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("docstore replace: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("docstore replace: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// CreateDocument creates a new public document seeded with the given
// snapshot and returns its ID. Used by the one-time setup flow.
func (c *Client) CreateDocument(ctx context.Context, snap *models.SyncSnapshot) (string, error) {
	if c.token == "" {
		return "", ErrNoToken
	}

	stamped := *snap
	stamped.LastSync = time.Now().UTC()

	body, err := encodeDocument(&stamped, "Cattery catalog data", true)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("docstore create: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("docstore create: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("docstore create: unexpected status %d", resp.StatusCode)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("docstore create: decode response: %w", err)
	}

	c.mu.Lock()
	c.docID = created.ID
	c.mu.Unlock()
	return created.ID, nil
}

// documentID returns the configured ID, resolving it through the config
// loader (descriptor file, then cached fallback) the first time.
func (c *Client) documentID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.docID == "" && c.loader != nil {
		c.docID = c.loader.ResolveDocumentID(ctx)
	}
	if c.docID == "" {
		return "", ErrNoDocumentID
	}
	return c.docID, nil
}

func encodeDocument(snap *models.SyncSnapshot, description string, public bool) ([]byte, error) {
	content, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("docstore: encode snapshot: %w", err)
	}
	body, err := json.Marshal(document{
		Description: description,
		Public:      public,
		Files: map[string]documentFile{
			SnapshotFilename: {Content: string(content)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("docstore: encode document: %w", err)
	}
	return body, nil
}
