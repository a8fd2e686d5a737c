package docstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cattery/internal/models"
)

func snapshotDocument(t *testing.T, snap *models.SyncSnapshot) []byte {
	t.Helper()
	content, err := json.Marshal(snap)
	require.NoError(t, err)
	body, err := json.Marshal(document{
		Files: map[string]documentFile{
			SnapshotFilename: {Content: string(content)},
		},
	})
	require.NoError(t, err)
	return body
}

func TestClientFetchSnapshot(t *testing.T) {
	snap := models.EmptySnapshot()
	snap.Cats = []models.Animal{{ID: "cat_1", Name: "Luna", Breed: "Devon Rex", Status: models.AnimalAvailable}}
	snap.LastSync = time.Now().UTC().Truncate(time.Second)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/documents/doc123", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "public reads must not send a credential")
		w.Write(snapshotDocument(t, snap))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "doc123", "", nil)
	got, err := c.FetchSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Cats, 1)
	assert.Equal(t, "Luna", got.Cats[0].Name)
	assert.Equal(t, snap.LastSync, got.LastSync)
}

func TestClientFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "gone", "", nil)
	_, err := c.FetchSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientFetchWithoutDocumentID(t *testing.T) {
	c := NewClient("http://localhost:0", "", "", nil)
	_, err := c.FetchSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoDocumentID)
}

func TestClientReplaceSnapshot(t *testing.T) {
	var received document
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/documents/doc123", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	snap := models.EmptySnapshot()
	snap.FAQ = []models.FAQEntry{{ID: "faq_1", Question: "Q", Answer: "A", Active: true}}

	c := NewClient(srv.URL, "doc123", "tok", nil)
	require.NoError(t, c.ReplaceSnapshot(context.Background(), snap))

	file, ok := received.Files[SnapshotFilename]
	require.True(t, ok, "replace must carry the snapshot file")

	var sent models.SyncSnapshot
	require.NoError(t, json.Unmarshal([]byte(file.Content), &sent))
	assert.Len(t, sent.FAQ, 1)
	assert.False(t, sent.LastSync.IsZero(), "replace must stamp lastSync")
}

func TestClientReplaceWithoutToken(t *testing.T) {
	c := NewClient("http://localhost:0", "doc123", "", nil)
	err := c.ReplaceSnapshot(context.Background(), models.EmptySnapshot())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestClientCreateDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/documents", r.URL.Path)

		var doc document
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		assert.True(t, doc.Public, "created document must be publicly readable")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"fresh-id"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "tok", nil)
	id, err := c.CreateDocument(context.Background(), models.EmptySnapshot())
	require.NoError(t, err)
	assert.Equal(t, "fresh-id", id)

	// The client adopts the new ID for subsequent calls.
	resolved, err := c.documentID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-id", resolved)
}
