package qdrant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docbot/internal/domain"
	"docbot/internal/vectorstore"
)

// fakeQdrant tracks collection lifecycle so tests can verify that points are
// only accepted into an existing collection.
type fakeQdrant struct {
	exists bool
	points []json.RawMessage
}

func newFakeQdrant(t *testing.T) (*fakeQdrant, *Store) {
	t.Helper()
	f := &fakeQdrant{}
	mux := http.NewServeMux()
	mux.HandleFunc("/collections/docs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			f.exists = true
			f.points = nil
		case http.MethodDelete:
			f.exists = false
			f.points = nil
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/collections/docs/points", func(w http.ResponseWriter, r *http.Request) {
		if !f.exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body struct {
			Points []json.RawMessage `json:"points"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.points = append(f.points, body.Points...)
	})
	mux.HandleFunc("/collections/docs/points/count", func(w http.ResponseWriter, r *http.Request) {
		if !f.exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{"count": len(f.points)}})
	})
	mux.HandleFunc("/collections/docs/points/search", func(w http.ResponseWriter, r *http.Request) {
		if !f.exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": []map[string]any{
			{"score": 0.9, "vector": []float32{1, 0}, "payload": map[string]any{"chunk_id": "a:0", "source": "a.md", "index": 0, "text": "leads"}},
			{"score": 0.4, "vector": []float32{0, 1}, "payload": map[string]any{"chunk_id": "b:0", "source": "b.md", "index": 1, "text": "jobs"}},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, New(Config{URL: srv.URL, Collection: "docs"}, vectorstore.SearchOptions{MMRLambda: 1})
}

func TestStore_RebuildSequence(t *testing.T) {
	f, s := newFakeQdrant(t)

	// The ingestion order: clear the old collection, create it, write points.
	require.NoError(t, s.Clear())
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]domain.Chunk{
		{ID: "a:0", Source: "a.md", Text: "leads", Embedding: []float32{1, 0}},
	}))

	assert.True(t, f.exists)
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_UpsertAfterClearFails(t *testing.T) {
	_, s := newFakeQdrant(t)

	require.NoError(t, s.Init(2))
	require.NoError(t, s.Clear())

	err := s.Upsert([]domain.Chunk{{ID: "a:0", Embedding: []float32{1, 0}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestStore_SearchDecodesResults(t *testing.T) {
	_, s := newFakeQdrant(t)
	require.NoError(t, s.Init(2))

	got, err := s.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a:0", got[0].Chunk.ID)
	assert.Equal(t, "leads", got[0].Chunk.Text)
	assert.Equal(t, "a.md", got[0].Chunk.Source)
	assert.InDelta(t, 0.9, got[0].Score, 1e-9)
	assert.Equal(t, "b:0", got[1].Chunk.ID)
	assert.Equal(t, 1, got[1].Chunk.Index)
}

func TestStore_CountOnMissingCollectionFails(t *testing.T) {
	_, s := newFakeQdrant(t)
	_, err := s.Count()
	assert.Error(t, err)
}
