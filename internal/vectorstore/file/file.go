// Package file implements a vector store persisted as a JSON index under a
// local directory. Search is brute-force cosine similarity over all stored
// vectors, followed by MMR re-ranking; the corpus is small enough that an
// approximate index would be overkill.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"docbot/internal/domain"
	"docbot/internal/vectorstore"
)

const indexFileName = "index.json"

// Store keeps chunks in memory and mirrors them to disk on every upsert.
type Store struct {
	mu        sync.RWMutex
	dir       string
	opts      vectorstore.SearchOptions
	dimension int
	chunks    []domain.Chunk
}

type indexFile struct {
	Dimension int            `json:"dimension"`
	Chunks    []domain.Chunk `json:"chunks"`
}

func New(dir string, opts vectorstore.SearchOptions) *Store {
	return &Store{dir: dir, opts: opts.Normalized()}
}

// Load reads the persisted index into memory. A missing persist directory or
// index file means ingestion has never run; the caller is expected to surface
// that as a fatal configuration error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(filepath.Join(s.dir, indexFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no vector store found at %s: %w", s.dir, vectorstore.ErrNotPopulated)
		}
		return fmt.Errorf("read index: %w", err)
	}
	var idx indexFile
	if err := json.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("decode index: %w", err)
	}
	s.dimension = idx.Dimension
	s.chunks = idx.Chunks
	return nil
}

func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.chunks = nil
	return nil
}

func (s *Store) Upsert(chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		if len(c.Embedding) != s.dimension {
			return fmt.Errorf("chunk %s: vector dimension %d, store dimension %d", c.ID, len(c.Embedding), s.dimension)
		}
	}
	s.chunks = append(s.chunks, chunks...)
	return s.persist()
}

func (s *Store) Search(vector []float32, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidates := make([]domain.SearchResult, 0, len(s.chunks))
	for _, c := range s.chunks {
		candidates = append(candidates, domain.SearchResult{Chunk: c, Score: vectorstore.Cosine(vector, c.Embedding)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })
	if len(candidates) > s.opts.FetchK {
		candidates = candidates[:s.opts.FetchK]
	}
	return vectorstore.Rerank(candidates, s.opts, topK), nil
}

func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	err := os.Remove(filepath.Join(s.dir, indexFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// persist rewrites the whole index; ingestion is a wholesale rebuild, not an
// incremental update. Caller holds the write lock.
func (s *Store) persist() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create persist dir: %w", err)
	}
	data, err := json.Marshal(indexFile{Dimension: s.dimension, Chunks: s.chunks})
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	tmp := filepath.Join(s.dir, indexFileName+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return os.Rename(tmp, filepath.Join(s.dir, indexFileName))
}
