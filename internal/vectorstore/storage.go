package vectorstore

import (
	"errors"

	"docbot/internal/domain"
)

// ErrNotPopulated is returned when question answering is attempted against a
// store that has never been ingested into.
var ErrNotPopulated = errors.New("vector store has not been populated")

// Storage persists embedded chunks and supports similarity search.
// There is exactly one writer (ingestion) and it never runs concurrently with
// querying in the same process.
type Storage interface {
	Init(dimension int) error
	Upsert(chunks []domain.Chunk) error
	Search(vector []float32, topK int) ([]domain.SearchResult, error)
	Count() (int, error)
	Clear() error
}

// Loader is implemented by backends that must read persisted state before
// serving queries. Server-backed stores have nothing to load.
type Loader interface {
	Load() error
}

// SearchOptions tune the candidate fan-out and re-ranking shared by backends.
type SearchOptions struct {
	// FetchK is how many candidates are pulled before re-ranking.
	FetchK int
	// MMRLambda balances relevance against diversity; 1 is pure relevance.
	MMRLambda float64
	// ScoreThreshold drops candidates scoring below it. Zero disables the floor.
	ScoreThreshold float64
}

// Normalized returns a copy with unset fields replaced by defaults.
func (o SearchOptions) Normalized() SearchOptions {
	if o.FetchK <= 0 {
		o.FetchK = 20
	}
	if o.MMRLambda <= 0 || o.MMRLambda > 1 {
		o.MMRLambda = 0.5
	}
	return o
}
