package domain

import "context"

// Chunk is an embedded fragment of a source document, the unit of retrieval.
// Chunks are immutable once stored and are replaced wholesale by re-ingestion.
type Chunk struct {
	ID        string
	Source    string
	Text      string
	Index     int
	Embedding []float32
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Exchange pairs one sub-question with its final, normalized answer.
type Exchange struct {
	SubQuestion string
	Answer      string
}

// Embedder converts free text into numeric vector representations.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Splitter breaks document text into fragments suitable for indexing.
type Splitter interface {
	Split(text string) []string
}

// Decomposer splits a compound question into self-contained sub-questions.
// The result is ordered as the sub-questions appeared in the source text and
// is never empty.
type Decomposer interface {
	Decompose(ctx context.Context, question string) ([]string, error)
}

// Synthesizer turns a question plus retrieved context into an answer string.
type Synthesizer interface {
	Synthesize(ctx context.Context, question string, contexts []string) (string, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
