package vectorstore

import (
	"testing"

	"docbot/internal/domain"
)

func result(id string, score float64, vec ...float32) domain.SearchResult {
	return domain.SearchResult{Chunk: domain.Chunk{ID: id, Embedding: vec}, Score: score}
}

func TestCosine_Basic(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 0}
	c := []float32{0, 1}

	if got := Cosine(a, b); got < 0.99 {
		t.Fatalf("expected cosine(a,b) ~ 1, got %f", got)
	}
	if got := Cosine(a, c); got > 0.01 {
		t.Fatalf("expected cosine(a,c) ~ 0, got %f", got)
	}
	if got := Cosine(a, []float32{0, 0}); got != 0 {
		t.Fatalf("expected 0 for zero vector, got %f", got)
	}
}

func TestRerank_PrefersDiverseResults(t *testing.T) {
	// b is a near-duplicate of a; c is less relevant but distinct.
	candidates := []domain.SearchResult{
		result("a", 0.95, 1, 0),
		result("b", 0.94, 1, 0),
		result("c", 0.80, 0, 1),
	}
	got := Rerank(candidates, SearchOptions{MMRLambda: 0.5}, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Chunk.ID != "a" || got[1].Chunk.ID != "c" {
		t.Fatalf("expected [a c], got [%s %s]", got[0].Chunk.ID, got[1].Chunk.ID)
	}
}

func TestRerank_PureRelevanceWithLambdaOne(t *testing.T) {
	candidates := []domain.SearchResult{
		result("a", 0.95, 1, 0),
		result("b", 0.94, 1, 0),
		result("c", 0.80, 0, 1),
	}
	got := Rerank(candidates, SearchOptions{MMRLambda: 1}, 2)
	if got[0].Chunk.ID != "a" || got[1].Chunk.ID != "b" {
		t.Fatalf("expected [a b], got [%s %s]", got[0].Chunk.ID, got[1].Chunk.ID)
	}
}

func TestRerank_ScoreFloorFilters(t *testing.T) {
	candidates := []domain.SearchResult{
		result("a", 0.95, 1, 0),
		result("b", 0.50, 0, 1),
	}
	got := Rerank(candidates, SearchOptions{MMRLambda: 0.5, ScoreThreshold: 0.9}, 5)
	if len(got) != 1 || got[0].Chunk.ID != "a" {
		t.Fatalf("expected only a above the floor, got %v", got)
	}
}

func TestRerank_TopKBounds(t *testing.T) {
	candidates := []domain.SearchResult{
		result("a", 0.9, 1, 0),
		result("b", 0.8, 0, 1),
	}
	if got := Rerank(candidates, SearchOptions{}, 10); len(got) != 2 {
		t.Fatalf("expected 2 results when topK exceeds candidates, got %d", len(got))
	}
	if got := Rerank(nil, SearchOptions{}, 3); len(got) != 0 {
		t.Fatalf("expected no results for no candidates, got %d", len(got))
	}
}
