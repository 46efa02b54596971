package vectorstore

import (
	"math"

	"docbot/internal/domain"
)

// Cosine returns the cosine similarity of two vectors.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Rerank applies the score floor and maximal marginal relevance selection to
// a candidate list sorted by descending similarity, returning at most topK
// results. MMR greedily picks the candidate maximizing
//
//	lambda*sim(query, c) - (1-lambda)*max sim(c, selected)
//
// so near-duplicate chunks do not crowd out distinct ones.
func Rerank(candidates []domain.SearchResult, opts SearchOptions, topK int) []domain.SearchResult {
	opts = opts.Normalized()
	if topK <= 0 {
		topK = 5
	}

	pool := make([]domain.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		if opts.ScoreThreshold > 0 && c.Score < opts.ScoreThreshold {
			continue
		}
		pool = append(pool, c)
	}

	selected := make([]domain.SearchResult, 0, topK)
	for len(selected) < topK && len(pool) > 0 {
		bestIdx := 0
		bestVal := math.Inf(-1)
		for i, c := range pool {
			redundancy := 0.0
			for _, s := range selected {
				if sim := Cosine(c.Chunk.Embedding, s.Chunk.Embedding); sim > redundancy {
					redundancy = sim
				}
			}
			val := opts.MMRLambda*c.Score - (1-opts.MMRLambda)*redundancy
			if val > bestVal {
				bestVal = val
				bestIdx = i
			}
		}
		selected = append(selected, pool[bestIdx])
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}
	return selected
}
