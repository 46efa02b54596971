package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"docbot/internal/domain"
	"docbot/internal/normalize"
	"docbot/internal/vectorstore"
)

// Orchestrator answers one user question end to end: decompose into
// sub-questions, then retrieve, synthesize and normalize each one in order.
// Sub-questions are processed strictly sequentially and every exchange is
// surfaced through the emit callback as soon as it completes.
type Orchestrator struct {
	decomposer  domain.Decomposer
	embedder    domain.Embedder
	synthesizer domain.Synthesizer
	store       vectorstore.Storage
	topK        int
	log         *logrus.Logger
}

func NewOrchestrator(decomposer domain.Decomposer, embedder domain.Embedder, synthesizer domain.Synthesizer, store vectorstore.Storage, topK int, log *logrus.Logger) *Orchestrator {
	if topK <= 0 {
		topK = 8
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Orchestrator{
		decomposer:  decomposer,
		embedder:    embedder,
		synthesizer: synthesizer,
		store:       store,
		topK:        topK,
		log:         log,
	}
}

// Answer returns the ordered (sub-question, answer) exchanges for a question.
// It refuses to run against a store that was never populated. A decomposition
// failure degrades to answering the whole question; a retrieval or synthesis
// failure aborts the remaining sub-questions.
func (o *Orchestrator) Answer(ctx context.Context, question string, emit func(n int, ex domain.Exchange)) ([]domain.Exchange, error) {
	count, err := o.store.Count()
	if err != nil {
		return nil, fmt.Errorf("check store: %w", err)
	}
	if count == 0 {
		return nil, vectorstore.ErrNotPopulated
	}

	subs, err := o.decomposer.Decompose(ctx, question)
	if err != nil || len(subs) == 0 {
		o.log.WithError(err).Warn("question decomposition failed, answering the original question whole")
		subs = []string{question}
	}

	exchanges := make([]domain.Exchange, 0, len(subs))
	for i, sub := range subs {
		answer, err := o.answerOne(ctx, sub)
		if err != nil {
			return exchanges, fmt.Errorf("answer sub-question %d: %w", i+1, err)
		}
		ex := domain.Exchange{SubQuestion: sub, Answer: answer}
		exchanges = append(exchanges, ex)
		if emit != nil {
			emit(i+1, ex)
		}
	}
	return exchanges, nil
}

// answerOne runs one retrieval-augmented query with no retained chat history;
// every sub-question starts from a clean context.
func (o *Orchestrator) answerOne(ctx context.Context, sub string) (string, error) {
	vectors, err := o.embedder.Embed(ctx, []string{sub})
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}
	if len(vectors) == 0 {
		return "", errors.New("embedder returned no vector")
	}
	results, err := o.store.Search(vectors[0], o.topK)
	if err != nil {
		return "", fmt.Errorf("search store: %w", err)
	}
	contexts := make([]string, 0, len(results))
	for _, r := range results {
		contexts = append(contexts, r.Chunk.Text)
	}
	raw, err := o.synthesizer.Synthesize(ctx, sub, contexts)
	if err != nil {
		return "", fmt.Errorf("synthesize answer: %w", err)
	}
	return normalize.Normalize(raw), nil
}
