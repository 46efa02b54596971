package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"docbot/internal/domain"
	"docbot/internal/vectorstore"
)

// Ingestor rebuilds the chunk store wholesale from the markdown knowledge
// base: load files, split text, embed, persist. It is the only writer and
// never runs concurrently with querying in the same process.
type Ingestor struct {
	splitter         domain.Splitter
	embedder         domain.Embedder
	summarizer       domain.Summarizer
	store            vectorstore.Storage
	docsDir          string
	summarySentences int
	log              *logrus.Logger
}

func NewIngestor(splitter domain.Splitter, embedder domain.Embedder, summarizer domain.Summarizer, store vectorstore.Storage, docsDir string, summarySentences int, log *logrus.Logger) *Ingestor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Ingestor{
		splitter:         splitter,
		embedder:         embedder,
		summarizer:       summarizer,
		store:            store,
		docsDir:          docsDir,
		summarySentences: summarySentences,
		log:              log,
	}
}

// Run ingests every markdown file under the docs directory and returns the
// number of chunks written plus a short corpus summary.
func (ing *Ingestor) Run(ctx context.Context) (int, string, error) {
	var chunks []domain.Chunk
	var corpus strings.Builder
	files := 0
	err := filepath.WalkDir(ing.docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		text := string(data)
		corpus.WriteString("\n")
		corpus.WriteString(text)
		files++
		id := hashString(path)
		for i, frag := range ing.splitter.Split(text) {
			chunks = append(chunks, domain.Chunk{
				ID:     id + ":" + strconv.Itoa(i),
				Source: path,
				Text:   frag,
				Index:  i,
			})
		}
		return nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("scan docs dir %s: %w", ing.docsDir, err)
	}
	if len(chunks) == 0 {
		return 0, "", fmt.Errorf("no markdown documents found under %s", ing.docsDir)
	}
	ing.log.WithFields(logrus.Fields{"files": files, "chunks": len(chunks)}).Info("documents loaded, embedding")

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}
	vectors, err := ing.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, "", fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, "", fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	// Clear must precede Init: backends like Qdrant clear by dropping the
	// collection and rely on Init to create it again.
	if err := ing.store.Clear(); err != nil {
		return 0, "", fmt.Errorf("clear store: %w", err)
	}
	if err := ing.store.Init(len(vectors[0])); err != nil {
		return 0, "", fmt.Errorf("init store: %w", err)
	}
	if err := ing.store.Upsert(chunks); err != nil {
		return 0, "", fmt.Errorf("upsert chunks: %w", err)
	}

	// Summary is cosmetic; a failure must not fail ingestion.
	summary, err := ing.summarizer.Summarize(corpus.String(), ing.summarySentences)
	if err != nil {
		ing.log.WithError(err).Warn("corpus summary failed")
		summary = ""
	}
	return len(chunks), summary, nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
