package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"docbot/internal/chunker"
	"docbot/internal/config"
	"docbot/internal/domain"
	"docbot/internal/llm"
	"docbot/internal/vectorstore"
	"docbot/internal/vectorstore/file"
	"docbot/internal/vectorstore/qdrant"
)

var cfgPath string

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "docbot",
		Short:        "Docs-powered chatbot for the project management system",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./docbot.yaml or ~/.config/docbot/config.yaml)")
	root.AddCommand(ingestCmd(), chatCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(cfgPath)
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

func buildClient(cfg *config.AppConfig) (*llm.Client, error) {
	return llm.NewClient(llm.Config{
		APIKeyEnv:      cfg.OpenAI.APIKeyEnv,
		ChatModel:      cfg.OpenAI.ChatModel,
		EmbeddingModel: cfg.OpenAI.EmbeddingModel,
		Temperature:    *cfg.OpenAI.Temperature,
		Timeout:        time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
		BatchSize:      cfg.OpenAI.BatchSize,
	})
}

func buildSplitter(cfg *config.AppConfig) (domain.Splitter, error) {
	switch cfg.Splitter.Type {
	case "recursive", "":
		return chunker.NewRecursiveSplitter(cfg.Splitter.ChunkSize, cfg.Splitter.ChunkOverlap), nil
	case "sentence":
		return chunker.NewSentenceChunker(cfg.Splitter.SentencesPerChunk, cfg.Splitter.OverlapSentences), nil
	default:
		return nil, fmt.Errorf("unknown splitter: %s", cfg.Splitter.Type)
	}
}

func buildStore(cfg *config.AppConfig) (vectorstore.Storage, error) {
	opts := vectorstore.SearchOptions{
		FetchK:         cfg.Retrieval.FetchK,
		MMRLambda:      cfg.Retrieval.MMRLambda,
		ScoreThreshold: cfg.Retrieval.ScoreThreshold,
	}
	switch cfg.VectorStore.Type {
	case "file", "":
		return file.New(cfg.VectorStore.PersistDir, opts), nil
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		return qdrant.New(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		}, opts), nil
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}
}
