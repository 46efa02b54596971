package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docbot/internal/service"
	"docbot/internal/summarizer"
)

const summaryFileName = "summary.txt"

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Load markdown docs & rebuild the vector store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := newLogger()
			client, err := buildClient(cfg)
			if err != nil {
				return err
			}
			splitter, err := buildSplitter(cfg)
			if err != nil {
				return err
			}
			store, err := buildStore(cfg)
			if err != nil {
				return err
			}

			ing := service.NewIngestor(splitter, client, summarizer.NewFrequencySummarizer(), store, cfg.Ingest.DocsDir, cfg.Ingest.SummarySentences, log)
			count, summary, err := ing.Run(cmd.Context())
			if err != nil {
				return err
			}
			if summary != "" {
				if err := writeSummary(cfg.VectorStore.PersistDir, summary); err != nil {
					log.WithError(err).Warn("could not persist corpus summary")
				}
			}
			fmt.Printf("Ingested %d chunks into %s\n", count, cfg.VectorStore.PersistDir)
			return nil
		},
	}
}

func writeSummary(dir, summary string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, summaryFileName), []byte(summary), 0o644)
}

func readSummary(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, summaryFileName))
	if err != nil {
		return ""
	}
	return string(data)
}
